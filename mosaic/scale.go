package mosaic

import (
	"image"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

// ScaleToColumns resamples src so the mosaic is exactly columns blocks wide,
// keeping the aspect ratio. Non-positive columns return src unchanged.
func ScaleToColumns(logger *slog.Logger, src image.Image, columns, blockSize int) image.Image {
	srcBounds := src.Bounds()
	if columns <= 0 || srcBounds.Empty() {
		return src
	}

	destWidth := columns * blockSize
	if destWidth == srcBounds.Dx() {
		return src
	}

	srcAR := float64(srcBounds.Dx()) / float64(srcBounds.Dy())
	destHeight := max(1, int(math.Round(float64(destWidth)/srcAR)))

	logger.Info("resizing", "width", destWidth, "height", destHeight, "columns", columns)
	dest := image.NewNRGBA(image.Rect(0, 0, destWidth, destHeight))
	draw.CatmullRom.Scale(dest, dest.Rect, src, srcBounds, draw.Src, nil)

	return dest
}
