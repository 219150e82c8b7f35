package imageio

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

// LoadError reports a source image that could not be opened or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("could not load image %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load decodes the image at path and returns it with its format name.
func Load(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", &LoadError{Path: path, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "file", path, "error", closeErr)
		}
	}()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", &LoadError{Path: path, Err: fmt.Errorf("could not decode: %w", err)}
	}

	return img, format, nil
}

// ToNRGBA returns img as an 8-bit non-premultiplied grid anchored at (0, 0).
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}

	sr := img.Bounds()
	dest := image.NewNRGBA(image.Rect(0, 0, sr.Dx(), sr.Dy()))
	draw.Draw(dest, dest.Rect, img, sr.Min, draw.Src)
	return dest
}
