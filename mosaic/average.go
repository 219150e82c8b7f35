package mosaic

import (
	"errors"
	"image"
	"image/color"
	"math"
)

var (
	ErrEmptyRegion = errors.New("empty region")
	ErrOutOfBounds = errors.New("region outside image bounds")
)

// Average returns the per-channel mean of the non-premultiplied 8-bit pixels
// of img inside r. Means are rounded half away from zero, which for
// non-negative sums is round half up.
func Average(img image.Image, r image.Rectangle) (color.NRGBA, error) {
	if r.Empty() {
		return color.NRGBA{}, ErrEmptyRegion
	}
	if !r.In(img.Bounds()) {
		return color.NRGBA{}, ErrOutOfBounds
	}

	var sr, sg, sb, sa uint64
	switch src := img.(type) {
	case *image.NRGBA:
		for y := r.Min.Y; y < r.Max.Y; y++ {
			row := src.Pix[src.PixOffset(r.Min.X, y):src.PixOffset(r.Max.X, y)]
			for off := 0; off < len(row); off += 4 {
				sr += uint64(row[off])
				sg += uint64(row[off+1])
				sb += uint64(row[off+2])
				sa += uint64(row[off+3])
			}
		}
	default:
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				sr += uint64(c.R)
				sg += uint64(c.G)
				sb += uint64(c.B)
				sa += uint64(c.A)
			}
		}
	}

	count := float64(r.Dx() * r.Dy())
	return color.NRGBA{
		R: mean(sr, count),
		G: mean(sg, count),
		B: mean(sb, count),
		A: mean(sa, count),
	}, nil
}

func mean(sum uint64, count float64) uint8 {
	return uint8(min(255, math.Round(float64(sum)/count)))
}
