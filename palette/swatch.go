package palette

import (
	"errors"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrEmptyPalette = errors.New("empty palette")

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

func (c RGB) RGBA() (uint32, uint32, uint32, uint32) {
	r, g, b := uint32(c.R), uint32(c.G), uint32(c.B)
	return r | r<<8, g | g<<8, b | b<<8, 0xFFFF
}

func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// Swatch is one purchasable brick color.
type Swatch struct {
	ID    int
	Name  string
	Color RGB
}

// Palette is an ordered list of swatches. Order decides ties in Index.
type Palette []Swatch

// Index returns the position of the swatch nearest to c using Euclidean
// distance over 8-bit RGB. Alpha is ignored. On equal distance the earliest
// swatch wins.
func (p Palette) Index(c color.Color) (int, error) {
	if len(p) == 0 {
		return 0, ErrEmptyPalette
	}

	rgb := toRGB(c)
	ret, best := 0, math.MaxInt
	for i, s := range p {
		d := sqDist(rgb, s.Color)
		if d < best {
			if d == 0 {
				return i, nil
			}
			ret, best = i, d
		}
	}
	return ret, nil
}

func (p Palette) Nearest(c color.Color) (Swatch, error) {
	i, err := p.Index(c)
	if err != nil {
		return Swatch{}, err
	}
	return p[i], nil
}

func (p Palette) ByID(id int) (Swatch, bool) {
	for _, s := range p {
		if s.ID == id {
			return s, true
		}
	}
	return Swatch{}, false
}

func (p Palette) Colors() color.Palette {
	pal := make(color.Palette, len(p))
	for i, s := range p {
		pal[i] = s.Color
	}
	return pal
}

// Distance is the Euclidean distance between the 8-bit RGB values of a and b.
func Distance(a, b color.Color) float64 {
	return math.Sqrt(float64(sqDist(toRGB(a), toRGB(b))))
}

func sqDist(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// toRGB drops alpha. Non-premultiplied channels are used so a translucent
// block is matched on its hue, not on its darkened premultiplied value.
func toRGB(c color.Color) RGB {
	switch v := c.(type) {
	case RGB:
		return v
	case color.NRGBA:
		return RGB{v.R, v.G, v.B}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{n.R, n.G, n.B}
}
