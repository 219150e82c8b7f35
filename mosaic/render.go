package mosaic

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"

	"brickmosaic/palette"
	"brickmosaic/parallel"
)

const DefaultBlockSize = 8

var ErrInvalidBlockSize = errors.New("invalid block size")

// AlphaMode selects the alpha written for palette-matched blocks.
type AlphaMode int

const (
	// AlphaAverage keeps the block's averaged alpha under the swatch color.
	AlphaAverage AlphaMode = iota
	// AlphaOpaque paints every matched block fully opaque.
	AlphaOpaque
)

func (m AlphaMode) String() string {
	switch m {
	case AlphaAverage:
		return "average"
	case AlphaOpaque:
		return "opaque"
	}
	return fmt.Sprintf("AlphaMode(%d)", int(m))
}

type Options struct {
	// BlockSize is the side of a square block in pixels. Zero means
	// DefaultBlockSize.
	BlockSize int
	// Palette enables palette mode when non-nil. A nil palette paints the
	// plain block averages.
	Palette palette.Palette
	Alpha   AlphaMode
	// Workers above one spreads block columns over a worker pool. The image
	// is the same for any value; only the order of block logs changes.
	Workers int
	Logger  *slog.Logger
}

type Result struct {
	Image   *image.NRGBA
	Columns int
	Rows    int
	Palette palette.Palette
	// Cells holds the palette index of block (i, j) at i*Rows+j. It is nil
	// in plain mode.
	Cells []int
}

type BrickCount struct {
	Swatch palette.Swatch
	Count  int
}

// Counts returns how many blocks use each swatch, in palette order, skipping
// unused swatches.
func (r *Result) Counts() []BrickCount {
	if r.Cells == nil {
		return nil
	}

	n := make([]int, len(r.Palette))
	for _, idx := range r.Cells {
		n[idx]++
	}

	var res []BrickCount
	for i, s := range r.Palette {
		if n[i] > 0 {
			res = append(res, BrickCount{Swatch: s, Count: n[i]})
		}
	}
	return res
}

// Render crops src to whole blocks and paints each block of the output with
// its average color, or with the nearest palette swatch in palette mode. A
// source smaller than one block yields an empty image.
func Render(src image.Image, opts Options) (*Result, error) {
	size := opts.BlockSize
	if size == 0 {
		size = DefaultBlockSize
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, size)
	}
	if opts.Palette != nil && len(opts.Palette) == 0 {
		return nil, palette.ErrEmptyPalette
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sb := src.Bounds()
	cw, ch := CropBounds(sb.Dx(), sb.Dy(), size)
	res := &Result{
		Image:   image.NewNRGBA(image.Rect(0, 0, cw, ch)),
		Columns: cw / size,
		Rows:    ch / size,
		Palette: opts.Palette,
	}
	if opts.Palette != nil {
		res.Cells = make([]int, res.Columns*res.Rows)
	}

	logger.Info("cropping", "width", sb.Dx(), "height", sb.Dy(), "cropped_width", cw, "cropped_height", ch,
		"block", size)
	if res.Columns == 0 || res.Rows == 0 {
		res.Image = image.NewNRGBA(image.Rectangle{})
		res.Columns, res.Rows = 0, 0
		return res, nil
	}

	r := &renderer{
		src:    src,
		origin: sb.Min,
		opts:   opts,
		logger: logger,
		res:    res,
		blocks: Blocks(cw, ch, size),
		trace:  logger.Enabled(context.Background(), slog.LevelInfo),
	}

	pool := parallel.Start(max(1, opts.Workers))
	for i := range res.Columns {
		pool.Do(func() { r.column(i) })
	}
	pool.Wait()

	if r.err != nil {
		return nil, r.err
	}
	return res, nil
}

type renderer struct {
	src    image.Image
	origin image.Point
	opts   Options
	logger *slog.Logger
	res    *Result
	blocks []image.Rectangle
	trace  bool

	errOnce sync.Once
	err     error
}

func (r *renderer) fail(err error) {
	r.errOnce.Do(func() { r.err = err })
}

// column renders every block of column i. Columns share no output pixels or
// cells, so they may run concurrently.
func (r *renderer) column(i int) {
	for j := range r.res.Rows {
		cell := i*r.res.Rows + j
		dr := r.blocks[cell]
		avg, err := Average(r.src, dr.Add(r.origin))
		if err != nil {
			r.fail(fmt.Errorf("could not average block %d,%d: %w", i, j, err))
			return
		}

		fill := avg
		var brick palette.Swatch
		if r.opts.Palette != nil {
			idx, err := r.opts.Palette.Index(avg)
			if err != nil {
				r.fail(fmt.Errorf("could not match block %d,%d: %w", i, j, err))
				return
			}
			r.res.Cells[cell] = idx
			brick = r.opts.Palette[idx]

			fill = color.NRGBA{R: brick.Color.R, G: brick.Color.G, B: brick.Color.B, A: avg.A}
			if r.opts.Alpha == AlphaOpaque {
				fill.A = 0xFF
			}
		}

		paint(r.res.Image, dr, fill)

		if r.trace {
			attrs := []any{"horizontal", i, "vertical", j,
				"color", palette.RGB{R: avg.R, G: avg.G, B: avg.B}.Hex(), "alpha", avg.A}
			if r.opts.Palette != nil {
				attrs = append(attrs, "brick", brick.Name, "id", brick.ID)
			}
			r.logger.Info("block", attrs...)
		}
	}
}

func paint(dst *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := dst.Pix[dst.PixOffset(r.Min.X, y):dst.PixOffset(r.Max.X, y)]
		for off := 0; off < len(row); off += 4 {
			row[off] = c.R
			row[off+1] = c.G
			row[off+2] = c.B
			row[off+3] = c.A
		}
	}
}
