package mosaic

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"brickmosaic/imageio"
	"brickmosaic/palette"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	In      string `help:"Source image" default:"image.jpg"`
	Out     string `help:"Destination image. Relative to the source folder if not absolute." default:"test.jpg"`
	Block   int    `help:"Block size in pixels" default:"8"`
	Mode    string `help:"palette snaps blocks to brick colors, plain keeps the block averages" enum:"palette,plain" default:"palette"`
	Alpha   string `help:"Alpha of palette blocks: average keeps the block alpha, opaque forces 255. Always opaque for jpeg and gif output." enum:"average,opaque" default:"average"`
	Columns int    `help:"Resize the source first so the mosaic is this many blocks wide" default:"0"`
	Format  string `help:"Output format, auto picks it from the destination extension or the source format" enum:"auto,gif,jpeg,png,bmp,tiff" default:"auto"`
	Force   bool   `help:"Overwrite existing destination files" default:"false"`
	Parts   string `help:"Write the bill of materials as CSV to this path (palette mode only)"`
	Workers int    `help:"Block columns rendered concurrently" default:"1"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	in, err := filepath.Abs(c.In)
	if err != nil {
		return fmt.Errorf("invalid source path %q: %w", c.In, err)
	}
	c.In = in

	if !filepath.IsAbs(c.Out) {
		c.Out = filepath.Join(filepath.Dir(in), c.Out)
	}
	if c.Parts != "" && !filepath.IsAbs(c.Parts) {
		c.Parts = filepath.Join(filepath.Dir(in), c.Parts)
	}

	switch {
	case c.Block < 1:
		return fmt.Errorf("invalid block size: %d", c.Block)
	case c.Columns < 0:
		return fmt.Errorf("invalid column count: %d", c.Columns)
	case c.Parts != "" && c.Mode != "palette":
		return fmt.Errorf("a parts list needs palette mode")
	}

	return nil
}

func (c *CLICmd) options(logger *slog.Logger, format string) Options {
	opts := Options{
		BlockSize: c.Block,
		Workers:   c.Workers,
		Logger:    logger,
	}
	if c.Mode == "palette" {
		opts.Palette = palette.Bricks
	}
	if c.Alpha == "opaque" {
		opts.Alpha = AlphaOpaque
	} else if opts.Palette != nil && !imageio.StoresAlpha(format) {
		logger.Info("output format has no alpha, painting opaque bricks", "format", format)
		opts.Alpha = AlphaOpaque
	}
	return opts
}

// outputFormat picks the encoder for dest. Without a known extension it keeps
// the source format, or falls back to png when there is no encoder for it.
func outputFormat(requested, dest, srcFormat string) string {
	if requested != "auto" {
		return requested
	}
	if format, ok := imageio.FormatFromPath(dest); ok {
		return format
	}
	if imageio.Encodable(srcFormat) {
		return srcFormat
	}
	return "png"
}

func (c *CLICmd) Run(logger *slog.Logger) error {
	logger = logger.With("file", c.In)

	src, srcFormat, err := imageio.Load(c.In)
	if err != nil {
		return err
	}

	b := src.Bounds()
	logger.Info("loaded", "format", srcFormat, "width", b.Dx(), "height", b.Dy(), "bounds", b.String())

	src = ScaleToColumns(logger, src, c.Columns, c.Block)
	grid := imageio.ToNRGBA(src)
	if avg, err := Average(grid, grid.Rect); err == nil {
		logger.Info("average", "color", palette.RGB{R: avg.R, G: avg.G, B: avg.B}.Hex(), "alpha", avg.A)
	}

	format := outputFormat(c.Format, c.Out, srcFormat)
	res, err := Render(grid, c.options(logger, format))
	if err != nil {
		return err
	}

	if res.Image.Rect.Empty() {
		logger.Warn("source smaller than one block, nothing to save", "block", c.Block)
		return nil
	}

	counts := res.Counts()
	for _, bc := range counts {
		logger.Info("parts", "id", bc.Swatch.ID, "name", bc.Swatch.Name, "count", bc.Count)
	}

	if err := imageio.Save(res.Image, c.Out, imageio.SaveOptions{Format: format, Overwrite: c.Force}); err != nil {
		return err
	}
	logger.Info("saved", "dest", c.Out, "format", format, "columns", res.Columns, "rows", res.Rows)

	if c.Parts != "" {
		if err := writeParts(c.Parts, counts, c.Force); err != nil {
			return err
		}
		logger.Info("parts list saved", "dest", c.Parts)
	}
	return nil
}

func writeParts(path string, counts []BrickCount, overwrite bool) (err error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("could not open parts list %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close parts list %q: %w", path, closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "name", "color", "count"}); err != nil {
		return fmt.Errorf("could not write parts list %q: %w", path, err)
	}
	for _, bc := range counts {
		row := []string{strconv.Itoa(bc.Swatch.ID), bc.Swatch.Name, bc.Swatch.Color.Hex(), strconv.Itoa(bc.Count)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("could not write parts list %q: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("could not flush parts list %q: %w", path, err)
	}
	return nil
}
