package palette

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	List   ListCmd   `cmd:"" help:"List the built-in brick colors"`
	Export ExportCmd `cmd:"" help:"Write the built-in brick colors as a RIFF PAL file"`
}

type ListCmd struct{}

func (c *ListCmd) Run(logger *slog.Logger) error {
	for i, s := range Bricks {
		logger.Info("brick", "index", i, "id", s.ID, "name", s.Name, "color", s.Color.Hex())
	}
	return nil
}

type ExportCmd struct {
	Out   string `help:"Destination PAL file" default:"bricks.pal"`
	Force bool   `help:"Overwrite the destination if it exists" default:"false"`
}

func (c *ExportCmd) Validate(kctx *kong.Context) error {
	out, err := filepath.Abs(c.Out)
	if err != nil {
		return fmt.Errorf("invalid output path %q: %w", c.Out, err)
	}
	c.Out = out
	return nil
}

func (c *ExportCmd) Run(logger *slog.Logger) (err error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if c.Force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(c.Out, flags, 0o644)
	if err != nil {
		return fmt.Errorf("could not open destination %q: %w", c.Out, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close destination %q: %w", c.Out, closeErr)
		}
	}()

	n, err := WriteRIFF(f, Bricks)
	if err != nil {
		return fmt.Errorf("could not export palette to %q: %w", c.Out, err)
	}

	logger.Info("palette exported", "file", c.Out, "colors", len(Bricks), "bytes", n)
	return nil
}
