package palette

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportCmd(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	c := &ExportCmd{Out: filepath.Join(t.TempDir(), "bricks.pal")}
	if err := c.Validate(nil); err != nil {
		t.Fatal(err)
	}

	if err := c.Run(logger); err != nil {
		t.Fatal(err)
	}
	if err := c.Run(logger); err == nil {
		t.Fatal("second export overwrote the file without --force")
	}
	c.Force = true
	if err := c.Run(logger); err != nil {
		t.Fatalf("forced export: %v", err)
	}

	f, err := os.Open(c.Out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	pal, err := ReadRIFF(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(pal) != len(Bricks) {
		t.Errorf("exported %d colors, want %d", len(pal), len(Bricks))
	}
}

func TestListCmd(t *testing.T) {
	var buf bytes.Buffer
	if err := (&ListCmd{}).Run(slog.New(slog.NewTextHandler(&buf, nil))); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "msg=brick"); n != len(Bricks) {
		t.Errorf("listed %d bricks, want %d", n, len(Bricks))
	}
	if !strings.Contains(buf.String(), "color=#f5cd2f") {
		t.Errorf("missing Bright Yellow:\n%s", buf.String())
	}
}
