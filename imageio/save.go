package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// SaveError reports a rendered image that could not be persisted.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("could not save image %q: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

type SaveOptions struct {
	// Format is one of gif, jpeg, png, bmp or tiff. Empty means derive it
	// from the destination extension.
	Format string
	// Overwrite allows replacing an existing destination file.
	Overwrite bool
}

var extFormats = map[string]string{
	".gif":  "gif",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".png":  "png",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
}

// Encodable reports whether Save has an encoder for format.
func Encodable(format string) bool {
	switch format {
	case "gif", "jpeg", "png", "bmp", "tiff":
		return true
	}
	return false
}

// StoresAlpha reports whether format keeps partial transparency. JPEG has no
// alpha channel and GIF only stores a single fully transparent index.
func StoresAlpha(format string) bool {
	return format != "jpeg" && format != "gif"
}

// FormatFromPath maps a file extension to an encoder name.
func FormatFromPath(path string) (string, bool) {
	f, ok := extFormats[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// Save encodes img into a temporary file next to path and renames it into
// place once fully written, so a failed save leaves no partial output.
func Save(img image.Image, path string, opts SaveOptions) error {
	format := opts.Format
	if format == "" {
		var ok bool
		if format, ok = FormatFromPath(path); !ok {
			return &SaveError{Path: path, Err: fmt.Errorf("unknown output format for extension %q", filepath.Ext(path))}
		}
	}

	if !opts.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return &SaveError{Path: path, Err: fs.ErrExist}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return &SaveError{Path: path, Err: fmt.Errorf("cannot stat destination: %w", err)}
		}
	}

	if !StoresAlpha(format) {
		img = flatten(img)
	}

	if err := save(img, format, path); err != nil {
		return &SaveError{Path: path, Err: err}
	}
	return nil
}

func save(img image.Image, format, path string) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	outFile, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination: %w", err)
	}
	tmpName := outFile.Name()
	defer func() {
		if err != nil {
			_ = outFile.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = encode(outFile, img, format); err != nil {
		return err
	}
	if err = outFile.Sync(); err != nil {
		return fmt.Errorf("could not flush temporary destination %q: %w", tmpName, err)
	}
	if err = outFile.Close(); err != nil {
		return fmt.Errorf("could not close temporary destination %q: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("could not rename destination file: %w", err)
	}
	return nil
}

// flatten drops alpha without premultiplying, so translucent pixels keep
// their color instead of fading towards black.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}

	dest := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			c.A = 0xFF
			dest.SetNRGBA(x, y, c)
		}
	}
	return dest
}

func encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "gif":
		if err := gif.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode GIF: %w", err)
		}
	case "jpeg":
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: 100}); err != nil {
			return fmt.Errorf("could not encode JPEG: %w", err)
		}
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err := enc.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode PNG: %w", err)
		}
	case "bmp":
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode BMP: %w", err)
		}
	case "tiff":
		if err := tiff.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode TIFF: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	return nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
