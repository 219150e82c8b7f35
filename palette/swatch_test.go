package palette

import (
	"bytes"
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestNearestBricks(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want string
	}{
		{"reddish", color.NRGBA{200, 50, 50, 255}, "Bright Red"},
		{"exact white", RGB{242, 243, 242}, "White"},
		{"pure black", color.NRGBA{0, 0, 0, 255}, "Black"},
		{"sky", color.NRGBA{20, 100, 180, 255}, "Bright Blue"},
		{"alpha ignored", color.NRGBA{200, 50, 50, 10}, "Bright Red"},
		{"mid grey", color.Gray{Y: 160}, "Medium Stone Grey"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Bricks.Nearest(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Name != tt.want {
				t.Errorf("got %q, want %q", got.Name, tt.want)
			}
		})
	}
}

func TestIndexTieKeepsEarliest(t *testing.T) {
	a := Swatch{ID: 1, Name: "a", Color: RGB{0, 0, 0}}
	b := Swatch{ID: 2, Name: "b", Color: RGB{2, 0, 0}}
	mid := color.NRGBA{1, 0, 0, 255}

	for range 10 {
		if got, _ := (Palette{a, b}).Nearest(mid); got.ID != 1 {
			t.Fatalf("a,b: got swatch %d, want 1", got.ID)
		}
		if got, _ := (Palette{b, a}).Nearest(mid); got.ID != 2 {
			t.Fatalf("b,a: got swatch %d, want 2", got.ID)
		}
	}
}

func TestIndexEmpty(t *testing.T) {
	if _, err := (Palette{}).Index(RGB{}); !errors.Is(err, ErrEmptyPalette) {
		t.Fatalf("got %v, want ErrEmptyPalette", err)
	}
	if _, err := Palette(nil).Nearest(RGB{}); !errors.Is(err, ErrEmptyPalette) {
		t.Fatalf("got %v, want ErrEmptyPalette", err)
	}
}

func TestDistance(t *testing.T) {
	got := Distance(RGB{0, 0, 0}, RGB{3, 4, 0})
	if got != 5 {
		t.Errorf("got %v, want 5", got)
	}

	got = Distance(color.NRGBA{200, 50, 50, 255}, Bricks[7].Color)
	if want := math.Sqrt(645); math.Abs(got-want) > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestBricksTable(t *testing.T) {
	if len(Bricks) != 12 {
		t.Fatalf("got %d bricks, want 12", len(Bricks))
	}

	seen := map[int]bool{}
	for _, s := range Bricks {
		if seen[s.ID] {
			t.Errorf("duplicate id %d", s.ID)
		}
		seen[s.ID] = true
	}

	s, ok := Bricks.ByID(302421)
	if !ok || s.Name != "Bright Red" {
		t.Errorf("ByID(302421) = %+v, %v", s, ok)
	}
	if _, ok := Bricks.ByID(-1); ok {
		t.Error("ByID(-1) found a swatch")
	}
}

func TestHex(t *testing.T) {
	if got := (RGB{196, 40, 27}).Hex(); got != "#c4281b" {
		t.Errorf("got %s, want #c4281b", got)
	}
}

func TestColors(t *testing.T) {
	pal := Bricks.Colors()
	if len(pal) != len(Bricks) {
		t.Fatalf("got %d colors, want %d", len(pal), len(Bricks))
	}

	r, g, b, a := pal[3].RGBA()
	if r>>8 != 245 || g>>8 != 205 || b>>8 != 47 || a != 0xFFFF {
		t.Errorf("unexpected color %d %d %d %d", r>>8, g>>8, b>>8, a)
	}
	if got := pal.Index(RGB{245, 205, 47}); got != 3 {
		t.Errorf("color.Palette.Index = %d, want 3", got)
	}
}

func TestRIFFRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteRIFF(&buf, Bricks)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if want := int64(12 + 8 + 4 + 4*len(Bricks)); n != want {
		t.Errorf("wrote %d bytes, want %d", n, want)
	}

	got, err := ReadRIFF(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(Bricks) {
		t.Fatalf("got %d colors, want %d", len(got), len(Bricks))
	}
	for i := range got {
		if got[i].Color != Bricks[i].Color {
			t.Errorf("color %d: got %v, want %v", i, got[i].Color, Bricks[i].Color)
		}
		if got[i].ID != i+1 {
			t.Errorf("color %d: got id %d", i, got[i].ID)
		}
	}
}

func TestReadRIFFRejectsOtherForms(t *testing.T) {
	data := []byte("RIFF\x04\x00\x00\x00WAVE")
	if _, err := ReadRIFF(bytes.NewReader(data)); err == nil {
		t.Fatal("expected an error for a non-PAL RIFF stream")
	}
}
