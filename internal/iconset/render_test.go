package iconset

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

// opaqueSource returns a fully opaque gradient so resampling has real
// detail to work with.
func opaqueSource(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 0x80, A: 0xff})
		}
	}
	return img
}

func writeSource(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := imaging.Save(opaqueSource(w, h), path); err != nil {
		t.Fatalf("write source: %v", err)
	}
}

func TestDefaultRadius(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{size: 16, want: 4},
		{size: 32, want: 8},
		{size: 33, want: 8},
		{size: 256, want: 64},
		{size: 1024, want: 256},
		{size: 3, want: 0},
	}
	for _, tt := range tests {
		if got := DefaultRadius(tt.size); got != tt.want {
			t.Fatalf("DefaultRadius(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestRoundedCornersAndCenter(t *testing.T) {
	src := opaqueSource(300, 300)
	for _, size := range []int{16, 32, 64, 128, 256, 512, 1024} {
		t.Run(fmt.Sprintf("%d", size), func(t *testing.T) {
			icon, err := Rounded(src, size, -1)
			if err != nil {
				t.Fatalf("Rounded() error = %v", err)
			}
			if b := icon.Bounds(); b.Dx() != size || b.Dy() != size {
				t.Fatalf("bounds = %v, want %dx%d", b, size, size)
			}
			last := size - 1
			for _, p := range []image.Point{{0, 0}, {last, 0}, {0, last}, {last, last}} {
				if a := icon.NRGBAAt(p.X, p.Y).A; a != 0 {
					t.Fatalf("corner %v alpha = %d, want 0", p, a)
				}
			}
			if a := icon.NRGBAAt(size/2, size/2).A; a != 0xff {
				t.Fatalf("center alpha = %d, want 255", a)
			}
		})
	}
}

func TestRoundedMaskIsHardEdged(t *testing.T) {
	const size = 64
	mask := RoundedMask(size, DefaultRadius(size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			a := mask.AlphaAt(x, y).A
			if a != 0 && a != 0xff {
				t.Fatalf("mask(%d,%d) = %d, want 0 or 255", x, y, a)
			}
		}
	}
	// Straight edges are fully covered away from the corners.
	if mask.AlphaAt(size/2, 0).A != 0xff || mask.AlphaAt(0, size/2).A != 0xff {
		t.Fatalf("expected edge midpoints to be opaque")
	}
}

func TestRoundedZeroRadiusKeepsCorners(t *testing.T) {
	icon, err := Rounded(opaqueSource(40, 40), 32, 0)
	if err != nil {
		t.Fatalf("Rounded() error = %v", err)
	}
	if a := icon.NRGBAAt(0, 0).A; a != 0xff {
		t.Fatalf("corner alpha = %d, want 255 with zero radius", a)
	}
}

func TestRoundedRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -16} {
		if _, err := Rounded(opaqueSource(8, 8), size, -1); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("Rounded(size=%d) error = %v, want ErrInvalidSize", size, err)
		}
	}
}

func TestRenderRounded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	writeSource(t, path, 200, 120)

	icon, err := RenderRounded(path, 128, -1)
	if err != nil {
		t.Fatalf("RenderRounded() error = %v", err)
	}
	if b := icon.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Fatalf("non-square source should still give a square icon, got %v", b)
	}
}

func TestRenderRoundedMissingSource(t *testing.T) {
	_, err := RenderRounded(filepath.Join(t.TempDir(), "missing.png"), 32, -1)
	if !errors.Is(err, ErrSourceMissing) {
		t.Fatalf("error = %v, want ErrSourceMissing", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("error = %v, want fs.ErrNotExist in chain", err)
	}
}
