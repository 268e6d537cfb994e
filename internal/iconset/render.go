// Package iconset renders rounded-corner PNG icons from a source logo.
package iconset

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// DefaultRadius is the corner radius used when none is given.
func DefaultRadius(size int) int {
	return size / 4
}

// Open decodes the image at path. A missing file yields an error matching
// both ErrSourceMissing and fs.ErrNotExist.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrSourceMissing, err)
		}
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Resize scales src to size×size with a Lanczos filter, ignoring the
// source aspect ratio.
func Resize(src image.Image, size int) *image.NRGBA {
	return imaging.Resize(src, size, size, imaging.Lanczos)
}

// RoundedMask returns a size×size alpha mask that is opaque inside a
// rounded rectangle spanning the whole canvas and transparent outside.
// Edges are hard: every pixel is either 0 or 255.
func RoundedMask(size, radius int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	if size <= 0 {
		return mask
	}
	if radius > size/2 {
		radius = size / 2
	}

	dc := gg.NewContext(size, size)
	dc.DrawRoundedRectangle(0, 0, float64(size), float64(size), float64(radius))
	dc.SetColor(color.White)
	dc.Fill()

	rendered := dc.Image()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if _, _, _, a := rendered.At(x, y).RGBA(); a >= 0x8000 {
				mask.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	return mask
}

// Rounded resizes src to size×size and clips its corners with a rounded
// mask. A negative radius selects DefaultRadius(size).
func Rounded(src image.Image, size, radius int) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if radius < 0 {
		radius = DefaultRadius(size)
	}
	resized := Resize(src, size)
	mask := RoundedMask(size, radius)

	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	xdraw.DrawMask(dst, dst.Bounds(), resized, resized.Bounds().Min, mask, image.Point{}, xdraw.Src)
	return dst, nil
}

// RenderRounded opens the image at path and returns its rounded
// size×size variant.
func RenderRounded(path string, size, radius int) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	return Rounded(src, size, radius)
}
