package iconset

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"codecenter-icons/internal/logging"
)

const (
	// RetinaSourceSize is the rendered size that doubles as RetinaName.
	RetinaSourceSize = 256
	RetinaName       = "128x128@2x.png"
)

var DefaultSizes = []int{32, 128, 256}

func FileName(size int) string {
	return fmt.Sprintf("%dx%d.png", size, size)
}

type Generator struct {
	Source string
	OutDir string
	// Sizes defaults to DefaultSizes when empty.
	Sizes  []int
	Logger *logging.Logger
}

type Result struct {
	Files []string
	// Retina is the path of the @2x copy, empty when no 256px icon existed.
	Retina string
}

// Generate renders every size into OutDir and then copies the 256px icon
// to RetinaName. The source is decoded before anything is written, so a
// missing source leaves the output directory untouched.
func (g Generator) Generate() (Result, error) {
	sizes := g.Sizes
	if len(sizes) == 0 {
		sizes = DefaultSizes
	}
	for _, size := range sizes {
		if size <= 0 {
			return Result{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
		}
	}

	g.Logger.Info("source logo", logging.Field("path", g.Source))
	src, err := Open(g.Source)
	if err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(g.OutDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}

	var result Result
	for _, size := range sizes {
		g.Logger.Info(fmt.Sprintf("rendering %dx%d rounded icon", size, size),
			logging.Field("radius", DefaultRadius(size)))
		icon, err := Rounded(src, size, -1)
		if err != nil {
			return result, err
		}
		path := filepath.Join(g.OutDir, FileName(size))
		if err := savePNG(icon, path); err != nil {
			return result, err
		}
		result.Files = append(result.Files, path)
		g.Logger.Info("saved icon", logging.Field("path", path))
	}

	retinaSrc := filepath.Join(g.OutDir, FileName(RetinaSourceSize))
	if _, err := os.Stat(retinaSrc); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return result, fmt.Errorf("stat %s: %w", retinaSrc, err)
		}
		g.Logger.Debugf("no %s icon, skipping %s copy", FileName(RetinaSourceSize), RetinaName)
		return result, nil
	}
	retina := filepath.Join(g.OutDir, RetinaName)
	if err := copyFile(retinaSrc, retina); err != nil {
		return result, err
	}
	result.Retina = retina
	result.Files = append(result.Files, retina)
	g.Logger.Info("copied 256x256 as "+RetinaName, logging.Field("path", retina))
	return result, nil
}

func savePNG(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}
