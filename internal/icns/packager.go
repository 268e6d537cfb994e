package icns

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"codecenter-icons/internal/iconset"
	"codecenter-icons/internal/logging"
)

type Packager struct {
	Input  string
	Output string
	// Converter defaults to Iconutil.
	Converter Converter
	Logger    *logging.Logger
}

// Package stages every Entries size of Input as a plain resize, runs the
// converter once and always removes the staging directory afterwards. A
// missing Input returns ErrSourceMissing before anything touches disk.
func (p Packager) Package(ctx context.Context) error {
	if _, err := os.Stat(p.Input); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %w", iconset.ErrSourceMissing, err)
		}
		return fmt.Errorf("stat input: %w", err)
	}
	p.Logger.Info("creating icns", logging.Field("input", p.Input), logging.Field("output", p.Output))
	src, err := iconset.Open(p.Input)
	if err != nil {
		return err
	}

	staging := StagingDir(p.Output)
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(staging); err != nil {
			p.Logger.Warn("failed to remove staging directory", logging.Field("path", staging), logging.Field("error", err))
			return
		}
		p.Logger.Debug("removed staging directory", logging.Field("path", staging))
	}()

	if err := stage(src, staging, p.Logger); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p.Output), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	converter := p.Converter
	if converter == nil {
		converter = Iconutil{}
	}
	if err := converter.Convert(ctx, staging, p.Output); err != nil {
		var convErr *ConvertError
		if errors.As(err, &convErr) {
			p.Logger.Error("icns conversion failed",
				logging.Field("tool", convErr.Tool),
				logging.Field("stderr", logging.Truncate(convErr.Stderr)),
				logging.Field("error", convErr.Err))
		}
		return err
	}
	p.Logger.Info("icns created", logging.Field("path", p.Output))
	return nil
}

func stage(src image.Image, dir string, logger *logging.Logger) error {
	resized := make(map[int]image.Image, len(Entries))
	for _, entry := range Entries {
		img, ok := resized[entry.Size]
		if ok {
			logger.Debugf("reusing %dpx resize for %s", entry.Size, entry.FileName())
		} else {
			img = iconset.Resize(src, entry.Size)
			resized[entry.Size] = img
		}
		path := filepath.Join(dir, entry.FileName())
		if err := imaging.Save(img, path); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
		logger.Info("staged "+entry.FileName(), logging.Field("size", entry.Size))
	}
	return nil
}
