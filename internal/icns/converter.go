package icns

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	icnsenc "github.com/jackmordaunt/icns/v3"

	"codecenter-icons/internal/iconset"
)

const (
	ConverterIconutil = "iconutil"
	ConverterNative   = "native"
)

// Converter bundles a staged .iconset directory into an .icns file.
type Converter interface {
	Convert(ctx context.Context, iconsetDir, output string) error
}

func NewConverter(name string) (Converter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ConverterIconutil:
		return Iconutil{}, nil
	case ConverterNative:
		return Native{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownConverter, name)
	}
}

// Iconutil runs the macOS iconutil tool. Output is captured rather than
// streamed; stderr is attached to the returned error on failure.
type Iconutil struct {
	// Binary defaults to "iconutil" looked up on PATH.
	Binary string
}

func (c Iconutil) Convert(ctx context.Context, iconsetDir, output string) error {
	bin := c.Binary
	if bin == "" {
		bin = ConverterIconutil
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return fmt.Errorf("%w: %s not found on PATH (required for .icns packaging): %w", ErrConverterUnavailable, bin, err)
	}
	cmd := exec.CommandContext(ctx, path, "-c", "icns", "-o", output, iconsetDir)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &ConvertError{Tool: filepath.Base(bin), Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return nil
}

// Native encodes the largest staged image with a pure-Go encoder, for
// hosts without iconutil. The encoder derives the smaller resolutions
// itself.
type Native struct{}

func (Native) Convert(ctx context.Context, iconsetDir, output string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	img, err := iconset.Open(filepath.Join(iconsetDir, Largest().FileName()))
	if err != nil {
		return &ConvertError{Tool: ConverterNative, Err: err}
	}
	f, err := os.Create(output)
	if err != nil {
		return &ConvertError{Tool: ConverterNative, Err: err}
	}
	if err := icnsenc.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(output)
		return &ConvertError{Tool: ConverterNative, Err: err}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(output)
		return &ConvertError{Tool: ConverterNative, Err: err}
	}
	return nil
}
