package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"codecenter-icons/internal/config"
	"codecenter-icons/internal/icns"
	"codecenter-icons/internal/iconset"
	"codecenter-icons/internal/logging"
)

var errUsage = errors.New("invalid options")

func run(ctx context.Context, logger *logging.Logger, opts config.Options) error {
	switch opts.Command {
	case config.CommandIconSet:
		return runIconSet(logger, opts.Root, opts.IconSet)
	case config.CommandICNS:
		return runICNS(ctx, logger, opts.Root, opts.ICNS)
	case config.CommandAll:
		if err := runIconSet(logger, opts.Root, opts.All.IconSet); err != nil {
			return err
		}
		return runICNS(ctx, logger, opts.Root, opts.All.ICNS)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, opts.Command)
	}
}

func runIconSet(logger *logging.Logger, root string, opts config.IconSetOptions) error {
	resolved, err := opts.Resolved(root)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	return withRunLock(logger, resolved.OutDir, func() error {
		result, err := iconset.Generator{
			Source: resolved.Source,
			OutDir: resolved.OutDir,
			Sizes:  resolved.Sizes,
			Logger: logger,
		}.Generate()
		if err != nil {
			return err
		}
		logger.Info("rounded icons generated", logging.Field("dir", resolved.OutDir), logging.Field("files", len(result.Files)))
		return nil
	})
}

func runICNS(ctx context.Context, logger *logging.Logger, root string, opts config.ICNSOptions) error {
	resolved, err := opts.Resolved(root)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	converter, err := icns.NewConverter(resolved.Converter)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	return withRunLock(logger, filepath.Dir(resolved.Output), func() error {
		return icns.Packager{
			Input:     resolved.Input,
			Output:    resolved.Output,
			Converter: converter,
			Logger:    logger,
		}.Package(ctx)
	})
}

func reportError(logger *logging.Logger, err error) {
	switch {
	case errors.Is(err, iconset.ErrSourceMissing):
		logger.Error("input image not found", logging.Field("error", err))
	case errors.Is(err, errRunInProgress):
		logger.Error("another icon generation run is in progress", logging.Field("error", err))
	case errors.Is(err, icns.ErrConvertFailed):
		// Packager already logged the converter diagnostics.
	default:
		logger.Error("icon generation failed", logging.Field("error", err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		return 1
	}
}
