package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"codecenter-icons/internal/config"
	"codecenter-icons/internal/logging"

	flags "github.com/jessevdk/go-flags"
)

var BuildVersion = "dev"

func main() {
	os.Exit(realMain())
}

func realMain() int {
	rootCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	opts, err := config.ParseOptions(nil)
	if err != nil {
		// go-flags has already printed the message.
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			return 0
		}
		return 2
	}

	logger := logging.New(opts.Debug)
	defer func() {
		_ = logger.Close()
	}()
	if opts.PersistLogs {
		if err := logger.EnableFilePersistence(0); err != nil {
			logger.Warn("file logging disabled", logging.Field("error", err))
		}
	}
	logger.Debug("codecenter-icons starting", logging.Field("version", BuildVersion), logging.Field("command", opts.Command))

	if err := run(rootCtx, logger, opts); err != nil {
		reportError(logger, err)
		return exitCode(err)
	}
	logger.Info("done")
	return 0
}
