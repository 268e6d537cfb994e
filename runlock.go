package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"

	"codecenter-icons/internal/logging"
)

var errRunInProgress = errors.New("another icon generation run is writing to this directory")

// runLockKey names the lock guarding one output directory.
func runLockKey(dir string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(dir)))
	return hex.EncodeToString(sum[:8])
}

// withRunLock runs fn while holding the lock for dir. When the lock cannot
// be set up, fn still runs and a warning is logged.
func withRunLock(logger *logging.Logger, dir string, fn func() error) error {
	lock, heldByOther, err := acquireRunLock(runLockKey(dir))
	if err != nil {
		logger.Warn("run lock unavailable, continuing without it", logging.Field("dir", dir), logging.Field("error", err))
		return fn()
	}
	if heldByOther {
		return fmt.Errorf("%w: %s", errRunInProgress, dir)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("failed to release run lock", logging.Field("dir", dir), logging.Field("error", err))
		}
	}()
	return fn()
}
