//go:build !windows

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

type runLock struct {
	lock *flock.Flock
}

func (l *runLock) Release() error {
	if l == nil || l.lock == nil || !l.lock.Locked() {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("unlock %s: %w", l.lock.Path(), err)
	}
	return nil
}

// acquireRunLock takes the lock file for key without blocking. heldByOther
// is true when another process already owns it.
func acquireRunLock(key string) (lock *runLock, heldByOther bool, err error) {
	dir, err := runLockDir()
	if err != nil {
		return nil, false, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, false, fmt.Errorf("create lock directory: %w", err)
	}
	f := flock.New(filepath.Join(dir, key+".lock"))
	locked, err := f.TryLock()
	if err != nil {
		return nil, false, fmt.Errorf("lock %s: %w", f.Path(), err)
	}
	if !locked {
		return nil, true, nil
	}
	return &runLock{lock: f}, false, nil
}

func runLockDir() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache directory: %w", err)
	}
	return filepath.Join(cache, "codecenter-icons", "locks"), nil
}
