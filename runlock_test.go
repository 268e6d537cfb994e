//go:build !windows

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codecenter-icons/internal/config"
	"codecenter-icons/internal/logging"
)

// useCacheDir points os.UserCacheDir at a temp directory on linux and darwin.
func useCacheDir(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	return home
}

func TestAcquireRunLockPerDirectory(t *testing.T) {
	useCacheDir(t)
	projA := runLockKey("/work/a/src-tauri/icons")
	projB := runLockKey("/work/b/src-tauri/icons")

	first, held, err := acquireRunLock(projA)
	if err != nil || held {
		t.Fatalf("acquireRunLock(a) = held %v, err %v", held, err)
	}
	if _, held, err := acquireRunLock(projA); err != nil || !held {
		t.Fatalf("second acquireRunLock(a) = held %v, err %v, want held", held, err)
	}

	other, held, err := acquireRunLock(projB)
	if err != nil || held {
		t.Fatalf("acquireRunLock(b) = held %v, err %v, want acquired", held, err)
	}
	if err := other.Release(); err != nil {
		t.Fatalf("Release(b) error = %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release(a) error = %v", err)
	}
	again, held, err := acquireRunLock(projA)
	if err != nil || held {
		t.Fatalf("acquireRunLock(a) after release = held %v, err %v", held, err)
	}
	_ = again.Release()
}

func TestRunLockKey(t *testing.T) {
	if runLockKey("/work/a/icons") != runLockKey("/work/a/./icons/") {
		t.Fatalf("equivalent paths produced different keys")
	}
	if runLockKey("/work/a/icons") == runLockKey("/work/b/icons") {
		t.Fatalf("different directories share a key")
	}
}

func TestWithRunLockHeldByOther(t *testing.T) {
	useCacheDir(t)
	dir := filepath.Join(t.TempDir(), "icons")
	held, _, err := acquireRunLock(runLockKey(dir))
	if err != nil {
		t.Fatalf("acquireRunLock() error = %v", err)
	}
	defer func() { _ = held.Release() }()

	called := false
	err = withRunLock(logging.Discard(), dir, func() error {
		called = true
		return nil
	})
	if !errors.Is(err, errRunInProgress) {
		t.Fatalf("withRunLock() error = %v, want errRunInProgress", err)
	}
	if called {
		t.Fatalf("fn ran while another holder owned the lock")
	}
	if exitCode(err) != 1 {
		t.Fatalf("exitCode() = %d, want 1", exitCode(err))
	}
}

func TestRunIconSetWithoutCacheDir(t *testing.T) {
	t.Setenv("HOME", "")
	t.Setenv("XDG_CACHE_HOME", "")
	if _, err := os.UserCacheDir(); err == nil {
		t.Skip("user cache directory still resolvable on this platform")
	}

	root := t.TempDir()
	writeLogo(t, filepath.Join(root, "trans_bg.png"))
	opts, err := config.ParseOptions([]string{"--root", root, "iconset"})
	if err != nil {
		t.Fatalf("ParseOptions failed: %v", err)
	}

	var out, errOut bytes.Buffer
	logger := logging.New(false)
	logger.SetOutput(&out, &errOut)
	if err := run(context.Background(), logger, opts); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(errOut.String(), "run lock unavailable") {
		t.Fatalf("stderr = %q, want lock warning", errOut.String())
	}
	iconsDir := filepath.Join(root, "src-tauri", "icons")
	if got, want := names(t, iconsDir), "128x128.png,128x128@2x.png,256x256.png,32x32.png"; got != want {
		t.Fatalf("icons dir = %s, want %s", got, want)
	}
}

func TestRunAllLocksEachOutputDirectory(t *testing.T) {
	useCacheDir(t)
	root := t.TempDir()
	writeLogo(t, filepath.Join(root, "trans_bg.png"))

	// A run on another project must not block this one.
	otherDir := filepath.Join(t.TempDir(), "src-tauri", "icons")
	other, held, err := acquireRunLock(runLockKey(otherDir))
	if err != nil || held {
		t.Fatalf("acquireRunLock(other) = held %v, err %v", held, err)
	}
	defer func() { _ = other.Release() }()

	opts, err := config.ParseOptions([]string{"--root", root, "all", "--converter", "native"})
	if err != nil {
		t.Fatalf("ParseOptions failed: %v", err)
	}
	if err := run(context.Background(), logging.Discard(), opts); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	iconsDir := filepath.Join(root, "src-tauri", "icons")
	lock, held, err := acquireRunLock(runLockKey(iconsDir))
	if err != nil || held {
		t.Fatalf("lock for %s still held after run: held %v, err %v", iconsDir, held, err)
	}
	_ = lock.Release()
}
