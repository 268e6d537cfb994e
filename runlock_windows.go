//go:build windows

package main

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

type runLock struct {
	handle windows.Handle
}

func (l *runLock) Release() error {
	if l == nil || l.handle == 0 {
		return nil
	}
	err := windows.CloseHandle(l.handle)
	l.handle = 0
	if err != nil {
		return fmt.Errorf("close run mutex handle: %w", err)
	}
	return nil
}

func runMutexName(key string) string {
	return `Local\CodeCenterIcons-` + key
}

func acquireRunLock(key string) (*runLock, bool, error) {
	name, err := windows.UTF16PtrFromString(runMutexName(key))
	if err != nil {
		return nil, false, fmt.Errorf("encode mutex name: %w", err)
	}
	// CreateMutex hands back a valid handle together with
	// ERROR_ALREADY_EXISTS when another process owns the name.
	handle, err := windows.CreateMutex(nil, false, name)
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		if handle != 0 {
			_ = windows.CloseHandle(handle)
		}
		return nil, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("create run mutex: %w", err)
	}
	return &runLock{handle: handle}, false, nil
}
