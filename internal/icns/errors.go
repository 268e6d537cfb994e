package icns

import (
	"errors"
	"fmt"
)

var (
	ErrConvertFailed        = errors.New("icns conversion failed")
	ErrConverterUnavailable = errors.New("icns converter unavailable")
	ErrUnknownConverter     = errors.New("unknown icns converter")
)

// ConvertError carries the converter's diagnostic output. It matches
// ErrConvertFailed with errors.Is.
type ConvertError struct {
	Tool   string
	Stderr string
	Err    error
}

func (e *ConvertError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s failed: %v: %s", e.Tool, e.Err, e.Stderr)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

func (e *ConvertError) Is(target error) bool {
	return target == ErrConvertFailed
}
