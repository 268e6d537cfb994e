package iconset

import "errors"

var (
	ErrSourceMissing = errors.New("source image not found")
	ErrInvalidSize   = errors.New("icon size must be positive")
)
