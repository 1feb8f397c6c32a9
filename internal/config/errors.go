package config

import "errors"

var (
	// ErrInvalidConfig reports a loaded value that fails Validate.
	ErrInvalidConfig = errors.New("config: invalid value")
	// ErrLoadConfig reports a file or environment source that could not be read.
	ErrLoadConfig = errors.New("config: load failed")
)
