package testrun

import "errors"

// Sentinel kinds for test runner failures.
var (
	ErrToolchain = errors.New("go toolchain could not be run")
	ErrParse     = errors.New("test output could not be parsed")
)
