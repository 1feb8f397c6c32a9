package queue

import "errors"

// Sentinel kinds for queue errors.
var (
	ErrFull   = errors.New("test run queue is full")
	ErrClosed = errors.New("test run queue is closed")
)
