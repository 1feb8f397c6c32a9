package worker

import "errors"

// ErrHandlerPanic wraps a panic recovered from a job handler.
var ErrHandlerPanic = errors.New("job handler panicked")
