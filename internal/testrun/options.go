package testrun

import (
	"time"

	"github.com/victorezeilo/TDD-Prompt-Engineering/pkg/logger"
)

// Option applies a configuration option to the Runner.
type Option func(*Runner)

// WithExecutor sets the command executor.
func WithExecutor(e Executor) Option {
	return func(r *Runner) {
		if e != nil {
			r.exec = e
		}
	}
}

// WithGoBinary sets the go binary to invoke.
func WithGoBinary(path string) Option {
	return func(r *Runner) {
		if path != "" {
			r.goBinary = path
		}
	}
}

// WithPackage sets the package pattern under test.
func WithPackage(pattern string) Option {
	return func(r *Runner) {
		if pattern != "" {
			r.pkg = pattern
		}
	}
}

// WithProfile sets the coverage profile path.
func WithProfile(path string) Option {
	return func(r *Runner) {
		if path != "" {
			r.profile = path
		}
	}
}

// WithTimeout bounds a single run. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d >= 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClock sets the time source used when events carry no elapsed time.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}
