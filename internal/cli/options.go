package cli

import (
	"time"

	"github.com/victorezeilo/TDD-Prompt-Engineering/pkg/logger"
)

// Option configures a Menu.
type Option func(*Menu)

// WithClearScreen clears the terminal before each screen.
func WithClearScreen(clear bool) Option {
	return func(m *Menu) {
		m.clear = clear
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(m *Menu) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock sets the time source used for relative timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Menu) {
		if now != nil {
			m.now = now
		}
	}
}
