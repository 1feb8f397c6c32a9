package itinerary

import (
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/distance"
	"github.com/victorezeilo/TDD-Prompt-Engineering/pkg/logger"
)

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithLogger sets the logger used for build summaries and conflict traces.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithRecorder sets the metrics sink.
func WithRecorder(r Recorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithMetric replaces the distance metric used by the anchor rule.
func WithMetric(m distance.Metric) Option {
	return func(b *Builder) {
		if m != nil {
			b.metric = m
		}
	}
}
