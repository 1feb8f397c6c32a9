// Package itinerary builds a conflict-free concert itinerary: one concert
// per artist, at most one per day, in date order.
package itinerary

import (
	"context"
	"time"

	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/dedupe"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/distance"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/model"
	"github.com/victorezeilo/TDD-Prompt-Engineering/pkg/logger"
)

const nanosecondsPerMillisecond = 1e6

// Recorder receives build and conflict observations.
type Recorder interface {
	RecordBuild(result string, durationMs float64, length int)
	RecordConflict(rule string, replaced bool)
}

type nopRecorder struct{}

func (nopRecorder) RecordBuild(string, float64, int) {}
func (nopRecorder) RecordConflict(string, bool)      {}

// Builder composes earliest-per-artist selection and conflict resolution.
// A Builder only reads its configuration and is safe for concurrent use.
type Builder struct {
	metric   distance.Metric
	recorder Recorder
	logger   logger.Logger
}

// New constructs a Builder. Without options it logs nothing, records
// nothing and uses the Euclidean metric.
func New(opts ...Option) *Builder {
	b := &Builder{
		metric:   distance.Default,
		recorder: nopRecorder{},
		logger:   logger.Nop(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build returns the itinerary for concerts, or the empty sentinel when there
// are none. The input slice is never modified.
func (b *Builder) Build(ctx context.Context, concerts []model.Concert) Result {
	start := time.Now()

	if len(concerts) == 0 {
		b.recorder.RecordBuild(KindEmpty.String(), elapsedMs(start), 0)
		b.logger.Debug(ctx, "no concerts to schedule")
		return Empty()
	}

	sel := dedupe.SelectEarliest(concerts)
	stops, stats := resolve(sel, b.metric)

	for _, c := range stats.Conflicts {
		b.recorder.RecordConflict(string(c.Rule), c.Replaced)
		b.logger.Debug(ctx, "same-day conflict",
			logger.String("date", c.Incumbent.Date),
			logger.String("rule", string(c.Rule)),
			logger.String("incumbent", c.Incumbent.Artist),
			logger.String("challenger", c.Challenger.Artist),
			logger.Bool("replaced", c.Replaced))
	}

	b.recorder.RecordBuild(KindOK.String(), elapsedMs(start), len(stops))
	b.logger.Info(ctx, "itinerary built",
		logger.Int("candidates", len(concerts)),
		logger.Int("artists", sel.Len()),
		logger.Int("stops", len(stops)),
		logger.Int("conflicts", len(stats.Conflicts)),
		logger.Int("replacements", stats.Replacements()))

	return OK(stops)
}

// Build runs a default Builder over concerts.
func Build(concerts []model.Concert) Result {
	return New().Build(context.Background(), concerts)
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond
}
