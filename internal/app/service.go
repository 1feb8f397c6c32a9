// Package service composes the itinerary builder, the activity log and the
// test runner into the operations used by the CLI and the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	eventqueue "github.com/victorezeilo/TDD-Prompt-Engineering/internal/adapters/mq/queue"
	workerpool "github.com/victorezeilo/TDD-Prompt-Engineering/internal/adapters/mq/worker"
	repository "github.com/victorezeilo/TDD-Prompt-Engineering/internal/adapters/repository"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/dataset"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/constraints"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/itinerary"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/model"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/types"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/testrun"
	"github.com/victorezeilo/TDD-Prompt-Engineering/pkg/logger"
	"github.com/victorezeilo/TDD-Prompt-Engineering/pkg/metrics"
)

// TestRunner runs the project's tests.
type TestRunner interface {
	Run(ctx context.Context) (testrun.Report, error)
}

// Service implements the operations shared by the menu and the HTTP API.
type Service struct {
	// Core components
	builder *itinerary.Builder
	source  dataset.Source
	store   repository.Store
	runner  TestRunner

	// Configuration
	seed       int64
	manual     int
	queueSize  int
	jobTimeout time.Duration

	// Test runs share one coverage profile.
	runMu sync.Mutex

	// Background test runs
	mu      sync.RWMutex
	queue   *eventqueue.InMemoryQueue
	pool    *workerpool.Pool
	jobs    map[string]*JobStatus
	started bool
	cancel  context.CancelFunc

	now   func() time.Time
	newID func() string

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithBuilder sets the itinerary builder.
func WithBuilder(b *itinerary.Builder) Option {
	return func(s *Service) {
		if b != nil {
			s.builder = b
		}
	}
}

// WithSource sets where the default concert list comes from.
func WithSource(src dataset.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithRunner sets the test runner.
func WithRunner(r TestRunner) Option {
	return func(s *Service) {
		if r != nil {
			s.runner = r
		}
	}
}

// WithSeed sets the seed for the requirement assignment shuffle.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithManualConstraints sets how many requirements go to manual work.
func WithManualConstraints(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.manual = n
		}
	}
}

// WithQueueSize sets how many background test runs may wait.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithJobTimeout bounds each background test run. Zero means no limit
// beyond the runner's own.
func WithJobTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.jobTimeout = d
		}
	}
}

// WithClock sets the time source for job timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator sets the job id generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service over store.
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		source:    dataset.SampleSource{},
		runner:    testrun.New(),
		seed:      42,
		manual:    constraints.DefaultManual,
		queueSize: 8,
		jobs:      make(map[string]*JobStatus),
		now:       time.Now,
		newID:     uuid.NewString,
		logger:    logger.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.builder == nil {
		s.builder = itinerary.New(
			itinerary.WithLogger(s.logger.Named("itinerary")),
			itinerary.WithRecorder(metrics.Default()),
		)
	}

	return s
}

// Itinerary validates concerts and builds their itinerary.
func (s *Service) Itinerary(ctx context.Context, concerts []model.Concert) (itinerary.Result, error) {
	if err := itinerary.Validate(concerts); err != nil {
		return itinerary.Result{}, err
	}
	return s.builder.Build(ctx, concerts), nil
}

// SampleItinerary builds the itinerary of the configured dataset.
func (s *Service) SampleItinerary(ctx context.Context) (itinerary.Result, error) {
	concerts, err := s.source.Concerts(ctx)
	if err != nil {
		return itinerary.Result{}, fmt.Errorf("load concerts: %w", err)
	}
	return s.builder.Build(ctx, concerts), nil
}

// RunTests runs the test suite and logs the run and its coverage.
func (s *Service) RunTests(ctx context.Context) (testrun.Report, error) {
	report, err := s.runTests(ctx)
	if err != nil {
		return testrun.Report{}, err
	}

	metrics.RecordTestRun(report.Results.Success, report.Coverage.Total)

	if _, err := s.store.LogTestRun(ctx, report.Results); err != nil {
		return report, fmt.Errorf("log test run: %w", err)
	}
	if _, err := s.store.LogCoverage(ctx, report.Coverage); err != nil {
		return report, fmt.Errorf("log coverage: %w", err)
	}
	return report, nil
}

// Coverage runs the test suite for its coverage only. Nothing is logged.
func (s *Service) Coverage(ctx context.Context) (types.Coverage, error) {
	report, err := s.runTests(ctx)
	if err != nil {
		return types.Coverage{}, err
	}
	return report.Coverage, nil
}

func (s *Service) runTests(ctx context.Context) (testrun.Report, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	report, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.Error(ctx, "test run failed", logger.Error(err))
		return testrun.Report{}, err
	}
	return report, nil
}

// RecordTaskTime logs minutes spent on a task.
func (s *Service) RecordTaskTime(ctx context.Context, task string, minutes float64) (repository.TaskTime, error) {
	entry, err := s.store.LogTaskTime(ctx, task, minutes)
	if err != nil {
		return repository.TaskTime{}, err
	}
	metrics.RecordTaskMinutes(entry.Task, entry.Duration)
	return entry, nil
}

// LogFileChange records a change to a source file.
func (s *Service) LogFileChange(ctx context.Context, filename, action string) (repository.FileChange, error) {
	return s.store.LogFileChange(ctx, filename, action)
}

// Progress summarizes the activity log.
type Progress struct {
	ExperimentStart string                     `json:"experiment_start"`
	TestRuns        int                        `json:"test_runs"`
	FileChanges     int                        `json:"file_changes"`
	LatestRun       *repository.TestRun        `json:"latest_run,omitempty"`
	LatestCoverage  *repository.CoverageReport `json:"latest_coverage,omitempty"`
	TaskTimes       []repository.TaskTime      `json:"task_times"`
}

// Progress reads the activity log and summarizes it.
func (s *Service) Progress(ctx context.Context) (Progress, error) {
	doc, err := s.store.Snapshot(ctx)
	if err != nil {
		return Progress{}, err
	}

	p := Progress{
		ExperimentStart: doc.ExperimentStart,
		TestRuns:        len(doc.TestRuns),
		FileChanges:     len(doc.FileChanges),
		TaskTimes:       append([]repository.TaskTime{}, doc.TaskTimes...),
	}
	if run, ok := doc.LatestTestRun(); ok {
		p.LatestRun = &run
	}
	if cov, ok := doc.LatestCoverage(); ok {
		p.LatestCoverage = &cov
	}
	return p, nil
}

// EnsureAssignment returns the saved requirement split, creating and
// saving one on first use. created reports whether it was new.
func (s *Service) EnsureAssignment(ctx context.Context) (a constraints.Assignment, created bool, err error) {
	a, err = s.store.Assignment(ctx)
	if err == nil && a.Valid() {
		return a, false, nil
	}
	if err != nil && !errors.Is(err, repository.ErrNoAssignment) {
		return constraints.Assignment{}, false, err
	}

	a = constraints.Assign(rand.New(rand.NewSource(s.seed)), s.manual)
	if err := s.store.SaveAssignment(ctx, a); err != nil {
		return constraints.Assignment{}, false, err
	}
	s.logger.Info(ctx, "constraints assigned",
		logger.Any("manual", a.Manual),
		logger.Any("ai_assisted", a.AI))
	return a, true, nil
}

// Requirements lists every requirement and, when one exists, the
// participant's split of them.
type Requirements struct {
	All        []string `json:"all"`
	Manual     []string `json:"manual,omitempty"`
	AIAssisted []string `json:"ai_assisted,omitempty"`
}

// Requirements returns the requirement texts and the saved assignment.
func (s *Service) Requirements(ctx context.Context) (Requirements, error) {
	r := Requirements{All: constraints.All()}

	a, err := s.store.Assignment(ctx)
	switch {
	case errors.Is(err, repository.ErrNoAssignment):
		return r, nil
	case err != nil:
		return Requirements{}, err
	}

	r.Manual = a.ManualText()
	r.AIAssisted = a.AIText()
	return r, nil
}
