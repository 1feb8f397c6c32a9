package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	eventqueue "github.com/victorezeilo/TDD-Prompt-Engineering/internal/adapters/mq/queue"
	workerpool "github.com/victorezeilo/TDD-Prompt-Engineering/internal/adapters/mq/worker"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/types"
	"github.com/victorezeilo/TDD-Prompt-Engineering/pkg/logger"
)

// Job states.
const (
	JobQueued  = "queued"
	JobRunning = "running"
	JobDone    = "done"
	JobFailed  = "failed"
)

// Sentinel kinds for background test runs.
var (
	ErrNotStarted = errors.New("service not started")
	ErrBusy       = errors.New("too many test runs waiting")
	ErrNoJob      = errors.New("test run job not found")
	ErrStopped    = errors.New("test run cancelled: service stopped")
)

// JobStatus is the state of a background test run.
type JobStatus struct {
	ID        string             `json:"id"`
	State     string             `json:"state"`
	Requested time.Time          `json:"requested"`
	Started   *time.Time         `json:"started,omitempty"`
	Finished  *time.Time         `json:"finished,omitempty"`
	Error     string             `json:"error,omitempty"`
	Results   *types.TestResults `json:"results,omitempty"`
	Coverage  *float64           `json:"coverage,omitempty"`
}

// Start launches the background test run worker.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.queue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	s.pool = workerpool.NewPool(1, s.queue, workerpool.HandlerFunc(s.handleJob),
		workerpool.WithLogger(s.logger),
		workerpool.WithJobTimeout(s.jobTimeout))
	s.pool.Start(runCtx)

	s.started = true
	s.logger.Info(ctx, "test run worker started", logger.Int("queueSize", s.queueSize))
	return nil
}

// Stop waits for the in-flight test run and stops the worker. Jobs still
// waiting in the queue are marked failed with ErrStopped.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	pool, cancel := s.pool, s.cancel
	s.mu.Unlock()

	err := pool.Shutdown(ctx)
	cancel()

	dropped := s.failQueued()
	s.logger.Info(ctx, "test run worker stopped", logger.Int("dropped", dropped))
	return err
}

// failQueued fails every job that never reached the worker.
func (s *Service) failQueued() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, st := range s.jobs {
		if st.State != JobQueued {
			continue
		}
		finished := s.now()
		st.State = JobFailed
		st.Finished = &finished
		st.Error = ErrStopped.Error()
		n++
	}
	return n
}

// SubmitTestRun queues a background test run.
func (s *Service) SubmitTestRun(ctx context.Context) (JobStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return JobStatus{}, ErrNotStarted
	}

	job := eventqueue.Job{ID: s.newID(), Requested: s.now()}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		if errors.Is(err, eventqueue.ErrFull) {
			return JobStatus{}, fmt.Errorf("%w: %w", ErrBusy, err)
		}
		return JobStatus{}, err
	}

	status := &JobStatus{ID: job.ID, State: JobQueued, Requested: job.Requested}
	s.jobs[job.ID] = status
	return *status, nil
}

// TestRunJob returns the current status of a background test run.
func (s *Service) TestRunJob(_ context.Context, id string) (JobStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status, ok := s.jobs[id]
	if !ok {
		return JobStatus{}, fmt.Errorf("%w: %s", ErrNoJob, id)
	}
	return *status, nil
}

// handleJob runs one queued test run.
func (s *Service) handleJob(ctx context.Context, job eventqueue.Job) error {
	s.update(job.ID, func(st *JobStatus) {
		started := s.now()
		st.State = JobRunning
		st.Started = &started
	})

	// The worker recovers panics; the job must not be left running.
	defer func() {
		if r := recover(); r != nil {
			s.update(job.ID, func(st *JobStatus) {
				finished := s.now()
				st.Finished = &finished
				st.State = JobFailed
				st.Error = fmt.Sprint(r)
			})
			panic(r)
		}
	}()

	report, err := s.RunTests(ctx)

	s.update(job.ID, func(st *JobStatus) {
		finished := s.now()
		st.Finished = &finished
		if err != nil {
			st.State = JobFailed
			st.Error = err.Error()
			return
		}
		st.State = JobDone
		results := report.Results
		total := report.Coverage.Total
		st.Results = &results
		st.Coverage = &total
	})
	return err
}

func (s *Service) update(id string, mutate func(*JobStatus)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.jobs[id]; ok {
		mutate(st)
	}
}
