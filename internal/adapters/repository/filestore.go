package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/constraints"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/types"
	"github.com/victorezeilo/TDD-Prompt-Engineering/pkg/logger"
	"github.com/victorezeilo/TDD-Prompt-Engineering/pkg/metrics"
)

// File permission constants.
const (
	logFilePermission   = 0o600
	directoryPermission = 0o750
)

// FileStore implements Store on a single JSON file. Every operation is a
// read-modify-write of the whole document, serialized by a mutex and
// committed with a rename so readers never see a partial file.
type FileStore struct {
	mu     sync.Mutex
	path   string
	now    func() time.Time
	newID  func() string
	logger logger.Logger
}

var _ Store = (*FileStore)(nil)

// Open returns a FileStore for path, creating the document with an
// experiment start time if it does not exist yet.
func Open(ctx context.Context, path string, opts ...Option) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: logger.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := s.write(s.fresh()); err != nil {
			return nil, err
		}
		s.logger.Info(ctx, "activity log created", logger.String("path", path))
	} else if err != nil {
		return nil, fmt.Errorf("stat activity log %s: %w", path, err)
	}

	return s, nil
}

// Path returns the file backing the store.
func (s *FileStore) Path() string { return s.path }

// LogTestRun implements Store.
func (s *FileStore) LogTestRun(ctx context.Context, results types.TestResults) (TestRun, error) {
	run := TestRun{ID: s.newID(), Timestamp: s.timestamp(), Results: results}
	err := s.update(ctx, "test_run", func(d *Document) {
		d.TestRuns = append(d.TestRuns, run)
	})
	return run, err
}

// LogFileChange implements Store. An empty action is recorded as "modified".
func (s *FileStore) LogFileChange(ctx context.Context, filename, action string) (FileChange, error) {
	if action == "" {
		action = "modified"
	}
	change := FileChange{ID: s.newID(), Timestamp: s.timestamp(), Filename: filename, Action: action}
	err := s.update(ctx, "file_change", func(d *Document) {
		d.FileChanges = append(d.FileChanges, change)
	})
	return change, err
}

// LogCoverage implements Store.
func (s *FileStore) LogCoverage(ctx context.Context, coverage types.Coverage) (CoverageReport, error) {
	if coverage.Files == nil {
		coverage.Files = map[string]types.FileCoverage{}
	}
	report := CoverageReport{ID: s.newID(), Timestamp: s.timestamp(), Coverage: coverage}
	err := s.update(ctx, "coverage", func(d *Document) {
		d.CoverageReports = append(d.CoverageReports, report)
	})
	return report, err
}

// LogTaskTime implements Store. Minutes must be non-negative and the task named.
func (s *FileStore) LogTaskTime(ctx context.Context, task string, minutes float64) (TaskTime, error) {
	task = strings.TrimSpace(task)
	if task == "" || minutes < 0 {
		return TaskTime{}, fmt.Errorf("%w: task %q, %v minutes", ErrInvalidTask, task, minutes)
	}
	entry := TaskTime{ID: s.newID(), Timestamp: s.timestamp(), Task: task, Duration: minutes}
	err := s.update(ctx, "task_time", func(d *Document) {
		d.TaskTimes = append(d.TaskTimes, entry)
	})
	return entry, err
}

// SaveAssignment implements Store.
func (s *FileStore) SaveAssignment(ctx context.Context, a constraints.Assignment) error {
	saved := &ConstraintAssignment{
		Manual:     append([]int{}, a.Manual...),
		AIAssisted: append([]int{}, a.AI...),
		AssignedAt: s.timestamp(),
	}
	return s.update(ctx, "assignment", func(d *Document) {
		d.ConstraintAssignments = saved
	})
}

// Assignment implements Store.
func (s *FileStore) Assignment(ctx context.Context) (constraints.Assignment, error) {
	doc, err := s.Snapshot(ctx)
	if err != nil {
		return constraints.Assignment{}, err
	}
	if doc.ConstraintAssignments == nil {
		return constraints.Assignment{}, ErrNoAssignment
	}
	return constraints.Assignment{
		Manual: doc.ConstraintAssignments.Manual,
		AI:     doc.ConstraintAssignments.AIAssisted,
	}, nil
}

// Snapshot implements Store.
func (s *FileStore) Snapshot(ctx context.Context) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		metrics.RecordStoreError("read")
		s.logger.Error(ctx, "read activity log failed", logger.String("path", s.path), logger.Error(err))
		return Document{}, err
	}
	return doc, nil
}

// update applies mutate to the stored document and writes it back.
func (s *FileStore) update(ctx context.Context, op string, mutate func(*Document)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		metrics.RecordStoreError(op)
		s.logger.Error(ctx, "read activity log failed", logger.String("op", op), logger.Error(err))
		return err
	}

	mutate(&doc)

	if err := s.write(doc); err != nil {
		metrics.RecordStoreError(op)
		s.logger.Error(ctx, "write activity log failed", logger.String("op", op), logger.Error(err))
		return err
	}
	s.logger.Debug(ctx, "activity logged", logger.String("op", op))
	return nil
}

// read loads the document; a missing file yields a fresh one.
// Must be called with s.mu held.
func (s *FileStore) read() (Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.fresh(), nil
	}
	if err != nil {
		return Document{}, fmt.Errorf("read activity log %s: %w", s.path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %s: %w", ErrCorruptLog, s.path, err)
	}
	return doc, nil
}

// write replaces the file atomically. Must be called with s.mu held.
func (s *FileStore) write(doc Document) error {
	data, err := json.MarshalIndent(normalize(doc), "", "  ")
	if err != nil {
		return fmt.Errorf("encode activity log: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, directoryPermission); err != nil {
		return fmt.Errorf("create activity log dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp activity log: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp activity log: %w", err)
	}
	if err := tmp.Chmod(logFilePermission); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp activity log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp activity log: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace activity log %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) fresh() Document {
	return normalize(Document{ExperimentStart: s.timestamp()})
}

func (s *FileStore) timestamp() string {
	return s.now().Format(time.RFC3339)
}

// normalize turns nil lists into empty ones so the file always carries
// every section.
func normalize(d Document) Document {
	if d.TestRuns == nil {
		d.TestRuns = []TestRun{}
	}
	if d.FileChanges == nil {
		d.FileChanges = []FileChange{}
	}
	if d.CoverageReports == nil {
		d.CoverageReports = []CoverageReport{}
	}
	if d.TaskTimes == nil {
		d.TaskTimes = []TaskTime{}
	}
	return d
}
