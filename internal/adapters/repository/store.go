// Package repository persists experiment activity to a JSON document on disk.
package repository

import (
	"context"

	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/constraints"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/types"
)

// TestRun is one logged test suite run.
type TestRun struct {
	ID        string            `json:"id"`
	Timestamp string            `json:"timestamp"`
	Results   types.TestResults `json:"results"`
}

// FileChange is one logged source file change.
type FileChange struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Filename  string `json:"filename"`
	Action    string `json:"action"`
}

// CoverageReport is one logged coverage measurement.
type CoverageReport struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	types.Coverage
}

// TaskTime is time spent on a task, in minutes.
type TaskTime struct {
	ID        string  `json:"id"`
	Timestamp string  `json:"timestamp"`
	Task      string  `json:"task"`
	Duration  float64 `json:"duration"`
}

// ConstraintAssignment is the persisted requirement split.
type ConstraintAssignment struct {
	Manual     []int  `json:"manual"`
	AIAssisted []int  `json:"ai_assisted"`
	AssignedAt string `json:"assigned_at"`
}

// Document is the whole activity log.
type Document struct {
	ExperimentStart       string                `json:"experiment_start"`
	TestRuns              []TestRun             `json:"test_runs"`
	FileChanges           []FileChange          `json:"file_changes"`
	CoverageReports       []CoverageReport      `json:"coverage_reports"`
	TaskTimes             []TaskTime            `json:"task_times"`
	ConstraintAssignments *ConstraintAssignment `json:"constraint_assignments,omitempty"`
}

// LatestTestRun returns the most recent test run, if any.
func (d Document) LatestTestRun() (TestRun, bool) {
	if len(d.TestRuns) == 0 {
		return TestRun{}, false
	}
	return d.TestRuns[len(d.TestRuns)-1], true
}

// LatestCoverage returns the most recent coverage report, if any.
func (d Document) LatestCoverage() (CoverageReport, bool) {
	if len(d.CoverageReports) == 0 {
		return CoverageReport{}, false
	}
	return d.CoverageReports[len(d.CoverageReports)-1], true
}

// Store records experiment activity.
type Store interface {
	LogTestRun(ctx context.Context, results types.TestResults) (TestRun, error)
	LogFileChange(ctx context.Context, filename, action string) (FileChange, error)
	LogCoverage(ctx context.Context, coverage types.Coverage) (CoverageReport, error)
	LogTaskTime(ctx context.Context, task string, minutes float64) (TaskTime, error)

	// SaveAssignment replaces any previous requirement split.
	SaveAssignment(ctx context.Context, a constraints.Assignment) error
	// Assignment returns ErrNoAssignment if none was saved.
	Assignment(ctx context.Context) (constraints.Assignment, error)

	// Snapshot returns the whole document as currently stored.
	Snapshot(ctx context.Context) (Document, error)
}
