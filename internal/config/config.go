// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/constraints"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// LogFile is the JSON activity log written by the experiment runner.
	LogFile string `koanf:"log_file"`

	// DatasetFile optionally points at a YAML/JSON concert list.
	// Empty means the built-in sample.
	DatasetFile string `koanf:"dataset_file"`

	// Addr configures the HTTP listen address used by -serve, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Seed feeds the requirement assignment shuffle.
	Seed int64 `koanf:"seed"`

	// ManualConstraints is how many requirements are assigned for manual work.
	ManualConstraints int `koanf:"manual_constraints"`

	// TestPackage is the package pattern run by the test runner.
	TestPackage string `koanf:"test_package"`

	// CoverageProfile is where go test writes the coverage profile.
	CoverageProfile string `koanf:"coverage_profile"`

	// GoBinary is the go command used to run tests.
	GoBinary string `koanf:"go_binary"`

	// TestTimeout bounds one test run. Zero disables the limit.
	TestTimeout time.Duration `koanf:"test_timeout"`

	// JobQueueSize caps test runs waiting in serve mode.
	JobQueueSize int `koanf:"job_queue_size"`
}

// New creates a Config with defaults. Context is accepted first to
// satisfy the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		LogFile:           "experiment_log.json",
		Addr:              ":9080",
		Seed:              42,
		ManualConstraints: constraints.DefaultManual,
		TestPackage:       "./internal/domain/...",
		CoverageProfile:   "coverage.out",
		GoBinary:          "go",
		TestTimeout:       5 * time.Minute,
		JobQueueSize:      8,
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate(_ context.Context) error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.LogFile) == "":
		return fmt.Errorf("%w: log_file must not be empty", ErrInvalidConfig)
	case c.ManualConstraints < 0 || c.ManualConstraints > len(constraints.All()):
		return fmt.Errorf("%w: manual_constraints must be between 0 and %d", ErrInvalidConfig, len(constraints.All()))
	case strings.TrimSpace(c.TestPackage) == "":
		return fmt.Errorf("%w: test_package must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.GoBinary) == "":
		return fmt.Errorf("%w: go_binary must not be empty", ErrInvalidConfig)
	case c.TestTimeout < 0:
		return fmt.Errorf("%w: test_timeout must not be negative", ErrInvalidConfig)
	case c.JobQueueSize < 1:
		return fmt.Errorf("%w: job_queue_size must be positive", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json", ErrInvalidConfig)
	}
	return nil
}
