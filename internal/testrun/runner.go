// Package testrun runs the project's Go tests and summarizes their
// outcome and statement coverage.
package testrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/types"
	"github.com/victorezeilo/TDD-Prompt-Engineering/pkg/logger"
)

// Report is the outcome of one test run.
type Report struct {
	Results  types.TestResults
	Coverage types.Coverage
}

// Runner invokes `go test` for a package pattern.
type Runner struct {
	exec     Executor
	goBinary string
	pkg      string
	profile  string
	timeout  time.Duration
	logger   logger.Logger
	now      func() time.Time
}

// New creates a Runner. Defaults: the go binary on PATH, ./... and a
// coverage.out profile in the working directory.
func New(opts ...Option) *Runner {
	r := &Runner{
		exec:     CommandExecutor{},
		goBinary: "go",
		pkg:      "./...",
		profile:  "coverage.out",
		logger:   logger.Nop(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Args returns the arguments passed to the go binary.
func (r *Runner) Args() []string {
	return []string{"test", "-json", "-count=1", "-coverprofile=" + r.profile, r.pkg}
}

// Run executes the tests and reads back their coverage profile. Failing
// tests are not an error; they are reported in Results.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.logger.Info(ctx, "running tests",
		logger.String("package", r.pkg),
		logger.String("profile", r.profile))

	if err := os.Remove(r.profile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Report{}, fmt.Errorf("remove stale coverage profile %s: %w", r.profile, err)
	}

	start := r.now()
	out, err := r.exec.Run(ctx, r.goBinary, r.Args()...)
	if err != nil {
		if ctx.Err() != nil {
			r.logger.Warn(ctx, "test run stopped", logger.Error(err))
		}
		return Report{}, fmt.Errorf("%w: %s: %w", ErrToolchain, r.goBinary, err)
	}

	results, err := ParseEvents(bytes.NewReader(out.Stdout))
	if err != nil {
		return Report{}, err
	}

	if out.ExitCode != 0 && results.Failures == 0 && results.Errors == 0 {
		results.Errors++
		results.Success = false
		if len(out.Stderr) > 0 {
			results.Details += string(out.Stderr)
		}
	}
	if results.Elapsed == 0 {
		results.Elapsed = r.now().Sub(start).Seconds()
	}

	cov, err := r.readProfile()
	if err != nil {
		return Report{}, err
	}

	r.logger.Info(ctx, "tests finished",
		logger.Int("total", results.Total),
		logger.Int("failures", results.Failures),
		logger.Int("errors", results.Errors),
		logger.Bool("success", results.Success),
		logger.Float64("coverage", cov.Total))

	return Report{Results: results, Coverage: cov}, nil
}

// readProfile parses the coverage profile. A missing profile means no
// package compiled far enough to write it and yields empty coverage.
func (r *Runner) readProfile() (types.Coverage, error) {
	f, err := os.Open(r.profile)
	if errors.Is(err, fs.ErrNotExist) {
		return types.Coverage{Files: map[string]types.FileCoverage{}}, nil
	}
	if err != nil {
		return types.Coverage{}, fmt.Errorf("open coverage profile %s: %w", r.profile, err)
	}
	defer f.Close()

	return ParseCoverage(f)
}
