// Package cli implements the interactive experiment menu.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	repository "github.com/victorezeilo/TDD-Prompt-Engineering/internal/adapters/repository"
	service "github.com/victorezeilo/TDD-Prompt-Engineering/internal/app"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/constraints"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/itinerary"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/types"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/testrun"
	"github.com/victorezeilo/TDD-Prompt-Engineering/pkg/logger"
)

const clearSequence = "\033[H\033[2J"

// Service is what the menu needs from the application layer.
type Service interface {
	RunTests(ctx context.Context) (testrun.Report, error)
	Coverage(ctx context.Context) (types.Coverage, error)
	Progress(ctx context.Context) (service.Progress, error)
	RecordTaskTime(ctx context.Context, task string, minutes float64) (repository.TaskTime, error)
	Requirements(ctx context.Context) (service.Requirements, error)
	EnsureAssignment(ctx context.Context) (constraints.Assignment, bool, error)
	SampleItinerary(ctx context.Context) (itinerary.Result, error)
}

// Menu drives the experiment through a line-oriented terminal dialog.
type Menu struct {
	svc Service
	in  *bufio.Reader
	out io.Writer

	clear bool
	now   func() time.Time

	logger logger.Logger
}

// New creates a menu reading choices from in and writing screens to out.
func New(svc Service, in io.Reader, out io.Writer, opts ...Option) *Menu {
	m := &Menu{
		svc:    svc,
		in:     bufio.NewReader(in),
		out:    out,
		now:    time.Now,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run shows the onboarding screens on first use and then loops over the
// main menu until the participant exits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	err := m.run(ctx)
	if errors.Is(err, io.EOF) {
		m.println()
		return nil
	}
	return err
}

func (m *Menu) run(ctx context.Context) error {
	a, created, err := m.svc.EnsureAssignment(ctx)
	if err != nil {
		return fmt.Errorf("load constraint assignment: %w", err)
	}
	if created {
		if err := m.onboard(a); err != nil {
			return err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.screen()
		m.printf("%s\n", menuText)
		choice, err := m.prompt("Select an option (1-7): ")
		if err != nil {
			return err
		}
		m.println()

		switch choice {
		case "1":
			err = m.runTests(ctx)
		case "2":
			err = m.viewCoverage(ctx)
		case "3":
			err = m.viewProgress(ctx)
		case "4":
			err = m.recordTime(ctx)
		case "5":
			err = m.viewRequirements(ctx)
		case "6":
			err = m.viewItinerary(ctx)
		case "7":
			m.printf("Exiting the experiment runner. Thank you for participating!\n")
			return nil
		default:
			m.printf("Invalid choice. Please try again.\n")
			err = m.pause("\nPress Enter to continue...")
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) onboard(a constraints.Assignment) error {
	m.screen()
	m.printf(tddOverview, rule())
	if err := m.pause("\nPress Enter to continue..."); err != nil {
		return err
	}

	m.screen()
	m.printf(instructions, rule(), countWord(len(a.Manual)), countWord(len(a.AI)))
	if err := m.pause("\nPress Enter to continue..."); err != nil {
		return err
	}

	m.screen()
	m.printf("\nYOUR ASSIGNED CONSTRAINTS\n%s\n", rule())
	m.printf("\nFor MANUAL test writing (implement these first):\n")
	m.list(a.ManualText())
	m.printf("\nFor AI-ASSISTED test writing (implement these second):\n")
	m.list(a.AIText())
	m.printf("\nRemember: Follow the TDD cycle (Red-Green-Refactor) for each set of constraints.\n\n")
	return m.pause("\nPress Enter to continue to the main menu...")
}

func (m *Menu) runTests(ctx context.Context) error {
	m.printf("Running tests...\n\n")

	report, err := m.svc.RunTests(ctx)
	if err != nil {
		m.logger.Error(ctx, "test run failed", logger.Error(err))
		m.printf("Error: %v\n", err)
		return m.pause("\nPress Enter to continue...")
	}

	res := report.Results
	m.printf("Tests completed in %.2f seconds.\n", res.Elapsed)
	m.printf("Total tests run: %d\n", res.Total)
	m.printf("Passed: %d\n", res.Passed())
	m.printf("Failed: %d\n", res.Failures)
	m.printf("Errors: %d\n\n", res.Errors)

	if res.Failures > 0 || res.Errors > 0 {
		m.printf("Test Output:\n%s\n", rule())
		m.printf("%s\n", indent(res.Details, "  "))
		m.printf("%s\n", rule())
	} else {
		m.printf("All tests passed!\n")
	}

	m.println()
	m.printCoverage("Overall code coverage", report.Coverage)
	return m.pause("\nPress Enter to continue...")
}

func (m *Menu) viewCoverage(ctx context.Context) error {
	m.printf("Generating coverage report...\n")

	cov, err := m.svc.Coverage(ctx)
	if err != nil {
		m.logger.Error(ctx, "coverage run failed", logger.Error(err))
		m.printf("Error: %v\n", err)
		return m.pause("\nPress Enter to continue...")
	}

	m.printf("\nCODE COVERAGE REPORT:\n%s\n", rule())
	m.printCoverage("Overall code coverage", cov)
	m.printf("%s\n", rule())
	return m.pause("\nPress Enter to continue...")
}

func (m *Menu) viewProgress(ctx context.Context) error {
	p, err := m.svc.Progress(ctx)
	if err != nil {
		m.logger.Warn(ctx, "progress unavailable", logger.Error(err))
		m.printf("No experiment progress data available yet.\n")
		return m.pause("\nPress Enter to continue...")
	}

	m.printf("\nEXPERIMENT PROGRESS:\n%s\n", rule())
	m.printf("Experiment started: %s\n", m.since(p.ExperimentStart))
	m.printf("Total test runs: %d\n", p.TestRuns)
	m.printf("Total file changes: %d\n", p.FileChanges)

	if run := p.LatestRun; run != nil {
		m.printf("\nLatest test run:\n")
		m.printf("  Time: %s\n", run.Timestamp)
		m.printf("  Tests passed: %d / %d\n", run.Results.Passed(), run.Results.Total)
	}

	if cov := p.LatestCoverage; cov != nil {
		m.printf("\nLatest coverage report:\n")
		m.printf("  Time: %s\n", cov.Timestamp)
		m.printCoverage("  Overall coverage", cov.Coverage)
	}

	if len(p.TaskTimes) > 0 {
		m.printf("\nRecorded task times:\n")
		for _, t := range p.TaskTimes {
			m.printf("  %s: %g minutes\n", t.Task, t.Duration)
		}
	}
	return m.pause("\nPress Enter to continue...")
}

func (m *Menu) recordTime(ctx context.Context) error {
	m.printf("\nRECORD TASK TIME:\n%s\n", rule())
	m.printf("Tasks:\n")
	for i, name := range taskNames {
		m.printf("%d. %s\n", i+1, name)
	}
	m.printf("%d. Other (specify)\n", len(taskNames)+1)

	if err := m.readTaskTime(ctx); err != nil {
		if errors.Is(err, io.EOF) {
			return err
		}
		m.printf("Error: %v\n", err)
	}
	return m.pause("\nPress Enter to continue...")
}

func (m *Menu) readTaskTime(ctx context.Context) error {
	raw, err := m.prompt("\nSelect task type (1-7): ")
	if err != nil {
		return err
	}
	idx, err := strconv.Atoi(raw)
	if err != nil || idx < 1 || idx > len(taskNames)+1 {
		return fmt.Errorf("invalid selection %q", raw)
	}

	task := ""
	if idx == len(taskNames)+1 {
		if task, err = m.prompt("Enter task name: "); err != nil {
			return err
		}
	} else {
		task = taskNames[idx-1]
	}

	raw, err = m.prompt("Enter time spent (in minutes): ")
	if err != nil {
		return err
	}
	minutes, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid duration %q", raw)
	}

	saved, err := m.svc.RecordTaskTime(ctx, task, minutes)
	if err != nil {
		return err
	}
	m.printf("\nRecorded %g minutes for '%s'.\n", saved.Duration, saved.Task)
	return nil
}

func (m *Menu) viewRequirements(ctx context.Context) error {
	req, err := m.svc.Requirements(ctx)
	if err != nil {
		m.logger.Error(ctx, "load requirements failed", logger.Error(err))
		m.printf("Error: %v\n", err)
		return m.pause("\nPress Enter to continue...")
	}

	m.printf("\nCONCERT ITINERARY BUILDER - SYSTEM REQUIREMENTS\n%s\n", rule())
	m.printf("%s\n", userStory)
	m.printf("All Constraints:\n")
	m.list(req.All)

	if len(req.Manual) > 0 || len(req.AIAssisted) > 0 {
		m.printf("\nYOUR ASSIGNED CONSTRAINTS:\n")
		m.printf("\nFor MANUAL test writing:\n")
		m.list(req.Manual)
		m.printf("\nFor AI-ASSISTED test writing:\n")
		m.list(req.AIAssisted)
	}

	m.printf("%s", tddCycle)
	return m.pause("\nPress Enter to continue...")
}

func (m *Menu) viewItinerary(ctx context.Context) error {
	res, err := m.svc.SampleItinerary(ctx)
	if err != nil {
		m.logger.Error(ctx, "sample itinerary failed", logger.Error(err))
		m.printf("Error: %v\n", err)
		return m.pause("\nPress Enter to continue...")
	}

	m.printf("\nSAMPLE ITINERARY:\n%s\n", rule())
	if res.IsEmpty() {
		m.printf("%s\n", res.Message())
	}
	for _, s := range types.Stops(res.Concerts()) {
		m.printf("%3d. %s  %-24s %s\n", s.Position, s.Date, s.Artist, s.Location)
	}
	m.printf("%s\n", rule())
	return m.pause("\nPress Enter to continue...")
}

func (m *Menu) printCoverage(label string, cov types.Coverage) {
	m.printf("%s: %.2f%%\n", label, cov.Total)

	files := make([]string, 0, len(cov.Files))
	for f := range cov.Files {
		files = append(files, f)
	}
	sort.Strings(files)
	for _, f := range files {
		fc := cov.Files[f]
		m.printf("  %s: %.2f%% (%d/%d lines)\n", f, fc.Percentage, fc.LinesCovered, fc.LinesTotal)
	}
}

// since renders an RFC 3339 timestamp with how long ago it was.
func (m *Menu) since(ts string) string {
	if ts == "" {
		return "N/A"
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return fmt.Sprintf("%s (%s)", ts, humanize.RelTime(t, m.now(), "ago", "from now"))
}

func (m *Menu) list(items []string) {
	for i, item := range items {
		m.printf("  %d. %s\n", i+1, item)
	}
}

func (m *Menu) screen() {
	if m.clear {
		m.printf("%s", clearSequence)
	}
	m.printf("%s\n%s\n%s\n\n", strings.Repeat("=", ruleWidth), title, strings.Repeat("=", ruleWidth))
}

func (m *Menu) prompt(label string) (string, error) {
	m.printf("%s", label)
	return m.readLine()
}

func (m *Menu) pause(label string) error {
	_, err := m.prompt(label)
	return err
}

// readLine returns io.EOF only when input ended with nothing left to read.
func (m *Menu) readLine() (string, error) {
	line, err := m.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) println() {
	fmt.Fprintln(m.out)
}

func rule() string {
	return strings.Repeat("-", ruleWidth)
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

var countWords = []string{"zero", "one", "two", "three", "four", "five", "six"}

func countWord(n int) string {
	if n >= 0 && n < len(countWords) {
		return countWords[n]
	}
	return strconv.Itoa(n)
}
