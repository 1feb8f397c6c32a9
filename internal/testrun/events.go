package testrun

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/types"
)

// event is one line of `go test -json` output.
type event struct {
	Action      string  `json:"Action"`
	Package     string  `json:"Package"`
	ImportPath  string  `json:"ImportPath"`
	Test        string  `json:"Test"`
	Elapsed     float64 `json:"Elapsed"`
	Output      string  `json:"Output"`
	FailedBuild string  `json:"FailedBuild"`
}

// summary accumulates events into TestResults.
type summary struct {
	results     types.TestResults
	packages    int
	output      map[string]*strings.Builder
	failures    map[string]int
	failedTests []string
	failedPkgs  []string
}

// ParseEvents summarizes a `go test -json` stream. Only top-level tests are
// counted; subtest outcomes roll up into their parent. A package that fails
// without any failing test (a build or setup failure) counts as one error.
// Lines that are not JSON events are skipped.
func ParseEvents(r io.Reader) (types.TestResults, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)

	s := &summary{
		output:   map[string]*strings.Builder{},
		failures: map[string]int{},
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var ev event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			continue
		}
		s.add(ev)
	}
	if err := scanner.Err(); err != nil {
		return types.TestResults{}, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return s.finish(), nil
}

func (s *summary) add(ev event) {
	switch {
	case ev.Action == "build-output":
		s.write("build:"+ev.ImportPath, ev.Output)
	case ev.Action == "build-fail":
		// Reported again on the package's fail event.
	case ev.Test == "":
		s.addPackage(ev)
	default:
		s.addTest(ev)
	}
}

func (s *summary) addPackage(ev event) {
	switch ev.Action {
	case "start":
		s.packages++
	case "output":
		s.write(ev.Package, ev.Output)
	case "pass", "skip":
		s.results.Elapsed += ev.Elapsed
	case "fail":
		s.results.Elapsed += ev.Elapsed
		if s.failures[ev.Package] > 0 {
			return
		}
		s.results.Errors++
		if ev.FailedBuild != "" {
			s.failedPkgs = append(s.failedPkgs, "build:"+ev.FailedBuild)
		}
		s.failedPkgs = append(s.failedPkgs, ev.Package)
	}
}

func (s *summary) addTest(ev event) {
	name, _, sub := strings.Cut(ev.Test, "/")
	key := ev.Package + "." + name

	if ev.Action == "output" {
		s.write(key, ev.Output)
		return
	}
	if sub {
		return
	}

	switch ev.Action {
	case "pass":
		s.results.Total++
	case "skip":
		s.results.Total++
		s.results.Skipped++
	case "fail":
		s.results.Total++
		s.results.Failures++
		s.failures[ev.Package]++
		s.failedTests = append(s.failedTests, key)
	}
}

func (s *summary) write(key, text string) {
	b, ok := s.output[key]
	if !ok {
		b = &strings.Builder{}
		s.output[key] = b
	}
	b.WriteString(text)
}

func (s *summary) finish() types.TestResults {
	var details strings.Builder
	for _, key := range append(s.failedTests, s.failedPkgs...) {
		if b, ok := s.output[key]; ok {
			details.WriteString(b.String())
		}
	}

	r := s.results
	r.Details = details.String()
	r.Success = s.packages > 0 && r.Failures == 0 && r.Errors == 0
	return r
}
