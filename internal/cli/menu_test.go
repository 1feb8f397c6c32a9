package cli_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	repository "github.com/victorezeilo/TDD-Prompt-Engineering/internal/adapters/repository"
	service "github.com/victorezeilo/TDD-Prompt-Engineering/internal/app"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/cli"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/constraints"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/itinerary"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/model"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/types"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/testrun"
)

type fakeService struct {
	created    bool
	assignment constraints.Assignment
	report     testrun.Report
	runErr     error
	progress   service.Progress
	progErr    error
	reqErr     error
	sampleErr  error
	tasks      []repository.TaskTime
	runs       int
	coverage   int
}

func (f *fakeService) RunTests(context.Context) (testrun.Report, error) {
	f.runs++
	return f.report, f.runErr
}

func (f *fakeService) Coverage(context.Context) (types.Coverage, error) {
	f.coverage++
	return f.report.Coverage, f.runErr
}

func (f *fakeService) Progress(context.Context) (service.Progress, error) {
	return f.progress, f.progErr
}

func (f *fakeService) RecordTaskTime(_ context.Context, task string, minutes float64) (repository.TaskTime, error) {
	if minutes < 0 {
		return repository.TaskTime{}, repository.ErrInvalidTask
	}
	t := repository.TaskTime{Task: task, Duration: minutes}
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *fakeService) Requirements(context.Context) (service.Requirements, error) {
	if f.reqErr != nil {
		return service.Requirements{}, f.reqErr
	}
	return service.Requirements{
		All:        constraints.All(),
		Manual:     f.assignment.ManualText(),
		AIAssisted: f.assignment.AIText(),
	}, nil
}

func (f *fakeService) EnsureAssignment(context.Context) (constraints.Assignment, bool, error) {
	return f.assignment, f.created, nil
}

func (f *fakeService) SampleItinerary(context.Context) (itinerary.Result, error) {
	if f.sampleErr != nil {
		return itinerary.Result{}, f.sampleErr
	}
	return itinerary.Build([]model.Concert{
		{Artist: "Adele", Date: "2025-06-15", Location: "Oslo"},
		{Artist: "Drake", Date: "2025-09-10", Location: "Stockholm"},
	}), nil
}

func newFake() *fakeService {
	return &fakeService{
		assignment: constraints.Assignment{Manual: []int{0, 1, 2}, AI: []int{3, 4, 5}},
		report: testrun.Report{
			Results: types.TestResults{Total: 4, Success: true, Elapsed: 1.5},
			Coverage: types.Coverage{
				Total: 75,
				Files: map[string]types.FileCoverage{
					"b.go": {LinesTotal: 2, LinesCovered: 2, Percentage: 100},
					"a.go": {LinesTotal: 4, LinesCovered: 2, LinesMissed: 2, Percentage: 50},
				},
			},
		},
	}
}

func run(svc cli.Service, input string, opts ...cli.Option) (string, error) {
	var out bytes.Buffer
	err := cli.New(svc, strings.NewReader(input), &out, opts...).Run(context.Background())
	return out.String(), err
}

func TestMenuLoop(t *testing.T) {
	Convey("Given a participant with an existing assignment", t, func() {
		svc := newFake()

		Convey("When they exit straight away", func() {
			out, err := run(svc, "7\n")

			Convey("Then the header, menu and goodbye are shown", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "CONCERT ITINERARY BUILDER - TEST-DRIVEN DEVELOPMENT EXPERIMENT")
				So(out, ShouldContainSubstring, "6. View sample itinerary")
				So(out, ShouldContainSubstring, "Select an option (1-7): ")
				So(out, ShouldContainSubstring, "Exiting the experiment runner. Thank you for participating!")
				So(out, ShouldNotContainSubstring, "TEST-DRIVEN DEVELOPMENT (TDD) OVERVIEW")
			})
		})

		Convey("When input ends without a choice", func() {
			_, err := run(svc, "")

			Convey("Then the loop stops cleanly", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When an unknown option is entered", func() {
			out, err := run(svc, "9\n\n7\n")

			Convey("Then an error is printed and the menu is shown again", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Invalid choice. Please try again.")
				So(strings.Count(out, "MENU:"), ShouldEqual, 2)
			})
		})

		Convey("When the screen is cleared", func() {
			out, _ := run(svc, "7\n", cli.WithClearScreen(true))

			Convey("Then the escape sequence precedes the header", func() {
				So(out, ShouldStartWith, "\033[H\033[2J")
			})
		})
	})

	Convey("Given a first-time participant", t, func() {
		svc := newFake()
		svc.created = true

		Convey("When they work through onboarding", func() {
			out, err := run(svc, "\n\n\n7\n")

			Convey("Then the overview, instructions and constraints are shown", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "TEST-DRIVEN DEVELOPMENT (TDD) OVERVIEW")
				So(out, ShouldContainSubstring, "Write three test cases for your manual constraints")
				So(out, ShouldContainSubstring, "For MANUAL test writing (implement these first):")
				So(out, ShouldContainSubstring, "  1. "+constraints.Text(0))
				So(out, ShouldContainSubstring, "  3. "+constraints.Text(5))
				So(out, ShouldContainSubstring, "Press Enter to continue to the main menu...")
			})
		})
	})
}

func TestMenuTestRuns(t *testing.T) {
	Convey("Given a passing test suite", t, func() {
		svc := newFake()

		Convey("When tests are run", func() {
			out, err := run(svc, "1\n\n7\n")

			Convey("Then totals and sorted coverage are printed", func() {
				So(err, ShouldBeNil)
				So(svc.runs, ShouldEqual, 1)
				So(out, ShouldContainSubstring, "Tests completed in 1.50 seconds.")
				So(out, ShouldContainSubstring, "Passed: 4")
				So(out, ShouldContainSubstring, "All tests passed!")
				So(out, ShouldContainSubstring, "Overall code coverage: 75.00%")
				So(strings.Index(out, "a.go: 50.00% (2/4 lines)"), ShouldBeLessThan, strings.Index(out, "b.go: 100.00% (2/2 lines)"))
			})
		})

		Convey("When coverage is viewed", func() {
			out, err := run(svc, "2\n\n7\n")

			Convey("Then the coverage report is shown without a logged run", func() {
				So(err, ShouldBeNil)
				So(svc.coverage, ShouldEqual, 1)
				So(svc.runs, ShouldEqual, 0)
				So(out, ShouldContainSubstring, "CODE COVERAGE REPORT:")
			})
		})
	})

	Convey("Given a failing test suite", t, func() {
		svc := newFake()
		svc.report.Results = types.TestResults{Total: 3, Failures: 1, Errors: 1, Details: "--- FAIL: TestX\nboom\n"}

		Convey("When tests are run", func() {
			out, _ := run(svc, "1\n\n7\n")

			Convey("Then details are indented", func() {
				So(out, ShouldContainSubstring, "Passed: 1")
				So(out, ShouldContainSubstring, "Test Output:")
				So(out, ShouldContainSubstring, "  --- FAIL: TestX\n  boom")
				So(out, ShouldNotContainSubstring, "All tests passed!")
			})
		})
	})

	Convey("Given a missing toolchain", t, func() {
		svc := newFake()
		svc.runErr = testrun.ErrToolchain

		Convey("When tests are run", func() {
			out, err := run(svc, "1\n\n7\n")

			Convey("Then the error is reported and the menu continues", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Error: ")
				So(out, ShouldContainSubstring, "Thank you for participating!")
			})
		})
	})
}

func TestMenuRecordTime(t *testing.T) {
	Convey("Given the record time screen", t, func() {
		svc := newFake()

		Convey("When a listed task is chosen", func() {
			out, err := run(svc, "4\n2\n12.5\n\n7\n")

			Convey("Then the time is saved under its name", func() {
				So(err, ShouldBeNil)
				So(svc.tasks, ShouldHaveLength, 1)
				So(svc.tasks[0].Task, ShouldEqual, "Manual implementation (GREEN phase)")
				So(out, ShouldContainSubstring, "Recorded 12.5 minutes for 'Manual implementation (GREEN phase)'.")
			})
		})

		Convey("When a custom task is entered", func() {
			_, err := run(svc, "4\n7\nPairing\n3\n\n7\n")

			Convey("Then the custom name is used", func() {
				So(err, ShouldBeNil)
				So(svc.tasks[0].Task, ShouldEqual, "Pairing")
				So(svc.tasks[0].Duration, ShouldEqual, 3)
			})
		})

		Convey("When the selection is out of range", func() {
			out, _ := run(svc, "4\n8\n\n7\n")

			Convey("Then nothing is saved", func() {
				So(svc.tasks, ShouldBeEmpty)
				So(out, ShouldContainSubstring, "Error: invalid selection")
			})
		})

		Convey("When the duration is not a number", func() {
			out, _ := run(svc, "4\n1\nsoon\n\n7\n")

			Convey("Then an error is printed", func() {
				So(svc.tasks, ShouldBeEmpty)
				So(out, ShouldContainSubstring, "Error: invalid duration")
			})
		})

		Convey("When the duration is negative", func() {
			out, _ := run(svc, "4\n1\n-5\n\n7\n")

			Convey("Then the store's rejection is shown", func() {
				So(out, ShouldContainSubstring, "Error: "+repository.ErrInvalidTask.Error())
			})
		})
	})
}

func TestMenuViews(t *testing.T) {
	Convey("Given recorded progress", t, func() {
		svc := newFake()
		run1 := repository.TestRun{Timestamp: "2025-05-01T11:00:00Z", Results: types.TestResults{Total: 5, Failures: 1}}
		svc.progress = service.Progress{
			ExperimentStart: "2025-05-01T10:00:00Z",
			TestRuns:        1,
			FileChanges:     2,
			LatestRun:       &run1,
			TaskTimes:       []repository.TaskTime{{Task: "Other", Duration: 4}},
		}
		now := func() time.Time { return time.Date(2025, 5, 1, 13, 0, 0, 0, time.UTC) }

		Convey("When progress is viewed", func() {
			out, err := run(svc, "3\n\n7\n", cli.WithClock(now))

			Convey("Then counts, the latest run and task times are shown", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Experiment started: 2025-05-01T10:00:00Z (3 hours ago)")
				So(out, ShouldContainSubstring, "Total test runs: 1")
				So(out, ShouldContainSubstring, "Total file changes: 2")
				So(out, ShouldContainSubstring, "Tests passed: 4 / 5")
				So(out, ShouldContainSubstring, "  Other: 4 minutes")
			})
		})
	})

	Convey("Given an unreadable activity log", t, func() {
		svc := newFake()
		svc.progErr = errors.New("corrupt")

		Convey("When progress is viewed", func() {
			out, err := run(svc, "3\n\n7\n")

			Convey("Then a placeholder is printed", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "No experiment progress data available yet.")
			})
		})
	})

	Convey("Given a service whose requirements and dataset cannot be loaded", t, func() {
		svc := newFake()
		svc.reqErr = errors.New("activity log is corrupt")
		svc.sampleErr = errors.New("dataset file missing")

		Convey("When requirements and the sample itinerary are viewed", func() {
			out, err := run(svc, "5\n\n6\n\n7\n")

			Convey("Then both errors are printed and the menu keeps running", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Error: activity log is corrupt")
				So(out, ShouldContainSubstring, "Error: dataset file missing")
				So(out, ShouldContainSubstring, "Exiting the experiment runner.")
				So(strings.Count(out, "MENU:"), ShouldEqual, 3)
			})
		})
	})

	Convey("Given the requirements screen", t, func() {
		svc := newFake()

		Convey("When it is viewed", func() {
			out, err := run(svc, "5\n\n7\n")

			Convey("Then the user story, all constraints and the split are listed", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "As a user, I want to build an itinerary")
				So(out, ShouldContainSubstring, "  6. "+constraints.Text(5))
				So(out, ShouldContainSubstring, "For AI-ASSISTED test writing:")
				So(out, ShouldContainSubstring, "3. REFACTOR: Improve your code")
			})
		})
	})

	Convey("Given the sample itinerary screen", t, func() {
		svc := newFake()

		Convey("When it is viewed", func() {
			out, err := run(svc, "6\n\n7\n")

			Convey("Then the stops are numbered in order", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "SAMPLE ITINERARY:")
				So(out, ShouldContainSubstring, "  1. 2025-06-15  Adele")
				So(out, ShouldContainSubstring, "  2. 2025-09-10  Drake")
			})
		})
	})
}
