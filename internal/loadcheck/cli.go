package loadcheck

import (
	"fmt"
	"io"
	"os"

	"github.com/victorezeilo/TDD-Prompt-Engineering/pkg/logger"
)

// SetupLogging sends log output to stderr and, when logFile is set, to
// that file as well.
func SetupLogging(logFile string, verbose bool) error {
	var w io.Writer = os.Stderr
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePermission)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		w = io.MultiWriter(os.Stderr, file)
	}

	if err := logger.InitWithOptions(logger.WithWriter(w)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the load check tool.
func ShowHelp() {
	os.Stdout.WriteString(`Itinerary Load Check
====================

Submits random concert datasets to a running itinerary API concurrently and
checks every returned itinerary against a local build of the same input.

Usage:
  go run ./cmd/itinerary-check [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -requests int
        Number of datasets to submit (default 200)
  -concerts int
        Concerts per dataset (default 12)
  -artists int
        Size of the artist pool (default 8)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -seed int
        Seed for dataset generation (default 42)
  -output string
        File for datasets that failed their checks (default: none)
  -log string
        Log file for check output (default: stderr only)
  -verbose
        Log every request
  -help
        Show this help message

Examples:
  # Check a local server with default settings
  go run ./cmd/itinerary-check

  # Heavier run that keeps failing inputs
  go run ./cmd/itinerary-check -requests 5000 -workers 16 -output failures.json
`)
}
