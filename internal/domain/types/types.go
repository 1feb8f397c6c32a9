// Package types contains common types used across the application
package types

import "github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/model"

// Stop is the wire shape of one itinerary entry.
type Stop struct {
	Position  int     `json:"position"`
	Artist    string  `json:"artist"`
	Date      string  `json:"date"`
	Location  string  `json:"location"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Stops numbers concerts from 1 in itinerary order.
func Stops(concerts []model.Concert) []Stop {
	out := make([]Stop, len(concerts))
	for i, c := range concerts {
		out[i] = Stop{
			Position:  i + 1,
			Artist:    c.Artist,
			Date:      c.Date,
			Location:  c.Location,
			Latitude:  c.Latitude,
			Longitude: c.Longitude,
		}
	}
	return out
}

// TestResults summarizes one test suite run.
type TestResults struct {
	Total    int     `json:"total"`
	Failures int     `json:"failures"`
	Errors   int     `json:"errors"`
	Skipped  int     `json:"skipped"`
	Success  bool    `json:"success"`
	Details  string  `json:"details"`
	Elapsed  float64 `json:"elapsed_seconds"`
}

// Passed returns the number of tests that neither failed nor errored.
func (r TestResults) Passed() int {
	return max(0, r.Total-r.Failures-r.Errors)
}

// FileCoverage is statement coverage for one source file.
type FileCoverage struct {
	LinesTotal   int     `json:"lines_total"`
	LinesCovered int     `json:"lines_covered"`
	LinesMissed  int     `json:"lines_missed"`
	Percentage   float64 `json:"percentage"`
}

// Coverage is statement coverage for a test run.
type Coverage struct {
	Total float64                 `json:"total_coverage"`
	Files map[string]FileCoverage `json:"file_coverage"`
}
