package loadcheck

import (
	"time"

	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/model"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/types"
)

// Config holds configuration for a load check.
type Config struct {
	BaseURL    string        // Base URL of the service
	Requests   int           // Number of datasets to submit
	Concerts   int           // Concerts per dataset
	Artists    int           // Size of the artist pool
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	Seed       int64         // Seed for dataset generation
	OutputFile string        // Where to save failing datasets; empty skips saving
	Verbose    bool          // Log every request
}

// Dataset is one generated request body.
type Dataset struct {
	Index    int             `json:"index"`
	Concerts []model.Concert `json:"concerts"`
}

// ItineraryResponse mirrors the body of POST /itinerary.
type ItineraryResponse struct {
	Status    string       `json:"status"`
	Itinerary []types.Stop `json:"itinerary"`
	Message   string       `json:"message,omitempty"`
}

// Failure records a dataset whose response did not check out.
type Failure struct {
	Dataset
	Reason string `json:"reason"`
}

// Stats holds check statistics.
type Stats struct {
	DatasetsGenerated int
	RequestsSubmitted int
	RequestsOK        int
	RequestsEmpty     int
	RequestsFailed    int
	Violations        int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
