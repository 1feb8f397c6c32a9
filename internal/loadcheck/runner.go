package loadcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/victorezeilo/TDD-Prompt-Engineering/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// Run executes the complete load check and returns ErrViolations when any
// itinerary did not match.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	applyDefaults(cfg)
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting itinerary load check",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("requests", cfg.Requests),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()),
		logger.Any("seed", cfg.Seed))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, cfg); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate datasets
	datasets, err := generateDatasets(ctx, cfg, stats)
	if err != nil {
		return stats, fmt.Errorf("dataset generation failed: %w", err)
	}

	// Step 3: Submit and verify concurrently
	failures := submitDatasets(ctx, cfg, datasets, stats)

	// Step 4: Keep failing inputs for replay
	if len(failures) > 0 && cfg.OutputFile != "" {
		if err := saveFailures(ctx, cfg.OutputFile, failures); err != nil {
			logger.Get().Warn(ctx, "failed to save failing datasets", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if stats.Violations > 0 {
		return stats, fmt.Errorf("%w: %d of %d datasets (first: %s)",
			ErrViolations, stats.Violations, stats.RequestsSubmitted, failures[0].Reason)
	}
	return stats, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Requests <= 0 {
		cfg.Requests = DefaultRequests
	}
	if cfg.Concerts <= 0 {
		cfg.Concerts = DefaultConcerts
	}
	if cfg.Artists <= 0 {
		cfg.Artists = DefaultArtists
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, cfg *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(cfg.Timeout)
	resp, err := client.Get(ctx, cfg.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveFailures writes the failing datasets as a JSON array.
func saveFailures(ctx context.Context, filename string, failures []Failure) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(failures, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal failures: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), filePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "failing datasets saved", logger.String("filename", filename), logger.Int("count", len(failures)))
	return nil
}

// displayFinalStats logs the final check statistics.
func displayFinalStats(stats *Stats) {
	var okRate, requestsPerSecond float64

	if stats.RequestsSubmitted > 0 {
		okRate = float64(stats.RequestsOK+stats.RequestsEmpty) / float64(stats.RequestsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.RequestsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("datasetsGenerated", stats.DatasetsGenerated),
		logger.Int("requestsSubmitted", stats.RequestsSubmitted),
		logger.Int("requestsOK", stats.RequestsOK),
		logger.Int("requestsEmpty", stats.RequestsEmpty),
		logger.Int("requestsFailed", stats.RequestsFailed),
		logger.Int("violations", stats.Violations),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("okRate", okRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
