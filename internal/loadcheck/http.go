package loadcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/victorezeilo/TDD-Prompt-Engineering/pkg/logger"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body any) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

type outcome int

const (
	outcomeOK outcome = iota
	outcomeEmpty
	outcomeFailed
	outcomeViolation
)

// submitDatasets posts every dataset to /itinerary with a worker pool and
// checks each response against a local build of the same input.
func submitDatasets(ctx context.Context, cfg *Config, datasets []Dataset, stats *Stats) []Failure {
	log := logger.Get()
	log.Info(ctx, "submitting datasets", logger.Int("datasets", len(datasets)), logger.Int("workers", cfg.Workers))

	client := newHTTPClient(cfg.Timeout)
	url := cfg.BaseURL + "/itinerary"

	var (
		ok        int64
		empty     int64
		failed    int64
		violation int64
		submitted int64

		mu       sync.Mutex
		failures []Failure
	)

	jobs := make(chan Dataset, cfg.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for ds := range jobs {
				if ctx.Err() != nil {
					return
				}

				result, reason := submitSingle(ctx, client, url, ds)
				atomic.AddInt64(&submitted, 1)
				switch result {
				case outcomeOK:
					atomic.AddInt64(&ok, 1)
				case outcomeEmpty:
					atomic.AddInt64(&empty, 1)
				case outcomeFailed:
					atomic.AddInt64(&failed, 1)
				case outcomeViolation:
					atomic.AddInt64(&violation, 1)
					mu.Lock()
					failures = append(failures, Failure{Dataset: ds, Reason: reason})
					mu.Unlock()
				}

				if cfg.Verbose {
					log.Debug(ctx, "dataset checked",
						logger.Int("index", ds.Index),
						logger.Int("outcome", int(result)),
						logger.String("reason", reason))
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, ds := range datasets {
			select {
			case <-ctx.Done():
				return
			case jobs <- ds:
			}
		}
	}()

	wg.Wait()

	stats.RequestsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.RequestsOK = int(atomic.LoadInt64(&ok))
	stats.RequestsEmpty = int(atomic.LoadInt64(&empty))
	stats.RequestsFailed = int(atomic.LoadInt64(&failed))
	stats.Violations = int(atomic.LoadInt64(&violation))

	log.Info(ctx, "dataset submission completed",
		logger.Int("ok", stats.RequestsOK),
		logger.Int("empty", stats.RequestsEmpty),
		logger.Int("failed", stats.RequestsFailed),
		logger.Int("violations", stats.Violations))
	return failures
}

// submitSingle posts one dataset. A transport error or non-200 status is
// a failed request; a 200 whose itinerary does not check out is a violation.
func submitSingle(ctx context.Context, client *HTTPClient, url string, ds Dataset) (outcome, string) {
	resp, err := client.Post(ctx, url, ds.Concerts)
	if err != nil {
		return outcomeFailed, err.Error()
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return outcomeFailed, err.Error()
	}
	if resp.StatusCode != http.StatusOK {
		return outcomeFailed, fmt.Sprintf("status %d", resp.StatusCode)
	}

	var got ItineraryResponse
	if err := json.Unmarshal(body, &got); err != nil {
		return outcomeViolation, "undecodable body: " + err.Error()
	}
	if err := verifyItinerary(ds.Concerts, got); err != nil {
		return outcomeViolation, err.Error()
	}
	if len(got.Itinerary) == 0 {
		return outcomeEmpty, ""
	}
	return outcomeOK, ""
}
