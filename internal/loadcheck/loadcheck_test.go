package loadcheck

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/adapters/http/api"
	repository "github.com/victorezeilo/TDD-Prompt-Engineering/internal/adapters/repository"
	service "github.com/victorezeilo/TDD-Prompt-Engineering/internal/app"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/itinerary"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/model"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/types"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := repository.Open(context.Background(), filepath.Join(t.TempDir(), "experiment_log.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	mux := http.NewServeMux()
	api.NewServer(service.New(store)).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// brokenServer answers /itinerary with the correct stops but no positions.
func brokenServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/itinerary", func(w http.ResponseWriter, r *http.Request) {
		var in []model.Concert
		_ = json.NewDecoder(r.Body).Decode(&in)
		stops := types.Stops(itinerary.Build(in).Concerts())
		for i := range stops {
			stops[i].Position = 0
		}
		_ = json.NewEncoder(w).Encode(ItineraryResponse{Status: "ok", Itinerary: stops})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRun(t *testing.T) {
	Convey("Given a running itinerary API", t, func() {
		srv := newAPIServer(t)

		Convey("When random datasets are submitted concurrently", func() {
			cfg := &Config{BaseURL: srv.URL, Requests: 40, Workers: 4, Timeout: 5 * time.Second, Seed: 7}
			stats, err := Run(context.Background(), cfg)

			Convey("Then every itinerary matches the local build", func() {
				So(err, ShouldBeNil)
				So(stats.DatasetsGenerated, ShouldEqual, 40)
				So(stats.RequestsSubmitted, ShouldEqual, 40)
				So(stats.RequestsOK, ShouldEqual, 40)
				So(stats.Violations, ShouldEqual, 0)
				So(stats.RequestsFailed, ShouldEqual, 0)
			})

			Convey("Then zero fields took their defaults", func() {
				So(cfg.Concerts, ShouldEqual, DefaultConcerts)
				So(cfg.Artists, ShouldEqual, DefaultArtists)
			})
		})
	})

	Convey("Given a server that drops stop positions", t, func() {
		srv := brokenServer(t)
		out := filepath.Join(t.TempDir(), "failures", "failures.json")

		Convey("When the check runs", func() {
			cfg := &Config{BaseURL: srv.URL, Requests: 5, Concerts: 10, Artists: 5, Workers: 2, Timeout: 5 * time.Second, Seed: 1, OutputFile: out}
			stats, err := Run(context.Background(), cfg)

			Convey("Then violations are reported and the inputs saved", func() {
				So(errors.Is(err, ErrViolations), ShouldBeTrue)
				So(stats.Violations, ShouldEqual, 5)

				data, readErr := os.ReadFile(out)
				So(readErr, ShouldBeNil)
				var saved []Failure
				So(json.Unmarshal(data, &saved), ShouldBeNil)
				So(saved, ShouldHaveLength, 5)
				So(saved[0].Reason, ShouldContainSubstring, "has position 0")
			})
		})
	})

	Convey("Given an unhealthy server", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		Convey("When the check runs", func() {
			_, err := Run(context.Background(), &Config{BaseURL: srv.URL, Timeout: time.Second})

			Convey("Then it stops at the health check", func() {
				So(errors.Is(err, ErrUnhealthy), ShouldBeTrue)
			})
		})
	})
}

func TestVerifyShape(t *testing.T) {
	Convey("Given an input dataset", t, func() {
		input := []model.Concert{
			{Artist: "A", Date: "2025-06-01", Location: "Oslo"},
			{Artist: "B", Date: "2025-06-02", Location: "Bergen"},
		}

		Convey("Then a correct itinerary passes", func() {
			So(verifyShape(input, types.Stops(input)), ShouldBeNil)
		})

		Convey("Then a repeated artist fails", func() {
			stops := types.Stops([]model.Concert{input[0], {Artist: "A", Date: "2025-06-02", Location: "Bergen"}})
			So(verifyShape(input, stops), ShouldNotBeNil)
		})

		Convey("Then an invented concert fails", func() {
			stops := types.Stops([]model.Concert{{Artist: "C", Date: "2025-06-03", Location: "Oslo"}})
			So(verifyShape(input, stops).Error(), ShouldContainSubstring, "not in the input")
		})

		Convey("Then a wrong position fails", func() {
			stops := types.Stops(input)
			stops[1].Position = 5
			So(verifyShape(input, stops), ShouldNotBeNil)
		})
	})
}

func TestGenerateConcerts(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		a := generateConcerts(rand.New(rand.NewSource(3)), 20, 4)
		b := generateConcerts(rand.New(rand.NewSource(3)), 20, 4)

		Convey("Then datasets are reproducible and valid", func() {
			So(a, ShouldResemble, b)
			So(itinerary.Validate(a), ShouldBeNil)
			for _, c := range a {
				So(c.Date, ShouldBeGreaterThanOrEqualTo, "2025-06-01")
				So(c.Date, ShouldBeLessThan, "2025-07-01")
			}
		})
	})
}
