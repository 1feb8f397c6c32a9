package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/config"
	"github.com/victorezeilo/TDD-Prompt-Engineering/pkg/logger"
)

func TestNewService(t *testing.T) {
	convey.Convey("Given a configuration with a temporary activity log", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)
		cfg.LogFile = filepath.Join(t.TempDir(), "log", "experiment_log.json")

		convey.Convey("When the service is wired", func() {
			svc, err := newService(ctx, cfg, logger.Nop())

			convey.Convey("Then it builds the sample itinerary", func() {
				convey.So(err, convey.ShouldBeNil)
				res, err := svc.SampleItinerary(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Len(), convey.ShouldEqual, 18)
			})

			convey.Convey("And the first assignment is created once", func() {
				_, created, err := svc.EnsureAssignment(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(created, convey.ShouldBeTrue)
				_, created, _ = svc.EnsureAssignment(ctx)
				convey.So(created, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the dataset file is missing", func() {
			cfg.DatasetFile = filepath.Join(t.TempDir(), "missing.json")
			svc, err := newService(ctx, cfg, logger.Nop())

			convey.Convey("Then building the sample reports the error", func() {
				convey.So(err, convey.ShouldBeNil)
				_, err := svc.SampleItinerary(ctx)
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestNewMux(t *testing.T) {
	convey.Convey("Given the HTTP routes", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)
		cfg.LogFile = filepath.Join(t.TempDir(), "experiment_log.json")
		svc, err := newService(ctx, cfg, logger.Nop())
		convey.So(err, convey.ShouldBeNil)
		mux := newMux(svc)

		convey.Convey("When the health endpoint is called", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			convey.Convey("Then it reports ok", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				var body map[string]string
				convey.So(json.Unmarshal(rec.Body.Bytes(), &body), convey.ShouldBeNil)
				convey.So(body["status"], convey.ShouldEqual, "ok")
			})
		})

		convey.Convey("When the sample itinerary is requested", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/itinerary", nil))

			convey.Convey("Then the stops are returned", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(rec.Body.String(), convey.ShouldContainSubstring, `"artist":"Taylor Swift"`)
			})
		})

		convey.Convey("When a test run is submitted before the worker starts", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/testruns", nil))

			convey.Convey("Then it is refused as unavailable", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusServiceUnavailable)
			})
		})
	})
}
