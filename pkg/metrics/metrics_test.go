package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManager(t *testing.T) {
	Convey("Given a metrics manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(
			WithNamespace("test"),
			WithSubsystem("itinerary"),
			WithBuildBuckets([]float64{1, 10}),
			WithLatencyBuckets([]float64{10, 1000}),
			WithPrometheusRegistry(registry),
		)

		Convey("When builds are recorded", func() {
			m.RecordBuild("ok", 0.4, 5)
			m.RecordBuild("ok", 0.2, 3)
			m.RecordBuild("empty", 0.1, 0)

			Convey("Then counters and gauges reflect them", func() {
				So(testutil.ToFloat64(m.builds.WithLabelValues("ok")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.builds.WithLabelValues("empty")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.length), ShouldEqual, 0)
			})
		})

		Convey("When conflicts are recorded", func() {
			m.RecordConflict("anchor", true)
			m.RecordConflict("anchor", false)
			m.RecordConflict("lookahead", false)

			Convey("Then replacements only count displaced incumbents", func() {
				So(testutil.ToFloat64(m.conflicts.WithLabelValues("anchor")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.replacements.WithLabelValues("anchor")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.replacements.WithLabelValues("lookahead")), ShouldEqual, 0)
			})
		})

		Convey("When test runs and task times are recorded", func() {
			m.RecordTestRun(true, 87.5)
			m.RecordTestRun(false, 40)
			m.RecordTaskMinutes("Manual refactoring (REFACTOR phase)", 12.5)
			m.RecordTaskMinutes("Manual refactoring (REFACTOR phase)", -3)

			Convey("Then the latest coverage wins and negative minutes are ignored", func() {
				So(testutil.ToFloat64(m.testRuns.WithLabelValues("passed")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.testRuns.WithLabelValues("failed")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.coverage), ShouldEqual, 40)
				So(testutil.ToFloat64(m.taskMinutes.WithLabelValues("Manual refactoring (REFACTOR phase)")), ShouldEqual, 12.5)
			})
		})

		Convey("When test run jobs move through the queue", func() {
			m.UpdateJobQueueDepth(3)
			m.RecordJobRejected("full")
			m.RecordJobRejected("full")
			m.RecordJobFinished("done", 120)

			Convey("Then depth and rejections are tracked", func() {
				So(testutil.ToFloat64(m.jobQueueDepth), ShouldEqual, 3)
				So(testutil.ToFloat64(m.jobsRejected.WithLabelValues("full")), ShouldEqual, 2)
				So(testutil.CollectAndCount(m.jobDuration), ShouldEqual, 1)
			})
		})

		Convey("When HTTP requests are recorded", func() {
			m.RecordHTTPRequest("itinerary", "GET", "200", 3)
			m.RecordStoreError("read")

			Convey("Then they are collected on the registry", func() {
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("itinerary", "GET", "200")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.storeErrors.WithLabelValues("read")), ShouldEqual, 1)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})

	Convey("Given a disabled metrics manager", t, func() {
		m := NewManager(WithMetricsEnabled(false), WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When a build is recorded", func() {
			m.RecordBuild("ok", 1, 4)

			Convey("Then nothing is counted", func() {
				So(testutil.ToFloat64(m.builds.WithLabelValues("ok")), ShouldEqual, 0)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When the helpers are called", func() {
			RecordBuild("ok", 0.3, 2)
			RecordConflict("lookahead", true)
			RecordHTTPRequest("healthz", "GET", "200", 1)
			RecordTestRun(true, 100)
			RecordTaskMinutes("Other", 1)
			RecordStoreError("write")
			UpdateJobQueueDepth(0)
			RecordJobRejected("closed")
			RecordJobFinished("failed", 5)

			Convey("Then the custom registry can be gathered", func() {
				So(Default(), ShouldNotBeNil)
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
