package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/swishlab/hooprank/pkg/metrics"
)

func TestManager(t *testing.T) {
	Convey("Given a metrics manager on a fresh registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(metrics.WithRegistry(reg), metrics.WithNamespace("hooprank_test"))
		So(m, ShouldNotBeNil)

		Convey("Then all collectors are gatherable", func() {
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			// Histograms/counters only appear after first observation, gauges
			// register immediately.
			So(families, ShouldNotBeNil)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("Pipeline helpers do not panic", func() {
			So(metrics.RecordPipelineRun, ShouldNotPanic)
			So(metrics.RecordPipelineRunError, ShouldNotPanic)
			So(func() { metrics.RecordPipelineRunDuration(12.5) }, ShouldNotPanic)
			So(func() { metrics.UpdateRowsLoaded("rankings", 364) }, ShouldNotPanic)
			So(func() { metrics.RecordModelEvalDuration("finalv3", 3.2) }, ShouldNotPanic)
			So(func() { metrics.UpdateEntitiesRanked("ncaa", 364) }, ShouldNotPanic)
			So(func() { metrics.UpdateLastRunUnix(1700000000) }, ShouldNotPanic)
		})

		Convey("Scrape and HTTP helpers do not panic", func() {
			So(metrics.RecordScrapeRequest, ShouldNotPanic)
			So(metrics.RecordScrapeError, ShouldNotPanic)
			So(func() { metrics.RecordHTTPRequest("rankings", "GET", "200") }, ShouldNotPanic)
			So(func() { metrics.RecordHTTPRequestDuration("rankings", "GET", "200", 4.2) }, ShouldNotPanic)
			So(func() { metrics.RecordHTTPError("rankings", "client_error") }, ShouldNotPanic)
		})

		Convey("The registry serves the metrics endpoint", func() {
			So(metrics.GetRegistry(), ShouldNotBeNil)
		})
	})
}
