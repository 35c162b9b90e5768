package logger_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/swishlab/hooprank/pkg/logger"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Get returns a usable logger", func() {
			l := logger.Get()
			So(l, ShouldNotBeNil)
			So(func() {
				l.Info(context.Background(), "hello",
					logger.String("model", "finalv3"),
					logger.Int("teams", 364),
					logger.Float64("score", 91.2),
				)
			}, ShouldNotPanic)
		})

		Convey("Named returns a child logger", func() {
			l := logger.Named("pipeline")
			So(l, ShouldNotBeNil)
			So(func() { l.Debug(context.Background(), "loaded tables") }, ShouldNotPanic)
		})

		Convey("SetLevelString accepts known levels", func() {
			So(logger.SetLevelString("debug"), ShouldBeNil)
			So(logger.SetLevelString("INFO"), ShouldBeNil)
			So(logger.SetLevelString("warning"), ShouldBeNil)
			So(logger.SetLevelString("error"), ShouldBeNil)
			So(logger.SetLevelString(""), ShouldBeNil)
		})

		Convey("SetLevelString rejects unknown levels", func() {
			So(logger.SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}
