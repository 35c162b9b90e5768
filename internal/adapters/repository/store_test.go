package repository_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/swishlab/hooprank/internal/adapters/repository"
)

type row struct {
	Name  string
	Score float64
}

func newTestBoard() *repository.Board[row] {
	return repository.NewBoard("test", func(r row) string { return r.Name })
}

func TestBoard(t *testing.T) {
	Convey("Given an empty board", t, func() {
		ctx := context.Background()
		b := newTestBoard()

		Convey("Reads before the first publish report an empty board", func() {
			_, err := b.TopN(ctx, 10)
			So(err, ShouldWrap, repository.ErrEmptyBoard)
			So(b.Count(ctx), ShouldEqual, 0)
		})

		Convey("When a snapshot is published", func() {
			rows := []row{{"A", 90}, {"B", 80}, {"C", 70}}
			b.Replace(ctx, rows, "run-1")

			Convey("TopN returns the leading rows in order", func() {
				top, err := b.TopN(ctx, 2)
				So(err, ShouldBeNil)
				So(top, ShouldHaveLength, 2)
				So(top[0].Name, ShouldEqual, "A")
				So(top[1].Name, ShouldEqual, "B")
			})

			Convey("TopN truncates to the snapshot size", func() {
				top, err := b.TopN(ctx, 50)
				So(err, ShouldBeNil)
				So(top, ShouldHaveLength, 3)
			})

			Convey("A non-positive limit is rejected", func() {
				_, err := b.TopN(ctx, 0)
				So(err, ShouldWrap, repository.ErrInvalidLimit)
			})

			Convey("Get finds rows by key", func() {
				got, err := b.Get(ctx, "B")
				So(err, ShouldBeNil)
				So(got.Score, ShouldEqual, 80)

				_, err = b.Get(ctx, "Z")
				So(err, ShouldWrap, repository.ErrNotFound)
			})

			Convey("The snapshot carries its run version", func() {
				So(b.Version(), ShouldEqual, "run-1")
				So(b.UpdatedAt().IsZero(), ShouldBeFalse)
			})

			Convey("Replace swaps the snapshot wholesale", func() {
				b.Replace(ctx, []row{{"X", 99}}, "run-2")
				So(b.Count(ctx), ShouldEqual, 1)
				So(b.Version(), ShouldEqual, "run-2")
				_, err := b.Get(ctx, "A")
				So(err, ShouldWrap, repository.ErrNotFound)
			})

			Convey("Mutating a returned slice does not touch the snapshot", func() {
				all := b.All(ctx)
				all[0].Name = "mutated"
				got, err := b.Get(ctx, "A")
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "A")
			})
		})
	})
}
