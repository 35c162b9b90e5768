package scoring_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	scoring "github.com/swishlab/hooprank/internal/domain/scoring"
)

func TestPercentileRank(t *testing.T) {
	Convey("Given a set of raw metric values", t, func() {
		values := []float64{110, 115, 120, 125, 130}

		Convey("When higher is better", func() {
			Convey("Then the best value beats all others", func() {
				So(scoring.PercentileRank(values, 130, false), ShouldEqual, 80)
			})
			Convey("And the worst value beats none", func() {
				So(scoring.PercentileRank(values, 110, false), ShouldEqual, 0)
			})
			Convey("And a middle value beats the ones below it", func() {
				So(scoring.PercentileRank(values, 120, false), ShouldEqual, 40)
			})
		})

		Convey("When lower is better (defensive efficiency)", func() {
			Convey("Then the smallest value ranks highest", func() {
				So(scoring.PercentileRank(values, 110, true), ShouldEqual, 80)
			})
			Convey("And the largest ranks lowest", func() {
				So(scoring.PercentileRank(values, 130, true), ShouldEqual, 0)
			})
		})

		Convey("When the value set is empty", func() {
			So(scoring.PercentileRank(nil, 100, false), ShouldEqual, 0)
		})
	})
}

func TestMinMaxScale(t *testing.T) {
	Convey("Given efficiency values", t, func() {
		values := []float64{90, 100, 110}

		Convey("The extremes map to 0 and 100", func() {
			So(scoring.MinMaxScale(values, 110, false), ShouldEqual, 100)
			So(scoring.MinMaxScale(values, 90, false), ShouldEqual, 0)
			So(scoring.MinMaxScale(values, 100, false), ShouldEqual, 50)
		})

		Convey("Inverted scaling flips the extremes", func() {
			So(scoring.MinMaxScale(values, 90, true), ShouldEqual, 100)
			So(scoring.MinMaxScale(values, 110, true), ShouldEqual, 0)
		})

		Convey("A degenerate range yields the neutral midpoint", func() {
			So(scoring.MinMaxScale([]float64{5, 5}, 5, false), ShouldEqual, 50)
		})
	})
}

func TestClamp(t *testing.T) {
	Convey("Given raw sub-score values", t, func() {
		So(scoring.Clamp(-10), ShouldEqual, 0)
		So(scoring.Clamp(105), ShouldEqual, 100)
		So(scoring.Clamp(55.5), ShouldEqual, 55.5)
	})
}

func TestStepBonuses(t *testing.T) {
	Convey("Given a rank-keyed bonus table (+5 top 10, +2 top 25)", t, func() {
		steps := []scoring.Step{{Threshold: 10, Add: 5}, {Threshold: 25, Add: 2}}

		So(scoring.BonusAtOrBelow(3, steps...), ShouldEqual, 5)
		So(scoring.BonusAtOrBelow(10, steps...), ShouldEqual, 5)
		So(scoring.BonusAtOrBelow(11, steps...), ShouldEqual, 2)
		So(scoring.BonusAtOrBelow(25, steps...), ShouldEqual, 2)
		So(scoring.BonusAtOrBelow(26, steps...), ShouldEqual, 0)
	})

	Convey("Given a value-keyed bonus table (+10 at 3.0, +5 at 2.5)", t, func() {
		steps := []scoring.Step{{Threshold: 3.0, Add: 10}, {Threshold: 2.5, Add: 5}}

		So(scoring.BonusAtOrAbove(3.4, steps...), ShouldEqual, 10)
		So(scoring.BonusAtOrAbove(3.0, steps...), ShouldEqual, 10)
		So(scoring.BonusAtOrAbove(2.7, steps...), ShouldEqual, 5)
		So(scoring.BonusAtOrAbove(1.2, steps...), ShouldEqual, 0)
	})
}

func TestWeights(t *testing.T) {
	Convey("Given model weights", t, func() {
		Convey("When they already sum to 1.0", func() {
			w := scoring.Weights{"defense": 0.30, "offense": 0.30, "recent": 0.20, "experience": 0.15, "turnovers": 0.05}
			norm, changed := w.Normalized()
			So(changed, ShouldBeFalse)
			So(norm.Sum(), ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("When they do not sum to 1.0", func() {
			w := scoring.Weights{"defense": 3, "offense": 2}
			norm, changed := w.Normalized()
			So(changed, ShouldBeTrue)
			So(norm.Sum(), ShouldAlmostEqual, 1.0, 1e-9)
			So(norm["defense"], ShouldAlmostEqual, 0.6, 1e-9)
			So(norm["offense"], ShouldAlmostEqual, 0.4, 1e-9)
		})

		Convey("When all weights are zero", func() {
			w := scoring.Weights{"defense": 0}
			_, changed := w.Normalized()
			So(changed, ShouldBeFalse)
		})
	})
}

func TestModelEvaluate(t *testing.T) {
	Convey("Given a two-factor model over three entities", t, func() {
		defense := []float64{95, 50, 20}
		offense := []float64{40, 80, 120}

		m := scoring.New("test-model",
			scoring.WithFactor("defense", 0.6, func(i int) float64 { return defense[i] }),
			scoring.WithFactor("offense", 0.4, func(i int) float64 { return offense[i] }),
		)

		Convey("Then the weights are already normalized", func() {
			So(m.Weights().Sum(), ShouldAlmostEqual, 1.0, 1e-9)
			So(m.FactorNames(), ShouldResemble, []string{"defense", "offense"})
		})

		Convey("When evaluating all entities", func() {
			results, err := m.Evaluate(context.Background(), 3)
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 3)

			Convey("Then totals are the weighted sums of clamped sub-scores", func() {
				So(results[0].Total, ShouldAlmostEqual, 0.6*95+0.4*40, 1e-9)
				// Offense 120 clamps to 100.
				So(results[2].Total, ShouldAlmostEqual, 0.6*20+0.4*100, 1e-9)
			})

			Convey("And every sub-score is within [0,100]", func() {
				for _, r := range results {
					for _, sub := range r.Components {
						So(sub, ShouldBeBetweenOrEqual, 0, 100)
					}
				}
			})
		})

		Convey("When weights need renormalizing", func() {
			m2 := scoring.New("lopsided",
				scoring.WithFactor("a", 30, func(int) float64 { return 100 }),
				scoring.WithFactor("b", 10, func(int) float64 { return 0 }),
			)
			results, err := m2.Evaluate(context.Background(), 1)
			So(err, ShouldBeNil)
			So(results[0].Total, ShouldAlmostEqual, 75, 1e-9)
		})

		Convey("When overriding a factor weight", func() {
			m3 := scoring.New("override",
				scoring.WithFactor("a", 0.5, func(int) float64 { return 100 }),
				scoring.WithFactor("b", 0.5, func(int) float64 { return 0 }),
				scoring.WithWeightOverrides(map[string]float64{"a": 0.75, "b": 0.25}),
			)
			r := m3.Score(0)
			So(r.Total, ShouldAlmostEqual, 75, 1e-9)
		})

		Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := m.Evaluate(ctx, 3)
			So(err, ShouldNotBeNil)
		})

		Convey("TopComponents orders factors by contribution", func() {
			r := m.Score(0)
			So(r.TopComponents()[0], ShouldEqual, "defense")
		})
	})
}

func TestScoreReproducible(t *testing.T) {
	Convey("Given a many-factor model", t, func() {
		vals := []float64{61.3, 47.9, 88.1, 12.7, 95.4, 33.2}
		opts := make([]scoring.Option, 0, len(vals))
		for i, v := range vals {
			opts = append(opts, scoring.WithFactor(string(rune('a'+i)), 1.0/7*float64(i+1), func(int) float64 { return v }))
		}
		m := scoring.New("repeat", opts...)

		Convey("Repeated evaluations of the same row are bit-identical", func() {
			first := m.Score(0).Total
			for i := 0; i < 50; i++ {
				So(m.Score(0).Total, ShouldEqual, first)
			}
		})
	})
}
