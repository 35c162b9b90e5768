// Package scoring implements the weighted multi-factor scoring recipe shared
// by every ranking model:
//
//	subscore = clamp(percentile + bonus - penalty, 0, 100)
//	final    = sum over factors of weight * subscore
package scoring

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/swishlab/hooprank/pkg/metrics"
)

// Score bounds.
const (
	MinScore = 0
	MaxScore = 100
)

// Clamp bounds a sub-score to [0,100].
func Clamp(v float64) float64 {
	return math.Max(MinScore, math.Min(MaxScore, v))
}

// PercentileRank returns the share of values strictly worse than v, scaled
// to 0-100. With lessIsBetter set, smaller raw values rank higher (defensive
// efficiency, turnover rate).
func PercentileRank(values []float64, v float64, lessIsBetter bool) float64 {
	if len(values) == 0 {
		return 0
	}
	worse := 0
	for _, other := range values {
		if lessIsBetter {
			if other > v {
				worse++
			}
		} else {
			if other < v {
				worse++
			}
		}
	}
	return float64(worse) / float64(len(values)) * 100
}

// MinMaxScale maps v onto 0-100 between the min and max of values. With
// lessIsBetter set the smallest value maps to 100.
func MinMaxScale(values []float64, v float64, lessIsBetter bool) float64 {
	if len(values) == 0 {
		return 0
	}
	lo, hi := values[0], values[0]
	for _, other := range values[1:] {
		lo = math.Min(lo, other)
		hi = math.Max(hi, other)
	}
	if hi == lo {
		return 50
	}
	if lessIsBetter {
		return 100 * (hi - v) / (hi - lo)
	}
	return 100 * (v - lo) / (hi - lo)
}

// Step is one threshold rule of a step-function bonus or penalty.
type Step struct {
	Threshold float64
	Add       float64
}

// BonusAtOrBelow returns the Add of the first step whose Threshold is at or
// above v. Steps must be ordered by ascending Threshold; rank-keyed bonuses
// ("+5 if top 10, +2 if top 25") are expressed this way.
func BonusAtOrBelow(v float64, steps ...Step) float64 {
	for _, s := range steps {
		if v <= s.Threshold {
			return s.Add
		}
	}
	return 0
}

// BonusAtOrAbove returns the Add of the first step whose Threshold is at or
// below v. Steps must be ordered by descending Threshold; value-keyed bonuses
// ("+10 if experience >= 3.0") are expressed this way.
func BonusAtOrAbove(v float64, steps ...Step) float64 {
	for _, s := range steps {
		if v >= s.Threshold {
			return s.Add
		}
	}
	return 0
}

// Weights maps factor names to their share of the final score.
type Weights map[string]float64

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	total := 0.0
	for _, v := range w {
		total += v
	}
	return total
}

// Normalized returns a copy scaled so the weights sum to 1.0, and whether
// scaling was needed. A zero-sum set is returned unchanged.
func (w Weights) Normalized() (Weights, bool) {
	total := w.Sum()
	if total == 0 {
		return w, false
	}
	if math.Abs(total-1.0) <= 1e-3 {
		return w, false
	}
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v / total
	}
	return out, true
}

// Factor computes the 0-100 sub-score for entity index i. Factors are
// closures over the joined dataset, one per weighted component.
type Factor func(i int) float64

// Result is one entity's evaluated score with its per-factor breakdown.
type Result struct {
	Index      int
	Total      float64
	Components map[string]float64
}

// Model is a named weighted combination of factors.
type Model struct {
	name    string
	weights Weights
	factors map[string]Factor
	order   []string
}

// Option applies a configuration option to the Model.
type Option func(*Model)

// WithFactor registers a factor and its weight. Registration order is
// preserved for reporting.
func WithFactor(name string, weight float64, f Factor) Option {
	return func(m *Model) {
		if f == nil || weight < 0 {
			return
		}
		if _, dup := m.factors[name]; !dup {
			m.order = append(m.order, name)
		}
		m.factors[name] = f
		m.weights[name] = weight
	}
}

// WithWeightOverrides replaces individual factor weights after registration.
// Unknown names are ignored.
func WithWeightOverrides(overrides map[string]float64) Option {
	return func(m *Model) {
		for name, w := range overrides {
			if _, ok := m.weights[name]; ok && w >= 0 {
				m.weights[name] = w
			}
		}
	}
}

// New constructs a Model. Weights are renormalized to sum to 1.0 when they
// do not already.
func New(name string, opts ...Option) *Model {
	m := &Model{
		name:    name,
		weights: make(Weights),
		factors: make(map[string]Factor),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.weights, _ = m.weights.Normalized()
	return m
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// Weights returns a copy of the normalized weights.
func (m *Model) Weights() Weights {
	out := make(Weights, len(m.weights))
	for k, v := range m.weights {
		out[k] = v
	}
	return out
}

// FactorNames returns factor names in registration order.
func (m *Model) FactorNames() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Score evaluates a single entity index.
func (m *Model) Score(i int) Result {
	r := Result{Index: i, Components: make(map[string]float64, len(m.factors))}
	// Accumulate in registration order so totals are reproducible.
	for _, name := range m.order {
		sub := Clamp(m.factors[name](i))
		r.Components[name] = sub
		r.Total += m.weights[name] * sub
	}
	return r
}

// Evaluate scores entity indexes 0..n-1, honoring ctx for cancellation
// between rows. Results keep input order; ranking is the caller's concern.
func (m *Model) Evaluate(ctx context.Context, n int) ([]Result, error) {
	start := time.Now()
	results := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		results = append(results, m.Score(i))
	}
	metrics.RecordModelEvalDuration(m.name, float64(time.Since(start).Milliseconds()))
	return results, nil
}

// TopComponents returns the factor names of r ordered by contribution,
// which drives the factor-leaders report.
func (r Result) TopComponents() []string {
	names := make([]string, 0, len(r.Components))
	for name := range r.Components {
		names = append(names, name)
	}
	sort.Slice(names, func(a, b int) bool {
		if r.Components[names[a]] == r.Components[names[b]] {
			return names[a] < names[b]
		}
		return r.Components[names[a]] > r.Components[names[b]]
	})
	return names
}
