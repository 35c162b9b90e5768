// Package validate sanity-checks a model's output against the reference
// ranking: score distribution, factor correlations, rank agreement and
// the biggest disagreements.
package validate

import (
	"math"
	"sort"

	"github.com/swishlab/hooprank/internal/domain/ncaa"
)

// Distribution summarizes the final score spread.
type Distribution struct {
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	AvgTopGap  float64 `json:"avg_top_gap"`
	MaxTopGap  float64 `json:"max_top_gap"`
	TopGapSpan int     `json:"top_gap_span"`
}

// Disagreement is one team the model and the reference rank far apart.
type Disagreement struct {
	Team          string `json:"team"`
	ModelRank     int    `json:"model_rank"`
	ReferenceRank int    `json:"reference_rank"`
	Diff          int    `json:"diff"`
	Higher        bool   `json:"higher"`
}

// FactorCorrelation pairs a factor with its Pearson correlation against
// the final score.
type FactorCorrelation struct {
	Factor      string  `json:"factor"`
	Correlation float64 `json:"correlation"`
}

// Report is the full validation result for one ranked season.
type Report struct {
	Model           string              `json:"model"`
	Teams           int                 `json:"teams"`
	Scores          Distribution        `json:"scores"`
	SpearmanRankCor float64             `json:"spearman_rank_correlation"`
	AvgRankDiff     float64             `json:"avg_rank_diff"`
	Disagreements   []Disagreement      `json:"disagreements"`
	Factors         []FactorCorrelation `json:"factors"`
}

const topGapSpan = 25

// Run validates a ranked season. rankings must be ordered best-first, as
// returned by ncaa.Rankings.
func Run(model string, rankings []ncaa.TeamRanking) Report {
	r := Report{Model: model, Teams: len(rankings)}
	if len(rankings) == 0 {
		return r
	}

	scores := make([]float64, len(rankings))
	for i, t := range rankings {
		scores[i] = t.Score
	}
	r.Scores = distribution(scores)
	r.SpearmanRankCor = spearman(rankings)
	r.AvgRankDiff = avgRankDiff(rankings)
	r.Disagreements = disagreements(rankings, 10)
	r.Factors = factorCorrelations(rankings)
	return r
}

func distribution(scores []float64) Distribution {
	d := Distribution{Min: scores[0], Max: scores[0]}
	sum := 0.0
	for _, s := range scores {
		sum += s
		d.Min = math.Min(d.Min, s)
		d.Max = math.Max(d.Max, s)
	}
	d.Mean = sum / float64(len(scores))

	if len(scores) > 1 {
		variance := 0.0
		for _, s := range scores {
			variance += (s - d.Mean) * (s - d.Mean)
		}
		d.StdDev = math.Sqrt(variance / float64(len(scores)-1))
	}

	// Gaps between adjacent teams near the top, where separation matters
	// most for seeding.
	span := topGapSpan
	if span > len(scores) {
		span = len(scores)
	}
	d.TopGapSpan = span
	for i := 1; i < span; i++ {
		gap := math.Abs(scores[i-1] - scores[i])
		d.AvgTopGap += gap
		d.MaxTopGap = math.Max(d.MaxTopGap, gap)
	}
	if span > 1 {
		d.AvgTopGap /= float64(span - 1)
	}
	return d
}

// spearman computes the Spearman correlation between the model ranks and
// the reference ranks.
func spearman(rankings []ncaa.TeamRanking) float64 {
	a := make([]float64, 0, len(rankings))
	b := make([]float64, 0, len(rankings))
	for _, t := range rankings {
		if t.KenPomRank < 1 {
			continue
		}
		a = append(a, float64(t.Rank))
		b = append(b, float64(t.KenPomRank))
	}
	return pearson(toRanks(a), toRanks(b))
}

// toRanks replaces values with their fractional ranks, averaging ties.
func toRanks(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(x, y int) bool {
		return values[idx[x]] < values[idx[y]]
	})

	ranks := make([]float64, len(values))
	for i := 0; i < len(idx); {
		j := i
		for j < len(idx) && values[idx[j]] == values[idx[i]] {
			j++
		}
		avg := (float64(i+1) + float64(j)) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		i = j
	}
	return ranks
}

func pearson(a, b []float64) float64 {
	n := float64(len(a))
	if n == 0 {
		return 0
	}
	var sumA, sumB float64
	for i := range a {
		sumA += a[i]
		sumB += b[i]
	}
	meanA, meanB := sumA/n, sumB/n

	var cov, varA, varB float64
	for i := range a {
		da, db := a[i]-meanA, b[i]-meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	if varA == 0 || varB == 0 {
		return 0
	}
	return cov / math.Sqrt(varA*varB)
}

func avgRankDiff(rankings []ncaa.TeamRanking) float64 {
	total, count := 0.0, 0
	for _, t := range rankings {
		if t.KenPomRank < 1 {
			continue
		}
		total += math.Abs(float64(t.Rank - t.KenPomRank))
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// disagreements skips rows with no reference rank; they have nothing to
// disagree with.
func disagreements(rankings []ncaa.TeamRanking, n int) []Disagreement {
	all := make([]Disagreement, 0, len(rankings))
	for _, t := range rankings {
		if t.KenPomRank < 1 {
			continue
		}
		diff := t.Rank - t.KenPomRank
		if diff < 0 {
			diff = -diff
		}
		all = append(all, Disagreement{
			Team:          t.Team,
			ModelRank:     t.Rank,
			ReferenceRank: t.KenPomRank,
			Diff:          diff,
			Higher:        t.Rank < t.KenPomRank,
		})
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Diff > all[j].Diff
	})
	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}

func factorCorrelations(rankings []ncaa.TeamRanking) []FactorCorrelation {
	if len(rankings) == 0 {
		return nil
	}
	names := make([]string, 0, len(rankings[0].Components))
	for name := range rankings[0].Components {
		names = append(names, name)
	}
	sort.Strings(names)

	finals := make([]float64, len(rankings))
	for i, t := range rankings {
		finals[i] = t.Score
	}

	out := make([]FactorCorrelation, 0, len(names))
	for _, name := range names {
		values := make([]float64, len(rankings))
		for i, t := range rankings {
			values[i] = t.Components[name]
		}
		out = append(out, FactorCorrelation{
			Factor:      name,
			Correlation: pearson(finals, values),
		})
	}
	return out
}
