// Package ncaa builds the NCAA predictive power-ranking model variants over
// a joined season snapshot. Each variant is the same weighted recipe with a
// different factor mix and hand-tuned thresholds.
package ncaa

import (
	"context"
	"fmt"

	"github.com/swishlab/hooprank/internal/domain/model"
	"github.com/swishlab/hooprank/internal/domain/rank"
	"github.com/swishlab/hooprank/internal/domain/scoring"
)

// Variant names a model preset.
type Variant string

// Model variants, in the order they were tuned.
const (
	// VariantWeighted: balanced efficiency model with momentum and
	// schedule strength.
	VariantWeighted Variant = "weighted"
	// VariantFinal: defense-first model with star power and pace control.
	VariantFinal Variant = "final"
	// VariantFinalV3: production model; turnover margin replaces pace.
	VariantFinalV3 Variant = "finalv3"
)

// Factor names shared across variants.
const (
	FactorDefense    = "defensive_rating"
	FactorOffense    = "offensive_rating"
	FactorRecent     = "recent_performance"
	FactorExperience = "experience"
	FactorStarPower  = "star_power"
	FactorPace       = "pace_control"
	FactorTurnovers  = "turnover_margin"
	FactorMomentum   = "momentum"
	FactorSchedule   = "schedule_strength"
	FactorDominance  = "dominance"
)

// TeamRanking is one team's final ranked result.
type TeamRanking struct {
	Rank           int                `json:"rank"`
	Team           string             `json:"team"`
	Conference     string             `json:"conference"`
	Score          float64            `json:"score"`
	Components     map[string]float64 `json:"components"`
	KenPomRank     int                `json:"kenpom_rank"`
	RankChange     int                `json:"rank_change"`
	AdjOE          float64            `json:"adj_oe"`
	AdjDE          float64            `json:"adj_de"`
	AdjOERank      int                `json:"adj_oe_rank"`
	AdjDERank      int                `json:"adj_de_rank"`
	Experience     float64            `json:"experience"`
	TurnoverMargin float64            `json:"turnover_margin"`
	StarCount      int                `json:"star_count"`
	StarPlayers    []string           `json:"star_players,omitempty"`
}

// Variants lists the supported presets.
func Variants() []Variant {
	return []Variant{VariantWeighted, VariantFinal, VariantFinalV3}
}

// Build assembles the scoring model for a variant over the given teams.
// overrides may replace individual factor weights; the result is always
// renormalized.
func Build(v Variant, teams []model.Team, overrides map[string]float64) (*scoring.Model, error) {
	b := newFactorSet(teams)
	var opts []scoring.Option
	switch v {
	case VariantWeighted:
		opts = []scoring.Option{
			scoring.WithFactor(FactorOffense, 0.35, b.offenseScaled),
			scoring.WithFactor(FactorDefense, 0.35, b.defenseScaled),
			scoring.WithFactor(FactorMomentum, 0.15, b.momentum),
			scoring.WithFactor(FactorSchedule, 0.10, b.scheduleStrength),
			scoring.WithFactor(FactorDominance, 0.05, b.dominance),
		}
	case VariantFinal:
		opts = []scoring.Option{
			scoring.WithFactor(FactorDefense, 0.30, b.defensePercentile),
			scoring.WithFactor(FactorOffense, 0.25, b.offensePercentile),
			scoring.WithFactor(FactorRecent, 0.20, b.recentForm),
			scoring.WithFactor(FactorExperience, 0.15, b.experienceBonus),
			scoring.WithFactor(FactorStarPower, 0.05, b.starPower),
			scoring.WithFactor(FactorPace, 0.05, b.paceControl),
		}
	case VariantFinalV3:
		opts = []scoring.Option{
			scoring.WithFactor(FactorDefense, 0.30, b.defensePercentile),
			scoring.WithFactor(FactorOffense, 0.30, b.offensePercentile),
			scoring.WithFactor(FactorRecent, 0.20, b.recentFormV3),
			scoring.WithFactor(FactorExperience, 0.15, b.experienceTiered),
			scoring.WithFactor(FactorTurnovers, 0.05, b.turnoverMargin),
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
	}
	opts = append(opts, scoring.WithWeightOverrides(overrides))
	return scoring.New(string(v), opts...), nil
}

// Rankings evaluates a variant over the season and returns dense-ranked
// teams best-first with rank change against the reference (KenPom) ranking.
func Rankings(ctx context.Context, v Variant, season []model.Team, overrides map[string]float64) ([]TeamRanking, error) {
	m, err := Build(v, season, overrides)
	if err != nil {
		return nil, err
	}
	results, err := m.Evaluate(ctx, len(season))
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(results))
	reference := make([]int, len(results))
	for i, r := range results {
		scores[i] = r.Total
		reference[i] = season[i].AdjEMRank
	}

	ranked := rank.Dense(scores, reference)
	out := make([]TeamRanking, len(ranked))
	for pos, e := range ranked {
		t := season[e.Index]
		out[pos] = TeamRanking{
			Rank:           e.Rank,
			Team:           t.Name,
			Conference:     t.Conference,
			Score:          e.Score,
			Components:     results[e.Index].Components,
			KenPomRank:     t.AdjEMRank,
			RankChange:     e.Delta,
			AdjOE:          t.AdjOE,
			AdjDE:          t.AdjDE,
			AdjOERank:      t.AdjOERank,
			AdjDERank:      t.AdjDERank,
			Experience:     t.Experience,
			TurnoverMargin: t.TurnoverMargin,
			StarCount:      t.StarCount,
			StarPlayers:    t.StarPlayers,
		}
	}
	return out, nil
}

// factorSet precomputes the column slices the factor closures share.
type factorSet struct {
	teams     []model.Team
	adjOE     []float64
	adjDE     []float64
	margins   []float64
	toMargins []float64
}

func newFactorSet(teams []model.Team) *factorSet {
	b := &factorSet{
		teams:     teams,
		adjOE:     make([]float64, len(teams)),
		adjDE:     make([]float64, len(teams)),
		margins:   make([]float64, len(teams)),
		toMargins: make([]float64, len(teams)),
	}
	for i, t := range teams {
		b.adjOE[i] = t.AdjOE
		b.adjDE[i] = t.AdjDE
		b.margins[i] = t.AdjOE - t.AdjDE
		b.toMargins[i] = t.TurnoverMargin
	}
	return b
}

// defensePercentile: lower AdjDE is better, with a step bonus for elite
// defensive ranks.
func (b *factorSet) defensePercentile(i int) float64 {
	t := b.teams[i]
	p := scoring.PercentileRank(b.adjDE, t.AdjDE, true)
	p += scoring.BonusAtOrBelow(float64(t.AdjDERank),
		scoring.Step{Threshold: 10, Add: 5},
		scoring.Step{Threshold: 25, Add: 2},
	)
	return p
}

func (b *factorSet) offensePercentile(i int) float64 {
	t := b.teams[i]
	p := scoring.PercentileRank(b.adjOE, t.AdjOE, false)
	p += scoring.BonusAtOrBelow(float64(t.AdjOERank),
		scoring.Step{Threshold: 10, Add: 4},
		scoring.Step{Threshold: 25, Add: 2},
	)
	return p
}

// recentForm maps the current overall rank onto a fixed form ladder.
func (b *factorSet) recentForm(i int) float64 {
	switch r := b.teams[i].AdjEMRank; {
	case r <= 5:
		return 98
	case r <= 10:
		return 93
	case r <= 25:
		return 85
	case r <= 50:
		return 75
	case r <= 75:
		return 65
	case r <= 100:
		return 55
	case r <= 150:
		return 45
	default:
		return 35
	}
}

// recentFormV3 collapses the bottom of the ladder; everything past 100 is 40.
func (b *factorSet) recentFormV3(i int) float64 {
	switch r := b.teams[i].AdjEMRank; {
	case r <= 5:
		return 98
	case r <= 10:
		return 93
	case r <= 25:
		return 85
	case r <= 50:
		return 75
	case r <= 75:
		return 65
	case r <= 100:
		return 55
	default:
		return 40
	}
}

// experienceBonus: percentile with veteran bonuses and youth penalties.
func (b *factorSet) experienceBonus(i int) float64 {
	t := b.teams[i]
	all := make([]float64, len(b.teams))
	for j, other := range b.teams {
		all[j] = other.Experience
	}
	p := scoring.PercentileRank(all, t.Experience, false)
	p += scoring.BonusAtOrAbove(t.Experience,
		scoring.Step{Threshold: 3.0, Add: 10},
		scoring.Step{Threshold: 2.5, Add: 5},
	)
	switch {
	case t.Experience < 1.5:
		p -= 10
	case t.Experience < 2.0:
		p -= 5
	}
	return p
}

// experienceTiered: the v3 lookup keyed on both team quality and roster age.
// Elite teams can win young; average teams cannot.
func (b *factorSet) experienceTiered(i int) float64 {
	t := b.teams[i]
	exp := t.Experience
	switch r := t.AdjEMRank; {
	case r <= 10:
		switch {
		case exp >= 2.5:
			return 100
		case exp >= 2.0:
			return 90
		default:
			return 80
		}
	case r <= 25:
		switch {
		case exp >= 2.5:
			return 95
		case exp >= 2.0:
			return 80
		default:
			return 70
		}
	case r <= 50:
		switch {
		case exp >= 2.5:
			return 90
		case exp >= 2.0:
			return 70
		case exp >= 1.5:
			return 55
		default:
			return 40
		}
	default:
		switch {
		case exp >= 3.0:
			return 85
		case exp >= 2.5:
			return 70
		case exp >= 2.0:
			return 50
		default:
			return 20
		}
	}
}

// starPower scores the count of top-100 players, with partial credit for
// good teams that have none.
func (b *factorSet) starPower(i int) float64 {
	t := b.teams[i]
	switch {
	case t.StarCount >= 3:
		return 100
	case t.StarCount == 2:
		return 85
	case t.StarCount == 1:
		return 70
	case t.AdjEMRank <= 50:
		return 50
	default:
		return 30
	}
}

// paceControl rewards tempo extremes: teams that play very fast or very
// slow dictate the game's rhythm.
func (b *factorSet) paceControl(i int) float64 {
	t := b.teams[i]
	if t.AdjTempoRank == 0 {
		return 50
	}
	r := t.AdjTempoRank
	var p float64
	switch {
	case r <= 30 || r >= 335:
		p = 90
	case r <= 60 || r >= 305:
		p = 75
	case r <= 100 || r >= 265:
		p = 60
	default:
		p = 45
	}
	if t.AdjEMRank <= 25 {
		p += 10
	}
	return p
}

// turnoverMargin: percentile of DefTO% - OffTO% with bonuses for elite
// margins and a penalty for very poor ones.
func (b *factorSet) turnoverMargin(i int) float64 {
	t := b.teams[i]
	p := scoring.PercentileRank(b.toMargins, t.TurnoverMargin, false)
	p += scoring.BonusAtOrAbove(t.TurnoverMargin,
		scoring.Step{Threshold: 5.0, Add: 10},
		scoring.Step{Threshold: 3.0, Add: 5},
	)
	if t.TurnoverMargin < -3.0 {
		p -= 10
	}
	return p
}

// offenseScaled and defenseScaled are the weighted model's min/max scaled
// efficiency scores.
func (b *factorSet) offenseScaled(i int) float64 {
	return scoring.MinMaxScale(b.adjOE, b.teams[i].AdjOE, false)
}

func (b *factorSet) defenseScaled(i int) float64 {
	return scoring.MinMaxScale(b.adjDE, b.teams[i].AdjDE, true)
}

// momentum proxies recent form from overall rank, compressed to 20-100.
func (b *factorSet) momentum(i int) float64 {
	n := len(b.teams)
	if n <= 1 {
		return 50
	}
	base := 100 * float64(n-b.teams[i].AdjEMRank) / float64(n-1)
	return base*0.8 + 20
}

// Power conferences used by the schedule-strength proxy.
var powerConferences = map[string]bool{
	"SEC": true, "B12": true, "B10": true, "ACC": true, "BE": true,
}

var midMajorConferences = map[string]bool{
	"Amer": true, "A10": true, "MWC": true, "WCC": true,
}

func (b *factorSet) scheduleStrength(i int) float64 {
	t := b.teams[i]
	base := 50.0
	switch {
	case powerConferences[t.Conference]:
		base = 80
	case midMajorConferences[t.Conference]:
		base = 65
	}
	return base + float64(100-t.AdjEMRank)/10
}

func (b *factorSet) dominance(i int) float64 {
	return scoring.MinMaxScale(b.margins, b.teams[i].AdjOE-b.teams[i].AdjDE, false)
}
