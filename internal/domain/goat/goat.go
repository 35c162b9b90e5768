// Package goat computes the SWISH composite score ranking NBA players
// across eras. Six weighted components cover peak play, career totals,
// hardware, championships, era-adjusted statistics and longevity.
package goat

import (
	"context"
	"strings"

	"github.com/swishlab/hooprank/internal/domain/model"
	"github.com/swishlab/hooprank/internal/domain/rank"
	"github.com/swishlab/hooprank/internal/domain/scoring"
)

// ModelName identifies the GOAT model in metrics and reports.
const ModelName = "swish"

// Component names.
const (
	FactorPeak         = "peak_dominance"
	FactorCareer       = "career_value"
	FactorHonors       = "individual_honors"
	FactorChampionship = "championship_impact"
	FactorStats        = "statistical_excellence"
	FactorLongevity    = "longevity"
)

// PlayerRanking is one player's final ranked result with the component
// breakdown.
type PlayerRanking struct {
	Rank          int                `json:"rank"`
	Name          string             `json:"name"`
	Era           Era                `json:"era"`
	Score         float64            `json:"score"`
	Components    map[string]float64 `json:"components"`
	CareerPPG     float64            `json:"career_ppg"`
	CareerRPG     float64            `json:"career_rpg"`
	CareerAPG     float64            `json:"career_apg"`
	CareerPER     float64            `json:"career_per"`
	CareerWS      float64            `json:"career_ws"`
	Championships int                `json:"championships"`
	FinalsMVP     int                `json:"finals_mvp"`
	MVP           int                `json:"mvp"`
	AllStar       int                `json:"all_star"`
}

// Build assembles the SWISH scoring model over the given players.
func Build(players []model.Player, overrides map[string]float64) *scoring.Model {
	c := newCalculator(players)
	return scoring.New(ModelName,
		scoring.WithFactor(FactorPeak, 0.20, c.peakDominance),
		scoring.WithFactor(FactorCareer, 0.20, c.careerValue),
		scoring.WithFactor(FactorHonors, 0.20, c.individualHonors),
		scoring.WithFactor(FactorChampionship, 0.15, c.championshipImpact),
		scoring.WithFactor(FactorStats, 0.15, c.statisticalExcellence),
		scoring.WithFactor(FactorLongevity, 0.10, c.longevity),
		scoring.WithWeightOverrides(overrides),
	)
}

// Rankings evaluates the SWISH model and returns players best-first with
// dense ranks. There is no external reference ranking, so rank change is
// always zero.
func Rankings(ctx context.Context, players []model.Player, overrides map[string]float64) ([]PlayerRanking, error) {
	m := Build(players, overrides)
	results, err := m.Evaluate(ctx, len(players))
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(results))
	for i, r := range results {
		scores[i] = r.Total
	}

	ranked := rank.Dense(scores, nil)
	out := make([]PlayerRanking, len(ranked))
	for pos, e := range ranked {
		p := players[e.Index]
		out[pos] = PlayerRanking{
			Rank:          e.Rank,
			Name:          p.Name,
			Era:           EraFor(p),
			Score:         e.Score,
			Components:    results[e.Index].Components,
			CareerPPG:     p.CareerPPG,
			CareerRPG:     p.CareerRPG,
			CareerAPG:     p.CareerAPG,
			CareerPER:     p.CareerPER,
			CareerWS:      p.CareerWS,
			Championships: int(p.Championships),
			FinalsMVP:     int(p.FinalsMVP),
			MVP:           int(p.MVP),
			AllStar:       int(p.AllStar),
		}
	}
	return out, nil
}

// Find returns the first ranking whose player name contains the query,
// case-insensitive.
func Find(rankings []PlayerRanking, query string) (PlayerRanking, bool) {
	q := strings.ToLower(query)
	for _, r := range rankings {
		if strings.Contains(strings.ToLower(r.Name), q) {
			return r, true
		}
	}
	return PlayerRanking{}, false
}

// calculator holds the player rows and their resolved eras for the factor
// closures.
type calculator struct {
	players []model.Player
	eras    []Era
}

func newCalculator(players []model.Player) *calculator {
	c := &calculator{players: players, eras: make([]Era, len(players))}
	for i, p := range players {
		c.eras[i] = EraFor(p)
	}
	return c
}

func capAt100(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}

func floor0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// peakDominance blends peak-season PER, peak scoring and win shares per 48.
func (c *calculator) peakDominance(i int) float64 {
	p := c.players[i]

	// Career PER stands in for true five-year-peak PER.
	perScore := capAt100(p.CareerPER / 31.0 * 100)
	ppgScore := capAt100(p.PeakPPG / 35.0 * 100)

	var ws48 float64
	if p.CareerGames > 0 {
		ws48 = p.CareerWS / p.CareerGames * 48
	}
	ws48Score := capAt100(ws48 / 0.25 * 100)

	return 0.40*perScore + 0.30*ppgScore + 0.30*ws48Score
}

// careerValue scores total contribution: win shares, VORP and counting stats.
func (c *calculator) careerValue(i int) float64 {
	p := c.players[i]

	wsScore := capAt100(p.CareerWS / 250.0 * 100)
	vorpScore := capAt100(p.CareerVORP / 100.0 * 100)
	statsScore := capAt100(
		p.CareerPPG/30.0*40 +
			p.CareerRPG/10.0*30 +
			p.CareerAPG/8.0*30,
	)

	return 0.40*wsScore + 0.40*vorpScore + 0.20*statsScore
}

// championshipImpact: rings, Finals MVPs, playoff elevation and experience.
func (c *calculator) championshipImpact(i int) float64 {
	p := c.players[i]

	ringsScore := capAt100(p.Championships / 6.0 * 100)
	fmvpScore := capAt100(p.FinalsMVP / 4.0 * 100)

	elevation := 1.0
	if p.CareerPPG > 0 {
		elevation = p.PlayoffPPG / p.CareerPPG
	}
	elevationScore := capAt100(elevation * 80)

	expScore := capAt100(p.PlayoffGames / 200.0 * 100)

	return 0.35*ringsScore + 0.35*fmvpScore + 0.20*elevationScore + 0.10*expScore
}

// individualHonors: MVPs, All-NBA, All-Star, defensive honors, scoring titles.
func (c *calculator) individualHonors(i int) float64 {
	p := c.players[i]

	mvpScore := capAt100(p.MVP / 5.0 * 100)

	allNBAPoints := p.AllNBAFirst*5 + p.AllNBASecond*3 + p.AllNBAThird
	allNBAScore := capAt100(allNBAPoints / 60.0 * 100)

	allStarScore := capAt100(p.AllStar / 15.0 * 100)

	defensivePoints := p.DPOY*10 + p.AllDefenseFirst*3 + p.AllDefenseSecond*1.5
	defensiveScore := capAt100(defensivePoints / 40.0 * 100)

	scoringTitleScore := capAt100(p.ScoringTitles * 4 / 40.0 * 100)

	return 0.30*mvpScore + 0.25*allNBAScore + 0.15*allStarScore +
		0.15*defensiveScore + 0.15*scoringTitleScore
}

// statisticalExcellence normalizes raw production against the player's era.
func (c *calculator) statisticalExcellence(i int) float64 {
	p := c.players[i]
	era := eraContexts[c.eras[i]]

	offensive := c.offensiveExcellence(p, era)
	defensive := c.defensiveExcellence(i, p, era)
	efficiency := c.efficiencyMetrics(p, era)

	return 0.40*offensive + 0.30*defensive + 0.30*efficiency
}

func (c *calculator) offensiveExcellence(p model.Player, era eraContext) float64 {
	ppgVsEra := p.CareerPPG / era.avgPPG
	ppgScore := capAt100(floor0((ppgVsEra - 0.5) * 100))

	apgVsEra := p.CareerAPG / era.avgAPG
	apgScore := capAt100(floor0((apgVsEra - 0.5) * 100))

	peakVsEra := p.PeakPPG / era.avgPPG
	peakScore := capAt100(floor0(
		(peakVsEra-1.0)*50 +
			p.Seasons30PPG*8 +
			p.Seasons25PPG*3,
	))

	return 0.50*ppgScore + 0.25*apgScore + 0.25*peakScore
}

func (c *calculator) defensiveExcellence(i int, p model.Player, era eraContext) float64 {
	defensivePoints := p.DPOY*15 + p.AllDefenseFirst*5 + p.AllDefenseSecond*2.5
	awardScore := capAt100(defensivePoints / 50.0 * 100)

	// Rebounding vs era, boosted for guards and wings who rebound less by
	// role.
	rpgVsEra := p.CareerRPG / era.avgRPG
	positionFactor := 1.0
	switch {
	case p.CareerRPG < 5.0:
		positionFactor = 2.0
	case p.CareerRPG < 8.0:
		positionFactor = 1.5
	}
	reboundScore := capAt100(floor0((rpgVsEra - 0.5) * 100 * positionFactor))

	// Steals and blocks were not recorded before 1974.
	var stocksScore float64
	if c.eras[i] == EraPreMerger && p.CareerSPG == 0 && p.CareerBPG == 0 {
		stocksScore = 50
	} else {
		stocksScore = capAt100(p.CareerSPG/2.0*50 + p.CareerBPG/2.5*50)
	}

	return 0.50*awardScore + 0.30*reboundScore + 0.20*stocksScore
}

func (c *calculator) efficiencyMetrics(p model.Player, era eraContext) float64 {
	perScore := capAt100(floor0((p.CareerPER - 15.0) / 10.0 * 100))

	tsPct := p.CareerTSPct
	if tsPct == 0 {
		// Rough estimate from shooting splits when TS% is missing.
		fg := p.CareerFGPct
		if fg == 0 {
			fg = 0.450
		}
		ft := p.CareerFTPct
		if ft == 0 {
			ft = 0.750
		}
		tsPct = fg + 0.5*ft*0.2
	}
	tsVsEra := tsPct / era.avgTSPct
	tsScore := capAt100(floor0((tsVsEra - 0.85) * 100 / 0.3))

	tovScore := 50.0
	if p.CareerTOVPct > 0 {
		tovScore = capAt100(floor0((20 - p.CareerTOVPct) * 5))
	}

	return 0.50*perScore + 0.35*tsScore + 0.15*tovScore
}

// longevity: seasons, games and sustained All-Star level play.
func (c *calculator) longevity(i int) float64 {
	p := c.players[i]

	seasonsScore := capAt100(p.SeasonsPlayed / 20.0 * 100)
	gamesScore := capAt100(p.CareerGames / 1400.0 * 100)

	var lateCareerScore float64
	if p.SeasonsPlayed > 0 {
		lateCareerScore = capAt100(p.AllStar / p.SeasonsPlayed * 100)
	}

	return 0.40*seasonsScore + 0.40*gamesScore + 0.20*lateCareerScore
}
