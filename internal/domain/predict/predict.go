// Package predict turns model rankings into single-game predictions:
// point margin, projected score and win probability.
package predict

import (
	"fmt"
	"math"

	"github.com/atgjack/prob"
	"github.com/swishlab/hooprank/internal/domain/ncaa"
)

// Calibration constants fitted against historical results.
const (
	// marginCalibration converts a model score difference to points.
	marginCalibration = 0.35
	// avgPossessions is the per-team possession estimate for projecting
	// final scores.
	avgPossessions = 70.0

	// DefaultHomeCourtAdvantage in points.
	DefaultHomeCourtAdvantage = 3.5
	// DefaultMarginSigma is the spread of actual margins around the
	// predicted one.
	DefaultMarginSigma = 8.0
)

// Location says where the game is played, from the first team's point
// of view.
type Location string

const (
	LocationNeutral Location = "neutral"
	LocationHome    Location = "home"
	LocationAway    Location = "away"
)

// ParseLocation validates a location string. The team1_home and
// team2_home aliases map to home and away.
func ParseLocation(s string) (Location, error) {
	switch Location(s) {
	case LocationNeutral, LocationHome, LocationAway:
		return Location(s), nil
	case "":
		return LocationNeutral, nil
	case "team1_home":
		return LocationHome, nil
	case "team2_home":
		return LocationAway, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLocation, s)
}

// Prediction is a full matchup forecast.
type Prediction struct {
	Team1        string   `json:"team1"`
	Team2        string   `json:"team2"`
	Location     Location `json:"location"`
	Winner       string   `json:"winner"`
	Margin       float64  `json:"margin"`
	Team1Points  float64  `json:"team1_points"`
	Team2Points  float64  `json:"team2_points"`
	Team1WinProb float64  `json:"team1_win_prob"`
	KeyFactors   []string `json:"key_factors,omitempty"`
}

// Comparison contrasts the model's margin with the plain efficiency-margin
// baseline.
type Comparison struct {
	Team1          string  `json:"team1"`
	Team2          string  `json:"team2"`
	ModelMargin    float64 `json:"model_margin"`
	BaselineMargin float64 `json:"baseline_margin"`
	Difference     float64 `json:"difference"`
	Disagree       bool    `json:"disagree"`
}

// Predictor forecasts games from a ranked season.
type Predictor struct {
	byName    map[string]ncaa.TeamRanking
	homeCourt float64
	sigma     float64
	dist      prob.Normal
}

// Option applies a configuration option to the Predictor.
type Option func(*Predictor)

// WithHomeCourtAdvantage overrides the points added for the home team.
func WithHomeCourtAdvantage(pts float64) Option {
	return func(p *Predictor) {
		if pts >= 0 {
			p.homeCourt = pts
		}
	}
}

// WithMarginSigma overrides the margin spread used for win probability.
func WithMarginSigma(sigma float64) Option {
	return func(p *Predictor) {
		if sigma > 0 {
			p.sigma = sigma
		}
	}
}

// New builds a Predictor over a ranked season.
func New(rankings []ncaa.TeamRanking, opts ...Option) *Predictor {
	p := &Predictor{
		byName:    make(map[string]ncaa.TeamRanking, len(rankings)),
		homeCourt: DefaultHomeCourtAdvantage,
		sigma:     DefaultMarginSigma,
	}
	for _, r := range rankings {
		p.byName[r.Team] = r
	}
	for _, opt := range opts {
		opt(p)
	}
	p.dist = prob.Normal{Mu: 0, Sigma: p.sigma}
	return p
}

// Predict forecasts team1 against team2. The location is from team1's
// point of view.
func (p *Predictor) Predict(team1, team2 string, loc Location) (Prediction, error) {
	t1, err := p.lookup(team1)
	if err != nil {
		return Prediction{}, err
	}
	t2, err := p.lookup(team2)
	if err != nil {
		return Prediction{}, err
	}

	margin := (t1.Score - t2.Score) * marginCalibration
	switch loc {
	case LocationHome:
		margin += p.homeCourt
	case LocationAway:
		margin -= p.homeCourt
	}

	// Project each offense against the other defense over an average
	// possession count, then fold in the model margin.
	t1Points := t1.AdjOE / 100 * avgPossessions * (100 / t2.AdjDE)
	t2Points := t2.AdjOE / 100 * avgPossessions * (100 / t1.AdjDE)
	t1Points += margin / 2
	t2Points -= margin / 2

	winner := t1.Team
	if margin < 0 {
		winner = t2.Team
	}

	return Prediction{
		Team1:        t1.Team,
		Team2:        t2.Team,
		Location:     loc,
		Winner:       winner,
		Margin:       margin,
		Team1Points:  t1Points,
		Team2Points:  t2Points,
		Team1WinProb: p.dist.Cdf(margin),
		KeyFactors:   keyFactors(t1, t2),
	}, nil
}

// Compare contrasts the model margin with the raw efficiency-margin
// baseline on a neutral floor.
func (p *Predictor) Compare(team1, team2 string) (Comparison, error) {
	t1, err := p.lookup(team1)
	if err != nil {
		return Comparison{}, err
	}
	t2, err := p.lookup(team2)
	if err != nil {
		return Comparison{}, err
	}

	modelMargin := (t1.Score - t2.Score) * marginCalibration
	baseline := (t1.AdjOE - t1.AdjDE) - (t2.AdjOE - t2.AdjDE)

	return Comparison{
		Team1:          t1.Team,
		Team2:          t2.Team,
		ModelMargin:    modelMargin,
		BaselineMargin: baseline,
		Difference:     math.Abs(modelMargin - baseline),
		Disagree:       (modelMargin > 0) != (baseline > 0),
	}, nil
}

func (p *Predictor) lookup(name string) (ncaa.TeamRanking, error) {
	t, ok := p.byName[name]
	if !ok {
		return ncaa.TeamRanking{}, fmt.Errorf("%w: %q", ErrTeamNotFound, name)
	}
	return t, nil
}

func keyFactors(t1, t2 ncaa.TeamRanking) []string {
	var factors []string
	if t1.AdjDERank < t2.AdjOERank {
		factors = append(factors, fmt.Sprintf(
			"%s's defense (#%d) should slow %s's offense (#%d)",
			t1.Team, t1.AdjDERank, t2.Team, t2.AdjOERank))
	}
	if t2.AdjDERank < t1.AdjOERank {
		factors = append(factors, fmt.Sprintf(
			"%s's defense (#%d) should slow %s's offense (#%d)",
			t2.Team, t2.AdjDERank, t1.Team, t1.AdjOERank))
	}
	switch {
	case t1.AdjDERank <= 30 && t2.AdjDERank <= 30:
		factors = append(factors, "defensive battle expected, both teams in top 30 defenses")
	case t1.AdjOERank <= 30 && t2.AdjOERank <= 30:
		factors = append(factors, "high-scoring game possible, both teams in top 30 offenses")
	}
	return factors
}
