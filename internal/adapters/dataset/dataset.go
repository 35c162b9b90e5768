// Package dataset loads the flat CSV snapshots and joins them into the
// per-entity records the models score. Tables are reloaded wholesale on
// every run; there is no incremental update.
package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/swishlab/hooprank/internal/domain/model"
	"github.com/swishlab/hooprank/pkg/logger"
	"github.com/swishlab/hooprank/pkg/metrics"
)

// Snapshot file names, matching the collection scripts' output.
const (
	RatingsFile     = "kenpom_rankings_latest.csv"
	PersonnelFile   = "kenpom_height_experience_latest.csv"
	TempoFile       = "kenpom_tempo_stats_latest.csv"
	FourFactorsFile = "kenpom_four_factors_latest.csv"
	PlayerStatsFile = "kenpom_player_stats_latest.csv"
	GoatPlayersFile = "nba_goat_player_data.csv"
)

// Season is the joined NCAA table for one snapshot.
type Season struct {
	Teams []model.Team
}

// Loader reads snapshots from a directory.
type Loader struct {
	dir string
	log logger.Logger
}

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithDir sets the snapshot directory.
func WithDir(dir string) Option {
	return func(l *Loader) {
		if dir != "" {
			l.dir = dir
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLoader creates a Loader with configuration options.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{dir: "data"}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = logger.Get().Named("dataset")
	}
	return l
}

// LoadSeason loads and joins the NCAA tables. The ratings table is required;
// personnel, tempo, four factors, and player stats are optional. A present
// optional table inner-joins on Team: teams absent from it are dropped, which
// mirrors the source merges. A missing optional table leaves its columns
// zero and keeps every rated team.
func (l *Loader) LoadSeason(ctx context.Context) (*Season, error) {
	ratings, err := readTable[model.TeamRating](l.path(RatingsFile))
	if err != nil {
		return nil, err
	}
	metrics.UpdateRowsLoaded("ratings", len(ratings))

	teams := make([]model.Team, 0, len(ratings))
	for _, r := range ratings {
		if r.Team == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingKey, RatingsFile)
		}
		teams = append(teams, model.Team{
			Name:       r.Team,
			Conference: r.Conference,
			AdjEM:      r.AdjEM,
			AdjEMRank:  r.AdjEMRank,
			AdjOE:      r.AdjOE,
			AdjOERank:  r.AdjOERank,
			AdjDE:      r.AdjDE,
			AdjDERank:  r.AdjDERank,
		})
	}

	teams, err = l.joinPersonnel(ctx, teams)
	if err != nil {
		return nil, err
	}
	teams, err = l.joinTempo(ctx, teams)
	if err != nil {
		return nil, err
	}
	teams, err = l.joinFourFactors(ctx, teams)
	if err != nil {
		return nil, err
	}
	teams, err = l.joinPlayerStats(ctx, teams)
	if err != nil {
		return nil, err
	}

	l.log.Info(ctx, "season snapshot loaded", logger.Int("teams", len(teams)))
	return &Season{Teams: teams}, nil
}

// LoadPlayers loads the NBA GOAT player table.
func (l *Loader) LoadPlayers(ctx context.Context) ([]model.Player, error) {
	players, err := readTable[model.Player](l.path(GoatPlayersFile))
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingKey, GoatPlayersFile)
		}
	}
	metrics.UpdateRowsLoaded("goat_players", len(players))
	l.log.Info(ctx, "player snapshot loaded", logger.Int("players", len(players)))
	return players, nil
}

func (l *Loader) path(name string) string {
	return filepath.Join(l.dir, name)
}

func (l *Loader) joinPersonnel(ctx context.Context, teams []model.Team) ([]model.Team, error) {
	rows, ok, err := optionalTable[model.TeamPersonnel](l.path(PersonnelFile))
	if err != nil {
		return nil, err
	}
	if !ok {
		l.log.Warn(ctx, "personnel table missing; experience scores will be neutral")
		return teams, nil
	}
	metrics.UpdateRowsLoaded("personnel", len(rows))
	byTeam := make(map[string]model.TeamPersonnel, len(rows))
	for _, r := range rows {
		byTeam[r.Team] = r
	}
	joined := teams[:0]
	for _, t := range teams {
		p, found := byTeam[t.Name]
		if !found {
			continue
		}
		t.Experience = p.Experience
		t.AvgHeight = p.AvgHeight
		joined = append(joined, t)
	}
	return joined, nil
}

func (l *Loader) joinTempo(ctx context.Context, teams []model.Team) ([]model.Team, error) {
	rows, ok, err := optionalTable[model.TeamTempo](l.path(TempoFile))
	if err != nil {
		return nil, err
	}
	if !ok {
		l.log.Warn(ctx, "tempo table missing; pace scores will be neutral")
		return teams, nil
	}
	metrics.UpdateRowsLoaded("tempo", len(rows))
	byTeam := make(map[string]model.TeamTempo, len(rows))
	for _, r := range rows {
		byTeam[r.Team] = r
	}
	joined := teams[:0]
	for _, t := range teams {
		tp, found := byTeam[t.Name]
		if !found {
			continue
		}
		t.AdjTempo = tp.AdjTempo
		t.AdjTempoRank = tp.AdjTempoRank
		joined = append(joined, t)
	}
	return joined, nil
}

func (l *Loader) joinFourFactors(ctx context.Context, teams []model.Team) ([]model.Team, error) {
	rows, ok, err := optionalTable[model.TeamFourFactors](l.path(FourFactorsFile))
	if err != nil {
		return nil, err
	}
	if !ok {
		l.log.Warn(ctx, "four factors table missing; turnover margin will be neutral")
		return teams, nil
	}
	metrics.UpdateRowsLoaded("four_factors", len(rows))
	byTeam := make(map[string]model.TeamFourFactors, len(rows))
	for _, r := range rows {
		byTeam[r.Team] = r
	}
	joined := teams[:0]
	for _, t := range teams {
		ff, found := byTeam[t.Name]
		if !found {
			continue
		}
		t.OffTOPct = ff.OffTOPct
		t.DefTOPct = ff.DefTOPct
		t.TurnoverMargin = ff.DefTOPct - ff.OffTOPct
		joined = append(joined, t)
	}
	return joined, nil
}

func (l *Loader) joinPlayerStats(ctx context.Context, teams []model.Team) ([]model.Team, error) {
	rows, ok, err := optionalTable[model.PlayerStat](l.path(PlayerStatsFile))
	if err != nil {
		return nil, err
	}
	if !ok {
		l.log.Warn(ctx, "player stats table missing; star counts will be zero")
		return teams, nil
	}
	metrics.UpdateRowsLoaded("player_stats", len(rows))
	byTeam := make(map[string][]string)
	for _, r := range rows {
		byTeam[r.Team] = append(byTeam[r.Team], r.Player)
	}
	// Star counts do not gate the join: teams without top-100 players stay.
	for i := range teams {
		players := byTeam[teams[i].Name]
		teams[i].StarCount = len(players)
		teams[i].StarPlayers = players
	}
	return teams, nil
}

// readTable loads a required CSV file into rows of T.
func readTable[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMissingTable, filepath.Base(path), err)
	}
	defer func() { _ = f.Close() }()

	var rows []T
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTable, filepath.Base(path))
	}
	return rows, nil
}

// optionalTable loads a CSV file that is allowed to be absent.
func optionalTable[T any](path string) ([]T, bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, false, nil
	}
	rows, err := readTable[T](path)
	if err != nil {
		return nil, false, err
	}
	return rows, true, nil
}
