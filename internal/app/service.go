// Package service runs the ranking pipeline and implements the
// dependencies required by the HTTP API: load the snapshot tables, evaluate
// every model, publish the boards and answer queries between runs.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/swishlab/hooprank/internal/adapters/dataset"
	"github.com/swishlab/hooprank/internal/adapters/report"
	"github.com/swishlab/hooprank/internal/adapters/repository"
	"github.com/swishlab/hooprank/internal/domain/goat"
	"github.com/swishlab/hooprank/internal/domain/ncaa"
	"github.com/swishlab/hooprank/internal/domain/predict"
	"github.com/swishlab/hooprank/internal/domain/validate"
	"github.com/swishlab/hooprank/pkg/logger"
	"github.com/swishlab/hooprank/pkg/metrics"
)

// Service owns the ranking pipeline and the published boards.
type Service struct {
	mu sync.RWMutex

	// Core components
	loader     *dataset.Loader
	teamBoards map[ncaa.Variant]*repository.Board[ncaa.TeamRanking]
	goatBoard  *repository.Board[goat.PlayerRanking]
	predictor  *predict.Predictor
	validation validate.Report

	// Configuration
	dataDir         string
	outputDir       string
	variant         ncaa.Variant
	weightOverrides map[string]float64
	homeCourt       float64
	marginSigma     float64
	maxLimit        int
	saveArtifacts   bool

	// State
	started   bool
	lastRunID string
	lastRunAt time.Time
	runCount  int

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataDir sets the snapshot directory.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithOutputDir sets where CSV artifacts are written.
func WithOutputDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.outputDir = dir
		}
	}
}

// WithModelVariant selects the NCAA variant served by default.
func WithModelVariant(v ncaa.Variant) Option {
	return func(s *Service) {
		if v != "" {
			s.variant = v
		}
	}
}

// WithWeightOverrides replaces individual factor weights of the selected
// variant.
func WithWeightOverrides(overrides map[string]float64) Option {
	return func(s *Service) {
		s.weightOverrides = overrides
	}
}

// WithHomeCourtAdvantage sets the prediction home court points.
func WithHomeCourtAdvantage(pts float64) Option {
	return func(s *Service) {
		if pts >= 0 {
			s.homeCourt = pts
		}
	}
}

// WithMarginSigma sets the margin spread used for win probability.
func WithMarginSigma(sigma float64) Option {
	return func(s *Service) {
		if sigma > 0 {
			s.marginSigma = sigma
		}
	}
}

// WithMaxRankingLimit caps the limit accepted by board queries.
func WithMaxRankingLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithoutArtifacts disables CSV artifact writing, mainly for tests.
func WithoutArtifacts() Option {
	return func(s *Service) {
		s.saveArtifacts = false
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir:       "data",
		outputDir:     "data",
		variant:       ncaa.VariantFinalV3,
		homeCourt:     predict.DefaultHomeCourtAdvantage,
		marginSigma:   predict.DefaultMarginSigma,
		maxLimit:      100,
		saveArtifacts: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the snapshot tables and runs the first pipeline pass.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.loader = dataset.NewLoader(
		dataset.WithDir(s.dataDir),
		dataset.WithLogger(s.logger.Named("dataset")),
	)

	s.teamBoards = make(map[ncaa.Variant]*repository.Board[ncaa.TeamRanking], len(ncaa.Variants()))
	for _, v := range ncaa.Variants() {
		s.teamBoards[v] = repository.NewBoard(
			"ncaa_"+string(v),
			func(r ncaa.TeamRanking) string { return r.Team },
		)
	}
	s.goatBoard = repository.NewBoard(
		"goat",
		func(r goat.PlayerRanking) string { return r.Name },
	)

	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "starting ranking service",
		logger.String("dataDir", s.dataDir),
		logger.String("variant", string(s.variant)),
	)
	return s.Refresh(ctx)
}

// Stop shuts the service down. Boards stay readable until process exit.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "ranking service stopped")
}

// Refresh reruns the whole pipeline from the snapshot directory and swaps
// every board.
func (s *Service) Refresh(ctx context.Context) error {
	start := time.Now()
	runID := uuid.NewString()

	err := s.refresh(ctx, runID)
	elapsed := time.Since(start)

	if err != nil {
		metrics.RecordPipelineRunError()
		s.logger.Error(ctx, "pipeline run failed",
			logger.String("runID", runID),
			logger.Error(err),
		)
		return fmt.Errorf("pipeline run %s: %w", runID, err)
	}

	metrics.RecordPipelineRun()
	metrics.RecordPipelineRunDuration(float64(elapsed.Milliseconds()))
	metrics.UpdateLastRunUnix(time.Now().Unix())

	s.mu.Lock()
	s.lastRunID = runID
	s.lastRunAt = time.Now()
	s.runCount++
	s.mu.Unlock()

	s.logger.Info(ctx, "pipeline run complete",
		logger.String("runID", runID),
		logger.Duration("elapsed", elapsed),
	)
	return nil
}

func (s *Service) refresh(ctx context.Context, runID string) error {
	season, err := s.loader.LoadSeason(ctx)
	if err != nil {
		return fmt.Errorf("load season: %w", err)
	}
	players, err := s.loader.LoadPlayers(ctx)
	if err != nil {
		return fmt.Errorf("load players: %w", err)
	}

	for v, board := range s.teamBoards {
		overrides := map[string]float64(nil)
		if v == s.variant {
			overrides = s.weightOverrides
		}
		rankings, err := ncaa.Rankings(ctx, v, season.Teams, overrides)
		if err != nil {
			return fmt.Errorf("rank %s: %w", v, err)
		}
		board.Replace(ctx, rankings, runID)
	}

	goatRankings, err := goat.Rankings(ctx, players, nil)
	if err != nil {
		return fmt.Errorf("rank goat: %w", err)
	}
	s.goatBoard.Replace(ctx, goatRankings, runID)

	served := s.teamBoards[s.variant].All(ctx)
	predictor := predict.New(served,
		predict.WithHomeCourtAdvantage(s.homeCourt),
		predict.WithMarginSigma(s.marginSigma),
	)
	validation := validate.Run(string(s.variant), served)

	s.mu.Lock()
	s.predictor = predictor
	s.validation = validation
	s.mu.Unlock()

	if s.saveArtifacts {
		if _, err := report.SaveTeamRankings(s.outputDir, s.variant, served); err != nil {
			return fmt.Errorf("save team rankings: %w", err)
		}
		if _, err := report.SavePlayerRankings(s.outputDir, goatRankings); err != nil {
			return fmt.Errorf("save player rankings: %w", err)
		}
	}
	return nil
}

// Variant returns the NCAA variant served by default.
func (s *Service) Variant() ncaa.Variant {
	return s.variant
}

// OutputDir returns where CSV artifacts are written.
func (s *Service) OutputDir() string {
	return s.outputDir
}

// MaxRankingLimit returns the cap for board query limits.
func (s *Service) MaxRankingLimit() int {
	return s.maxLimit
}

// TopTeams returns the first n teams of a variant board. An empty variant
// selects the default one.
func (s *Service) TopTeams(ctx context.Context, v ncaa.Variant, n int) ([]ncaa.TeamRanking, error) {
	board, err := s.teamBoard(v)
	if err != nil {
		return nil, err
	}
	return board.TopN(ctx, n)
}

// Team returns one team's row on a variant board.
func (s *Service) Team(ctx context.Context, v ncaa.Variant, name string) (ncaa.TeamRanking, error) {
	board, err := s.teamBoard(v)
	if err != nil {
		return ncaa.TeamRanking{}, err
	}
	return board.Get(ctx, name)
}

// TopPlayers returns the first n players of the GOAT board.
func (s *Service) TopPlayers(ctx context.Context, n int) ([]goat.PlayerRanking, error) {
	return s.goatBoard.TopN(ctx, n)
}

// Player returns one player's row on the GOAT board, matching by
// case-insensitive substring like the report tooling does.
func (s *Service) Player(ctx context.Context, name string) (goat.PlayerRanking, error) {
	if p, err := s.goatBoard.Get(ctx, name); err == nil {
		return p, nil
	}
	if p, ok := goat.Find(s.goatBoard.All(ctx), name); ok {
		return p, nil
	}
	return goat.PlayerRanking{}, repository.ErrNotFound
}

// Predict forecasts a matchup on the default variant board.
func (s *Service) Predict(ctx context.Context, team1, team2 string, loc predict.Location) (predict.Prediction, error) {
	s.mu.RLock()
	p := s.predictor
	s.mu.RUnlock()

	if p == nil {
		return predict.Prediction{}, repository.ErrEmptyBoard
	}
	return p.Predict(team1, team2, loc)
}

// Compare contrasts the model margin with the efficiency baseline.
func (s *Service) Compare(ctx context.Context, team1, team2 string) (predict.Comparison, error) {
	s.mu.RLock()
	p := s.predictor
	s.mu.RUnlock()

	if p == nil {
		return predict.Comparison{}, repository.ErrEmptyBoard
	}
	return p.Compare(team1, team2)
}

// Validation returns the latest validation report for the default variant.
func (s *Service) Validation() validate.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.validation
}

// GetStats reports service state for the stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started": s.started,
		"variant": string(s.variant),
	}

	if s.started {
		stats["lastRunID"] = s.lastRunID
		stats["lastRunAt"] = s.lastRunAt
		stats["runCount"] = s.runCount
		stats["teams"] = s.teamBoards[s.variant].Count(ctx)
		stats["players"] = s.goatBoard.Count(ctx)
	}
	return stats
}

func (s *Service) teamBoard(v ncaa.Variant) (*repository.Board[ncaa.TeamRanking], error) {
	if v == "" {
		v = s.variant
	}
	board, ok := s.teamBoards[v]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ncaa.ErrUnknownVariant, v)
	}
	return board, nil
}
