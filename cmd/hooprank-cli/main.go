// Command hooprank-cli runs the ranking pipeline from the terminal.
//
// Usage:
//
//	hooprank-cli rank ncaa --model finalv3 --top 25
//	hooprank-cli rank goat --top 20
//	hooprank-cli predict Houston Duke --location team1_home
//	hooprank-cli validate --model finalv3
//	hooprank-cli scrape hof
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/swishlab/hooprank/internal/adapters/dataset"
	"github.com/swishlab/hooprank/internal/adapters/report"
	"github.com/swishlab/hooprank/internal/adapters/scrape"
	"github.com/swishlab/hooprank/internal/domain/goat"
	"github.com/swishlab/hooprank/internal/domain/ncaa"
	"github.com/swishlab/hooprank/internal/domain/predict"
	"github.com/swishlab/hooprank/internal/domain/validate"
	"github.com/swishlab/hooprank/pkg/logger"
)

const (
	defaultDataDir = "data"
	defaultTopN    = 25
)

var dataDir string

func main() {
	// Load .env from the working directory if present.
	_ = godotenv.Load(".env")

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	root := &cobra.Command{
		Use:           "hooprank-cli",
		Short:         "Composite basketball ranking pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", envOr("HOOPRANK_DATA_DIR", defaultDataDir), "Directory holding the input CSV snapshots")

	root.AddCommand(rankCmd())
	root.AddCommand(predictCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(scrapeCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadSeasonVariant(ctx context.Context, model string) ([]ncaa.TeamRanking, error) {
	loader := dataset.NewLoader(dataset.WithDir(dataDir))
	season, err := loader.LoadSeason(ctx)
	if err != nil {
		return nil, fmt.Errorf("load season: %w", err)
	}
	return ncaa.Rankings(ctx, ncaa.Variant(model), season.Teams, nil)
}

// --------------------------------------------------------------------------
// rank command
// --------------------------------------------------------------------------

func rankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Compute and print rankings",
	}
	cmd.AddCommand(rankNCAACmd())
	cmd.AddCommand(rankGOATCmd())
	return cmd
}

func rankNCAACmd() *cobra.Command {
	var (
		model string
		topN  int
		out   string
	)
	cmd := &cobra.Command{
		Use:   "ncaa",
		Short: "Rank NCAA teams with the selected model variant",
		RunE: func(cmd *cobra.Command, args []string) error {
			rankings, err := loadSeasonVariant(cmd.Context(), model)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("NCAA COMPOSITE RANKINGS (%s)", model)
			report.WriteTeamTable(cmd.OutOrStdout(), title, rankings, topN)
			if out != "" {
				path, err := report.SaveTeamRankings(out, ncaa.Variant(model), rankings)
				if err != nil {
					return fmt.Errorf("save rankings: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nSaved to %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&model, "model", string(ncaa.VariantFinalV3), "Model variant: weighted, final, or finalv3")
	cmd.Flags().IntVar(&topN, "top", defaultTopN, "Number of teams to print")
	cmd.Flags().StringVar(&out, "out", "", "Directory to write the rankings CSV (skipped when empty)")
	return cmd
}

func rankGOATCmd() *cobra.Command {
	var (
		topN int
		out  string
	)
	cmd := &cobra.Command{
		Use:   "goat",
		Short: "Rank NBA players with the SWISH composite score",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := dataset.NewLoader(dataset.WithDir(dataDir))
			players, err := loader.LoadPlayers(cmd.Context())
			if err != nil {
				return fmt.Errorf("load players: %w", err)
			}
			rankings, err := goat.Rankings(cmd.Context(), players, nil)
			if err != nil {
				return err
			}
			report.WritePlayerTable(cmd.OutOrStdout(), rankings, topN)
			if out != "" {
				path, err := report.SavePlayerRankings(out, rankings)
				if err != nil {
					return fmt.Errorf("save rankings: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nSaved to %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&topN, "top", defaultTopN, "Number of players to print")
	cmd.Flags().StringVar(&out, "out", "", "Directory to write the rankings CSV (skipped when empty)")
	return cmd
}

// --------------------------------------------------------------------------
// predict command
// --------------------------------------------------------------------------

func predictCmd() *cobra.Command {
	var (
		model    string
		location string
		homePts  float64
	)
	cmd := &cobra.Command{
		Use:   "predict TEAM1 TEAM2",
		Short: "Predict the outcome of a matchup",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := predict.ParseLocation(location)
			if err != nil {
				return err
			}
			rankings, err := loadSeasonVariant(cmd.Context(), model)
			if err != nil {
				return err
			}
			predictor := predict.New(rankings, predict.WithHomeCourtAdvantage(homePts))
			p, err := predictor.Predict(args[0], args[1], loc)
			if err != nil {
				return err
			}
			report.WritePrediction(cmd.OutOrStdout(), p)
			return nil
		},
	}
	cmd.Flags().StringVar(&model, "model", string(ncaa.VariantFinalV3), "Model variant backing the prediction")
	cmd.Flags().StringVar(&location, "location", "", "Game location: neutral, home/team1_home, or away/team2_home")
	cmd.Flags().Float64Var(&homePts, "home-court", predict.DefaultHomeCourtAdvantage, "Home court advantage in points")
	return cmd
}

// --------------------------------------------------------------------------
// validate command
// --------------------------------------------------------------------------

func validateCmd() *cobra.Command {
	var model string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Sanity-check a model against the reference ranking",
		RunE: func(cmd *cobra.Command, args []string) error {
			rankings, err := loadSeasonVariant(cmd.Context(), model)
			if err != nil {
				return err
			}
			report.WriteValidation(cmd.OutOrStdout(), validate.Run(model, rankings))
			return nil
		},
	}
	cmd.Flags().StringVar(&model, "model", string(ncaa.VariantFinalV3), "Model variant to validate")
	return cmd
}

// --------------------------------------------------------------------------
// scrape command
// --------------------------------------------------------------------------

func scrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Fetch reference data from basketball-reference.com",
	}
	cmd.AddCommand(scrapeHOFCmd())
	return cmd
}

func scrapeHOFCmd() *cobra.Command {
	var baseURL string
	cmd := &cobra.Command{
		Use:   "hof",
		Short: "List Hall of Fame inductees in the Player category",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []scrape.Option{}
			if baseURL != "" {
				opts = append(opts, scrape.WithBaseURL(baseURL))
			}
			players, err := scrape.New(opts...).HallOfFamePlayers(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range players {
				fmt.Fprintf(cmd.OutOrStdout(), "%-30s %s\n", p.Name, p.PlayerID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d players\n", len(players))
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Override the scrape base URL (defaults to basketball-reference.com)")
	return cmd
}
