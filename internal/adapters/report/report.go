// Package report renders ranking output: fixed-width tables for the
// terminal and CSV artifacts for downstream tooling.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/swishlab/hooprank/internal/domain/goat"
	"github.com/swishlab/hooprank/internal/domain/ncaa"
	"github.com/swishlab/hooprank/internal/domain/predict"
	"github.com/swishlab/hooprank/internal/domain/validate"
)

const ruleWidth = 110

// changeSymbol renders a rank delta as movement against the reference.
func changeSymbol(change int) string {
	switch {
	case change > 0:
		return fmt.Sprintf("↑%d", change)
	case change < 0:
		return fmt.Sprintf("↓%d", -change)
	default:
		return "="
	}
}

func rule(w io.Writer, ch string) {
	fmt.Fprintln(w, strings.Repeat(ch, ruleWidth))
}

// WriteTeamTable renders the top n NCAA rankings as a fixed-width table.
func WriteTeamTable(w io.Writer, title string, rankings []ncaa.TeamRanking, n int) {
	rule(w, "=")
	fmt.Fprintln(w, strings.ToUpper(title))
	rule(w, "=")
	fmt.Fprintf(w, "%-6s%-20s%-8s%-8s%-7s%-7s%-9s%-6s%-8s\n",
		"Rank", "Team", "Conf", "Score", "Def", "Off", "TO Mgn", "KP", "Change")
	rule(w, "-")

	if n > len(rankings) {
		n = len(rankings)
	}
	for _, r := range rankings[:n] {
		fmt.Fprintf(w, "%-6d%-20s%-8s%-8.1f#%-6d#%-6d%-9.1f%-6d%-8s\n",
			r.Rank, r.Team, r.Conference, r.Score,
			r.AdjDERank, r.AdjOERank, r.TurnoverMargin,
			r.KenPomRank, changeSymbol(r.RankChange))
	}
}

// WritePlayerTable renders the top n GOAT rankings with the component
// breakdown.
func WritePlayerTable(w io.Writer, rankings []goat.PlayerRanking, n int) {
	rule(w, "=")
	fmt.Fprintf(w, "SWISH NBA GOAT RANKINGS - TOP %d\n", n)
	rule(w, "=")
	fmt.Fprintf(w, "%-6s%-25s%-13s%-8s%-8s%-8s%-8s%-8s%-8s%-8s\n",
		"Rank", "Player", "Era", "SWISH", "Peak", "Career", "Honors", "Champ", "Stats", "Long")
	rule(w, "-")

	if n > len(rankings) {
		n = len(rankings)
	}
	for _, r := range rankings[:n] {
		fmt.Fprintf(w, "%-6d%-25s%-13s%-8.1f%-8.1f%-8.1f%-8.1f%-8.1f%-8.1f%-8.1f\n",
			r.Rank, r.Name, r.Era.Display(), r.Score,
			r.Components[goat.FactorPeak],
			r.Components[goat.FactorCareer],
			r.Components[goat.FactorHonors],
			r.Components[goat.FactorChampionship],
			r.Components[goat.FactorStats],
			r.Components[goat.FactorLongevity])
	}
}

// WritePrediction renders a matchup forecast.
func WritePrediction(w io.Writer, p predict.Prediction) {
	rule(w, "=")
	fmt.Fprintf(w, "GAME PREDICTION: %s vs %s (%s)\n", p.Team1, p.Team2, p.Location)
	rule(w, "=")

	margin := p.Margin
	if margin < 0 {
		margin = -margin
	}
	fmt.Fprintf(w, "Winner: %s by %.1f\n", p.Winner, margin)
	fmt.Fprintf(w, "Projected Score: %s %.0f, %s %.0f\n",
		p.Team1, p.Team1Points, p.Team2, p.Team2Points)
	fmt.Fprintf(w, "Win Probability: %s %.1f%%, %s %.1f%%\n",
		p.Team1, p.Team1WinProb*100, p.Team2, (1-p.Team1WinProb)*100)

	if len(p.KeyFactors) > 0 {
		rule(w, "-")
		fmt.Fprintln(w, "KEY FACTORS:")
		for _, f := range p.KeyFactors {
			fmt.Fprintf(w, "  • %s\n", f)
		}
	}
}

// WriteValidation renders a model validation report.
func WriteValidation(w io.Writer, r validate.Report) {
	rule(w, "=")
	fmt.Fprintf(w, "MODEL VALIDATION: %s (%d teams)\n", r.Model, r.Teams)
	rule(w, "=")

	fmt.Fprintln(w, "Score Distribution:")
	fmt.Fprintf(w, "  Mean: %.1f  Std Dev: %.1f  Min: %.1f  Max: %.1f\n",
		r.Scores.Mean, r.Scores.StdDev, r.Scores.Min, r.Scores.Max)
	fmt.Fprintf(w, "  Top %d gaps: avg %.2f, max %.2f\n",
		r.Scores.TopGapSpan, r.Scores.AvgTopGap, r.Scores.MaxTopGap)

	fmt.Fprintf(w, "\nRank Correlation (Spearman): %.3f\n", r.SpearmanRankCor)
	fmt.Fprintf(w, "Average Rank Difference: %.1f positions\n", r.AvgRankDiff)

	if len(r.Factors) > 0 {
		fmt.Fprintln(w, "\nCorrelation with Final Score:")
		for _, f := range r.Factors {
			fmt.Fprintf(w, "  %-26s %.3f\n", f.Factor, f.Correlation)
		}
	}

	if len(r.Disagreements) > 0 {
		fmt.Fprintln(w, "\nBiggest Disagreements with Reference:")
		for _, d := range r.Disagreements {
			dir := "↓"
			if d.Higher {
				dir = "↑"
			}
			fmt.Fprintf(w, "  %-20s Ours: #%-4d Ref: #%-4d %s%d\n",
				d.Team, d.ModelRank, d.ReferenceRank, dir, d.Diff)
		}
	}
}
