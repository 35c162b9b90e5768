package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/swishlab/hooprank/internal/domain/goat"
	"github.com/swishlab/hooprank/internal/domain/ncaa"
)

// teamCSVRow is the flat CSV shape of a ranked team.
type teamCSVRow struct {
	FinalRank       int     `csv:"Final_Rank"`
	Team            string  `csv:"Team"`
	Conference      string  `csv:"Conference"`
	FinalScore      float64 `csv:"Final_Score"`
	DefenseScore    float64 `csv:"Defense_Score"`
	OffenseScore    float64 `csv:"Offense_Score"`
	RecentScore     float64 `csv:"Recent_Score"`
	ExperienceScore float64 `csv:"Experience_Score"`
	TurnoverMargin  float64 `csv:"Turnover_Margin"`
	KenPomRank      int     `csv:"KenPom_Rank"`
	RankChange      int     `csv:"Rank_Change"`
	AdjOE           float64 `csv:"AdjOE"`
	AdjDE           float64 `csv:"AdjDE"`
}

// playerCSVRow is the flat CSV shape of a ranked player.
type playerCSVRow struct {
	GOATRank      int     `csv:"GOAT_Rank"`
	Name          string  `csv:"name"`
	Era           string  `csv:"era"`
	SWISHScore    float64 `csv:"SWISH_Score"`
	PeakScore     float64 `csv:"peak_dominance_score"`
	CareerScore   float64 `csv:"career_value_score"`
	ChampScore    float64 `csv:"championship_impact_score"`
	HonorsScore   float64 `csv:"individual_honors_score"`
	StatsScore    float64 `csv:"statistical_excellence_score"`
	LongScore     float64 `csv:"longevity_score"`
	CareerPPG     float64 `csv:"career_ppg"`
	CareerRPG     float64 `csv:"career_rpg"`
	CareerAPG     float64 `csv:"career_apg"`
	CareerPER     float64 `csv:"career_per"`
	CareerWS      float64 `csv:"career_ws"`
	Championships int     `csv:"championships"`
	FinalsMVP     int     `csv:"finals_mvp"`
	MVP           int     `csv:"mvp"`
	AllStar       int     `csv:"all_star"`
}

// SaveTeamRankings writes a ranked season to <dir>/<variant>_rankings_latest.csv
// and returns the written path.
func SaveTeamRankings(dir string, variant ncaa.Variant, rankings []ncaa.TeamRanking) (string, error) {
	rows := make([]teamCSVRow, len(rankings))
	for i, r := range rankings {
		rows[i] = teamCSVRow{
			FinalRank:       r.Rank,
			Team:            r.Team,
			Conference:      r.Conference,
			FinalScore:      r.Score,
			DefenseScore:    r.Components[ncaa.FactorDefense],
			OffenseScore:    r.Components[ncaa.FactorOffense],
			RecentScore:     r.Components[ncaa.FactorRecent],
			ExperienceScore: r.Components[ncaa.FactorExperience],
			TurnoverMargin:  r.TurnoverMargin,
			KenPomRank:      r.KenPomRank,
			RankChange:      r.RankChange,
			AdjOE:           r.AdjOE,
			AdjDE:           r.AdjDE,
		}
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_rankings_latest.csv", variant))
	return path, writeCSV(path, rows)
}

// SavePlayerRankings writes the GOAT board to
// <dir>/nba_goat_rankings_swish.csv and returns the written path.
func SavePlayerRankings(dir string, rankings []goat.PlayerRanking) (string, error) {
	rows := make([]playerCSVRow, len(rankings))
	for i, r := range rankings {
		rows[i] = playerCSVRow{
			GOATRank:      r.Rank,
			Name:          r.Name,
			Era:           string(r.Era),
			SWISHScore:    r.Score,
			PeakScore:     r.Components[goat.FactorPeak],
			CareerScore:   r.Components[goat.FactorCareer],
			ChampScore:    r.Components[goat.FactorChampionship],
			HonorsScore:   r.Components[goat.FactorHonors],
			StatsScore:    r.Components[goat.FactorStats],
			LongScore:     r.Components[goat.FactorLongevity],
			CareerPPG:     r.CareerPPG,
			CareerRPG:     r.CareerRPG,
			CareerAPG:     r.CareerAPG,
			CareerPER:     r.CareerPER,
			CareerWS:      r.CareerWS,
			Championships: r.Championships,
			FinalsMVP:     r.FinalsMVP,
			MVP:           r.MVP,
			AllStar:       r.AllStar,
		}
	}
	path := filepath.Join(dir, "nba_goat_rankings_swish.csv")
	return path, writeCSV(path, rows)
}

func writeCSV[T any](path string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
