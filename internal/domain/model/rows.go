// Package model contains domain row types bound to the CSV snapshots.
package model

// TeamRating is one row of the efficiency ratings table
// (kenpom_rankings_latest.csv). Column names must match the snapshot exactly.
type TeamRating struct {
	Team       string  `csv:"Team"`
	Conference string  `csv:"Conference"`
	AdjEM      float64 `csv:"AdjEM"`
	AdjEMRank  int     `csv:"AdjEM_Rank"`
	AdjOE      float64 `csv:"AdjOE"`
	AdjOERank  int     `csv:"AdjOE.Rank"`
	AdjDE      float64 `csv:"AdjDE"`
	AdjDERank  int     `csv:"AdjDE.Rank"`
}

// TeamPersonnel is one row of the height/experience table.
type TeamPersonnel struct {
	Team       string  `csv:"Team"`
	Experience float64 `csv:"Experience"`
	AvgHeight  float64 `csv:"AvgHeight"`
	Bench      float64 `csv:"Bench"`
}

// TeamTempo is one row of the tempo stats table.
type TeamTempo struct {
	Team          string  `csv:"Team"`
	AdjTempo      float64 `csv:"Tempo-Adj"`
	AdjTempoRank  int     `csv:"Tempo-Adj.Rank"`
	RawTempo      float64 `csv:"Tempo-Raw"`
	AvgPossLength float64 `csv:"Avg-Poss-Length"`
}

// TeamFourFactors is one row of the four factors table. Turnover
// percentages feed the turnover margin factor.
type TeamFourFactors struct {
	Team     string  `csv:"Team"`
	OffTOPct float64 `csv:"Off-TO%"`
	DefTOPct float64 `csv:"Def-TO%"`
	OffEFG   float64 `csv:"Off-eFG%"`
	DefEFG   float64 `csv:"Def-eFG%"`
}

// PlayerStat is one row of the top-100 player stats table. Only membership
// matters: a team's star count is its number of rows here.
type PlayerStat struct {
	Player string `csv:"Player"`
	Team   string `csv:"Team"`
	Rank   int    `csv:"Rank"`
}

// Team is the joined per-team record the NCAA models score.
type Team struct {
	Name           string
	Conference     string
	AdjEM          float64
	AdjEMRank      int
	AdjOE          float64
	AdjOERank      int
	AdjDE          float64
	AdjDERank      int
	Experience     float64
	AvgHeight      float64
	AdjTempo       float64
	AdjTempoRank   int
	OffTOPct       float64
	DefTOPct       float64
	TurnoverMargin float64
	StarCount      int
	StarPlayers    []string
}

// Player is one row of the NBA GOAT player table
// (nba_goat_player_data.csv).
type Player struct {
	Name             string  `csv:"name"`
	StartYear        int     `csv:"start_year"`
	SeasonsPlayed    float64 `csv:"seasons_played"`
	CareerGames      float64 `csv:"career_games"`
	CareerPPG        float64 `csv:"career_ppg"`
	CareerRPG        float64 `csv:"career_rpg"`
	CareerAPG        float64 `csv:"career_apg"`
	CareerSPG        float64 `csv:"career_spg"`
	CareerBPG        float64 `csv:"career_bpg"`
	CareerPER        float64 `csv:"career_per"`
	CareerWS         float64 `csv:"career_ws"`
	CareerVORP       float64 `csv:"career_vorp"`
	CareerFGPct      float64 `csv:"career_fg_pct"`
	CareerFTPct      float64 `csv:"career_ft_pct"`
	CareerTSPct      float64 `csv:"career_ts_pct"`
	CareerTOVPct     float64 `csv:"career_tov_pct"`
	PeakPPG          float64 `csv:"peak_ppg"`
	Seasons30PPG     float64 `csv:"seasons_30ppg"`
	Seasons25PPG     float64 `csv:"seasons_25ppg"`
	PlayoffPPG       float64 `csv:"playoff_pts_per_g"`
	PlayoffGames     float64 `csv:"playoff_g"`
	Championships    float64 `csv:"championships"`
	FinalsMVP        float64 `csv:"finals_mvp"`
	MVP              float64 `csv:"mvp"`
	AllStar          float64 `csv:"all_star"`
	AllNBAFirst      float64 `csv:"all_nba_first"`
	AllNBASecond     float64 `csv:"all_nba_second"`
	AllNBAThird      float64 `csv:"all_nba_third"`
	DPOY             float64 `csv:"dpoy"`
	AllDefenseFirst  float64 `csv:"all_defensive_first"`
	AllDefenseSecond float64 `csv:"all_defensive_second"`
	ScoringTitles    float64 `csv:"scoring_titles"`
}
