package goat

import (
	"strings"

	"github.com/swishlab/hooprank/internal/domain/model"
)

// Era buckets NBA history for statistical normalization. Raw averages moved
// enough between eras that nominal stats are not comparable without it.
type Era string

const (
	EraPreMerger   Era = "pre_merger"
	EraEarlyModern Era = "early_modern"
	EraGoldenAge   Era = "golden_age"
	EraPostJordan  Era = "post_jordan"
	EraModern      Era = "modern"
)

// Display returns the era name formatted for reports.
func (e Era) Display() string {
	words := strings.Split(string(e), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// eraContext carries the league-average numbers used to normalize a
// player's raw stats against their own era.
type eraContext struct {
	startYear int
	endYear   int
	avgPPG    float64
	avgRPG    float64
	avgAPG    float64
	avgFGPct  float64
	avgFTPct  float64
	pace      float64
	avgTSPct  float64
}

var eraContexts = map[Era]eraContext{
	EraPreMerger: {
		startYear: 1946, endYear: 1975,
		avgPPG: 25.0, avgRPG: 12.0, avgAPG: 4.5,
		avgFGPct: 0.440, avgFTPct: 0.720, pace: 115, avgTSPct: 0.480,
	},
	EraEarlyModern: {
		startYear: 1976, endYear: 1984,
		avgPPG: 22.0, avgRPG: 10.0, avgAPG: 5.0,
		avgFGPct: 0.470, avgFTPct: 0.750, pace: 105, avgTSPct: 0.520,
	},
	EraGoldenAge: {
		startYear: 1985, endYear: 1999,
		avgPPG: 21.0, avgRPG: 9.0, avgAPG: 5.0,
		avgFGPct: 0.470, avgFTPct: 0.760, pace: 100, avgTSPct: 0.530,
	},
	EraPostJordan: {
		startYear: 2000, endYear: 2009,
		avgPPG: 19.0, avgRPG: 8.5, avgAPG: 5.0,
		avgFGPct: 0.450, avgFTPct: 0.770, pace: 90, avgTSPct: 0.520,
	},
	EraModern: {
		startYear: 2010, endYear: 2100,
		avgPPG: 20.0, avgRPG: 8.0, avgAPG: 5.5,
		avgFGPct: 0.460, avgFTPct: 0.780, pace: 95, avgTSPct: 0.550,
	},
}

// Name fallbacks for rows missing a start year. A heuristic, not a
// contract; start_year always wins when present.
var eraFallbacks = map[Era][]string{
	EraPreMerger:   {"Bill Russell", "Wilt Chamberlain", "Jerry West", "Oscar Robertson", "Elgin Baylor"},
	EraEarlyModern: {"Magic Johnson", "Larry Bird", "Julius Erving", "Moses Malone"},
	EraGoldenAge:   {"Michael Jordan", "Hakeem Olajuwon", "Karl Malone", "David Robinson"},
	EraPostJordan:  {"Kobe Bryant", "Tim Duncan", "Shaquille O'Neal", "Allen Iverson"},
}

// EraFor assigns a player's primary era from their start year, falling back
// to the known-player name lists when the year is missing.
func EraFor(p model.Player) Era {
	if p.StartYear > 0 {
		for era, ctx := range eraContexts {
			if p.StartYear >= ctx.startYear && p.StartYear <= ctx.endYear {
				return era
			}
		}
		return EraModern
	}
	for era, names := range eraFallbacks {
		for _, n := range names {
			if n == p.Name {
				return era
			}
		}
	}
	return EraModern
}
