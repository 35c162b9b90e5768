package goat

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/swishlab/hooprank/internal/domain/model"
)

func jordan() model.Player {
	return model.Player{
		Name: "Michael Jordan", StartYear: 1984,
		SeasonsPlayed: 15, CareerGames: 1072,
		CareerPPG: 30.1, CareerRPG: 6.2, CareerAPG: 5.3,
		CareerSPG: 2.3, CareerBPG: 0.8,
		CareerPER: 27.9, CareerWS: 214.0, CareerVORP: 116.1,
		CareerFGPct: 0.497, CareerFTPct: 0.835, CareerTSPct: 0.569,
		PeakPPG: 37.1, Seasons30PPG: 8, Seasons25PPG: 11,
		PlayoffPPG: 33.4, PlayoffGames: 179,
		Championships: 6, FinalsMVP: 6, MVP: 5, AllStar: 14,
		AllNBAFirst: 10, AllNBASecond: 1,
		DPOY: 1, AllDefenseFirst: 9,
		ScoringTitles: 10,
	}
}

func russell() model.Player {
	return model.Player{
		Name:          "Bill Russell",
		SeasonsPlayed: 13, CareerGames: 963,
		CareerPPG: 15.1, CareerRPG: 22.5, CareerAPG: 4.3,
		CareerPER: 18.9, CareerWS: 163.5, CareerVORP: 0,
		CareerFGPct: 0.440, CareerFTPct: 0.561,
		PeakPPG: 18.9,
		PlayoffPPG: 16.2, PlayoffGames: 165,
		Championships: 11, FinalsMVP: 0, MVP: 5, AllStar: 12,
		AllNBAFirst: 3, AllNBASecond: 8,
	}
}

func journeyman() model.Player {
	return model.Player{
		Name: "Role Player", StartYear: 2012,
		SeasonsPlayed: 9, CareerGames: 540,
		CareerPPG: 8.4, CareerRPG: 3.1, CareerAPG: 1.9,
		CareerSPG: 0.7, CareerBPG: 0.3,
		CareerPER: 12.5, CareerWS: 21.0, CareerVORP: 2.1,
		CareerFGPct: 0.441, CareerFTPct: 0.782, CareerTSPct: 0.540,
		PeakPPG: 12.3,
		PlayoffPPG: 6.1, PlayoffGames: 34,
	}
}

func TestEraFor(t *testing.T) {
	Convey("Given players with and without a start year", t, func() {
		Convey("Start year buckets the era directly", func() {
			So(EraFor(model.Player{StartYear: 1960}), ShouldEqual, EraPreMerger)
			So(EraFor(model.Player{StartYear: 1979}), ShouldEqual, EraEarlyModern)
			So(EraFor(model.Player{StartYear: 1996}), ShouldEqual, EraGoldenAge)
			So(EraFor(model.Player{StartYear: 2003}), ShouldEqual, EraPostJordan)
			So(EraFor(model.Player{StartYear: 2018}), ShouldEqual, EraModern)
		})

		Convey("A missing start year falls back to the known-player lists", func() {
			So(EraFor(model.Player{Name: "Bill Russell"}), ShouldEqual, EraPreMerger)
			So(EraFor(model.Player{Name: "Magic Johnson"}), ShouldEqual, EraEarlyModern)
			So(EraFor(model.Player{Name: "Kobe Bryant"}), ShouldEqual, EraPostJordan)
		})

		Convey("Unknown players with no start year default to modern", func() {
			So(EraFor(model.Player{Name: "Somebody New"}), ShouldEqual, EraModern)
		})

		Convey("Era display names are human readable", func() {
			So(EraPreMerger.Display(), ShouldEqual, "Pre Merger")
			So(EraGoldenAge.Display(), ShouldEqual, "Golden Age")
		})
	})
}

func TestRankings(t *testing.T) {
	Convey("Given a field of players", t, func() {
		players := []model.Player{journeyman(), jordan(), russell()}
		ranked, err := Rankings(context.Background(), players, nil)
		So(err, ShouldBeNil)
		So(ranked, ShouldHaveLength, 3)

		Convey("The all-time greats rank above the role player", func() {
			So(ranked[0].Name, ShouldEqual, "Michael Jordan")
			So(ranked[2].Name, ShouldEqual, "Role Player")
		})

		Convey("Ranks are dense starting at 1 and deltas are zero", func() {
			So(ranked[0].Rank, ShouldEqual, 1)
			So(ranked[1].Rank, ShouldEqual, 2)
			So(ranked[2].Rank, ShouldEqual, 3)
		})

		Convey("Every component is present and clamped", func() {
			names := []string{
				FactorPeak, FactorCareer, FactorHonors,
				FactorChampionship, FactorStats, FactorLongevity,
			}
			for _, r := range ranked {
				for _, n := range names {
					c, ok := r.Components[n]
					So(ok, ShouldBeTrue)
					So(c, ShouldBeBetweenOrEqual, 0, 100)
				}
			}
		})

		Convey("Eras are carried onto the output rows", func() {
			mj, ok := Find(ranked, "jordan")
			So(ok, ShouldBeTrue)
			So(mj.Era, ShouldEqual, EraEarlyModern)
		})
	})
}

func TestComponents(t *testing.T) {
	Convey("Given the component calculators", t, func() {
		players := []model.Player{jordan(), russell(), journeyman()}
		c := newCalculator(players)

		Convey("Peak dominance saturates for a historic peak", func() {
			So(c.peakDominance(0), ShouldBeGreaterThan, 85)
			So(c.peakDominance(2), ShouldBeLessThan, 50)
		})

		Convey("Championship impact rewards rings even without Finals MVPs", func() {
			So(c.championshipImpact(1), ShouldBeGreaterThan, c.championshipImpact(2))
		})

		Convey("Pre-merger players get a neutral steals-and-blocks score", func() {
			era := eraContexts[EraPreMerger]
			So(c.defensiveExcellence(1, players[1], era), ShouldBeGreaterThan, 0)
		})

		Convey("Missing TS% falls back to an estimate from shooting splits", func() {
			era := eraContexts[EraPreMerger]
			So(c.efficiencyMetrics(players[1], era), ShouldBeGreaterThan, 0)
		})

		Convey("Longevity blends seasons, games and sustained stardom", func() {
			So(c.longevity(0), ShouldBeGreaterThan, c.longevity(2))
		})

		Convey("The model weights sum to one", func() {
			So(Build(players, nil).Weights().Sum(), ShouldAlmostEqual, 1.0, 1e-9)
		})
	})
}
