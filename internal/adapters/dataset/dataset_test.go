package dataset_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/swishlab/hooprank/internal/adapters/dataset"
	"github.com/swishlab/hooprank/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

const ratingsCSV = `Team,Conference,AdjEM,AdjEM_Rank,AdjOE,AdjOE.Rank,AdjDE,AdjDE.Rank
Houston,B12,36.5,1,124.1,3,87.6,1
Auburn,SEC,35.2,2,127.5,1,92.3,8
Duke,ACC,34.8,3,126.8,2,92.0,6
Grambling,SWAC,-12.4,300,95.1,310,107.5,250
`

const personnelCSV = `Team,Experience,AvgHeight,Bench
Houston,2.9,77.8,28.1
Auburn,3.1,78.0,30.5
Duke,1.4,79.2,25.0
Grambling,2.2,76.5,35.9
`

const tempoCSV = `Team,Tempo-Adj,Tempo-Adj.Rank,Tempo-Raw,Avg-Poss-Length
Houston,61.1,350,60.2,18.9
Auburn,70.5,40,71.0,16.5
Duke,67.2,150,66.9,17.3
Grambling,72.8,10,73.1,15.8
`

const fourFactorsCSV = `Team,Off-TO%,Def-TO%,Off-eFG%,Def-eFG%
Houston,14.8,22.0,54.1,44.3
Auburn,15.2,18.9,57.0,47.5
Duke,14.1,17.2,58.2,46.1
Grambling,21.5,17.0,47.0,52.8
`

const playerStatsCSV = `Player,Team,Rank
Johni Broome,Auburn,2
Cooper Flagg,Duke,1
Kon Knueppel,Duke,29
`

const goatCSV = `name,start_year,seasons_played,career_games,career_ppg,career_rpg,career_apg,career_per,career_ws,career_vorp,peak_ppg,championships,finals_mvp,mvp,all_star
Michael Jordan,1984,15,1072,30.1,6.2,5.3,27.9,214,104,37.1,6,6,5,14
Bill Russell,1957,13,963,15.1,22.5,4.3,18.9,163.5,0,18.9,11,0,5,12
`

func writeSnapshot(dir, name, content string) {
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		panic(err)
	}
}

func TestLoadSeason(t *testing.T) {
	Convey("Given a snapshot directory with all tables", t, func() {
		dir := t.TempDir()
		writeSnapshot(dir, dataset.RatingsFile, ratingsCSV)
		writeSnapshot(dir, dataset.PersonnelFile, personnelCSV)
		writeSnapshot(dir, dataset.TempoFile, tempoCSV)
		writeSnapshot(dir, dataset.FourFactorsFile, fourFactorsCSV)
		writeSnapshot(dir, dataset.PlayerStatsFile, playerStatsCSV)

		loader := dataset.NewLoader(dataset.WithDir(dir))

		Convey("When loading the season", func() {
			season, err := loader.LoadSeason(context.Background())
			So(err, ShouldBeNil)

			Convey("Then every rated team joins across all tables", func() {
				So(season.Teams, ShouldHaveLength, 4)
				So(season.Teams[0].Name, ShouldEqual, "Houston")
				So(season.Teams[0].AdjDE, ShouldEqual, 87.6)
				So(season.Teams[0].Experience, ShouldEqual, 2.9)
				So(season.Teams[0].AdjTempoRank, ShouldEqual, 350)
			})

			Convey("And turnover margin is derived from the four factors", func() {
				So(season.Teams[0].TurnoverMargin, ShouldAlmostEqual, 22.0-14.8, 1e-9)
				So(season.Teams[3].TurnoverMargin, ShouldAlmostEqual, 17.0-21.5, 1e-9)
			})

			Convey("And star counts come from the player table", func() {
				So(season.Teams[1].StarCount, ShouldEqual, 1)
				So(season.Teams[2].StarCount, ShouldEqual, 2)
				So(season.Teams[2].StarPlayers, ShouldContain, "Cooper Flagg")
				So(season.Teams[0].StarCount, ShouldEqual, 0)
			})
		})

		Convey("When a team is absent from an optional joined table", func() {
			writeSnapshot(dir, dataset.PersonnelFile, `Team,Experience,AvgHeight,Bench
Houston,2.9,77.8,28.1
Auburn,3.1,78.0,30.5
`)
			season, err := loader.LoadSeason(context.Background())
			So(err, ShouldBeNil)

			Convey("Then the inner join drops it", func() {
				So(season.Teams, ShouldHaveLength, 2)
			})
		})
	})

	Convey("Given a snapshot directory missing optional tables", t, func() {
		dir := t.TempDir()
		writeSnapshot(dir, dataset.RatingsFile, ratingsCSV)

		loader := dataset.NewLoader(dataset.WithDir(dir))
		season, err := loader.LoadSeason(context.Background())

		Convey("Then loading succeeds with neutral columns", func() {
			So(err, ShouldBeNil)
			So(season.Teams, ShouldHaveLength, 4)
			So(season.Teams[0].Experience, ShouldEqual, 0)
			So(season.Teams[0].StarCount, ShouldEqual, 0)
		})
	})

	Convey("Given a directory without the required ratings table", t, func() {
		loader := dataset.NewLoader(dataset.WithDir(t.TempDir()))
		_, err := loader.LoadSeason(context.Background())

		Convey("Then loading fails with ErrMissingTable", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "required table missing")
		})
	})

	Convey("Given an empty ratings table", t, func() {
		dir := t.TempDir()
		writeSnapshot(dir, dataset.RatingsFile, "Team,Conference,AdjEM,AdjEM_Rank,AdjOE,AdjOE.Rank,AdjDE,AdjDE.Rank\n")

		loader := dataset.NewLoader(dataset.WithDir(dir))
		_, err := loader.LoadSeason(context.Background())

		Convey("Then loading fails with ErrEmptyTable", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "no rows")
		})
	})
}

func TestLoadPlayers(t *testing.T) {
	Convey("Given a GOAT player snapshot", t, func() {
		dir := t.TempDir()
		writeSnapshot(dir, dataset.GoatPlayersFile, goatCSV)

		loader := dataset.NewLoader(dataset.WithDir(dir))
		players, err := loader.LoadPlayers(context.Background())

		Convey("Then all players load with their stats", func() {
			So(err, ShouldBeNil)
			So(players, ShouldHaveLength, 2)
			So(players[0].Name, ShouldEqual, "Michael Jordan")
			So(players[0].Championships, ShouldEqual, 6)
			So(players[1].StartYear, ShouldEqual, 1957)
		})
	})

	Convey("Given a missing GOAT snapshot", t, func() {
		loader := dataset.NewLoader(dataset.WithDir(t.TempDir()))
		_, err := loader.LoadPlayers(context.Background())
		So(err, ShouldNotBeNil)
	})
}
