package scrape_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/swishlab/hooprank/internal/adapters/scrape"
	"github.com/swishlab/hooprank/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

const hofHTML = `<!DOCTYPE html>
<html><body>
<table id="hof">
<tbody>
<tr>
  <th data-stat="player"><a href="/players/j/jordami01.html">Michael Jordan</a></th>
  <td data-stat="category">Player</td>
</tr>
<tr>
  <th data-stat="player"><a href="/players/r/russebi01.html">Bill Russell</a></th>
  <td data-stat="category">Player</td>
</tr>
<tr>
  <th data-stat="player"><a href="/coaches/popovgr99.html">Gregg Popovich</a></th>
  <td data-stat="category">Coach</td>
</tr>
<tr>
  <th data-stat="player"></th>
  <td data-stat="category">Player</td>
</tr>
</tbody>
</table>
</body></html>`

func TestHallOfFamePlayers(t *testing.T) {
	Convey("Given a Hall of Fame page", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/awards/hof.html" {
				http.NotFound(w, r)
				return
			}
			w.Write([]byte(hofHTML))
		}))
		defer srv.Close()

		s := scrape.New(scrape.WithBaseURL(srv.URL))
		players, err := s.HallOfFamePlayers(context.Background())
		So(err, ShouldBeNil)

		Convey("Only player inductees are returned", func() {
			So(players, ShouldHaveLength, 2)
			So(players[0].Name, ShouldEqual, "Michael Jordan")
			So(players[1].Name, ShouldEqual, "Bill Russell")
		})

		Convey("The reference ID is derived from the profile path", func() {
			So(players[0].PlayerID, ShouldEqual, "jordami01")
			So(players[0].URL, ShouldEqual, srv.URL+"/players/j/jordami01.html")
		})
	})

	Convey("A non-200 upstream response is an error", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		s := scrape.New(scrape.WithBaseURL(srv.URL))
		_, err := s.HallOfFamePlayers(context.Background())
		So(err, ShouldWrap, scrape.ErrBadStatus)
	})

	Convey("A cancelled context aborts the fetch", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(hofHTML))
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s := scrape.New(scrape.WithBaseURL(srv.URL))
		_, err := s.HallOfFamePlayers(ctx)
		So(err, ShouldNotBeNil)
	})
}
