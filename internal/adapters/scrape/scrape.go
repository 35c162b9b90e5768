// Package scrape pulls the Hall of Fame player list from Basketball
// Reference as the seed set for the GOAT data pipeline. Malformed rows are
// logged and skipped rather than failing the whole scrape.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/swishlab/hooprank/pkg/logger"
	"github.com/swishlab/hooprank/pkg/metrics"
)

const (
	defaultBaseURL = "https://www.basketball-reference.com"
	defaultTimeout = 30 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// HOFPlayer is one inducted player scraped from the Hall of Fame table.
type HOFPlayer struct {
	Name     string `json:"name"`
	PlayerID string `json:"player_id"`
	URL      string `json:"url"`
}

// Scraper fetches and parses Basketball Reference pages.
type Scraper struct {
	baseURL string
	client  *http.Client
	log     logger.Logger
}

// Option applies a configuration option to the Scraper.
type Option func(*Scraper)

// WithBaseURL overrides the site root, mainly for tests.
func WithBaseURL(u string) Option {
	return func(s *Scraper) {
		if u != "" {
			s.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) {
		if c != nil {
			s.client = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Scraper) {
		if l != nil {
			s.log = l
		}
	}
}

// New builds a Scraper.
func New(opts ...Option) *Scraper {
	s := &Scraper{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		log:     logger.Named("scrape"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HallOfFamePlayers fetches the HOF table and returns inducted players,
// skipping coaches, referees and contributors.
func (s *Scraper) HallOfFamePlayers(ctx context.Context) ([]HOFPlayer, error) {
	doc, err := s.fetch(ctx, "/awards/hof.html")
	if err != nil {
		return nil, err
	}

	var players []HOFPlayer
	doc.Find("table#hof tbody tr").Each(func(i int, row *goquery.Selection) {
		category := row.Find("td[data-stat=category]").Text()
		if !strings.Contains(category, "Player") {
			return
		}

		cell := row.Find("th[data-stat=player] a")
		name := strings.TrimSpace(cell.Text())
		href, ok := cell.Attr("href")
		if name == "" || !ok {
			s.log.Warn(ctx, "skipping malformed hall of fame row",
				logger.Int("row", i),
				logger.String("category", strings.TrimSpace(category)),
			)
			return
		}

		players = append(players, HOFPlayer{
			Name:     name,
			PlayerID: playerID(href),
			URL:      s.baseURL + href,
		})
	})

	s.log.Info(ctx, "scraped hall of fame players", logger.Int("count", len(players)))
	return players, nil
}

func (s *Scraper) fetch(ctx context.Context, path string) (*goquery.Document, error) {
	url := s.baseURL + path
	metrics.RecordScrapeRequest()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		metrics.RecordScrapeError()
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.RecordScrapeError()
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordScrapeError()
		return nil, fmt.Errorf("%w: %s returned %d", ErrBadStatus, url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		metrics.RecordScrapeError()
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}

// playerID extracts the reference ID from a profile path like
// /players/j/jordami01.html.
func playerID(href string) string {
	parts := strings.Split(href, "/")
	last := parts[len(parts)-1]
	return strings.TrimSuffix(last, ".html")
}
