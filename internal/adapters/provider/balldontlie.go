// Package provider implements the client for the upstream statistics API
// (balldontlie). The sync layer is its only consumer; the recommendation
// core never talks to it directly.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/hoopsight/hoopsight/internal/domain/model"
	"github.com/hoopsight/hoopsight/pkg/logger"
	"github.com/hoopsight/hoopsight/pkg/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	maxRetries     = 3
	retryBase      = 2 * time.Second

	topTierSize     = 5
	starPlayerCount = 30

	dateLayout = "2006-01-02"
)

// Client talks to the balldontlie API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retryBase  time.Duration
	logger     logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client. Tests point it at a fake server.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.httpClient.Timeout = d
		}
	}
}

// WithRetryBase sets the initial retry backoff. Tests shrink it.
func WithRetryBase(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.retryBase = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// New creates a Client. The API key is mandatory; the upstream rejects
// anonymous requests.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		retryBase:  retryBase,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get()
	}
	return c, nil
}

// Wire shapes, trimmed to the fields this system reads.

type gamesResponse struct {
	Data []struct {
		ID       int    `json:"id"`
		Status   string `json:"status"`
		HomeTeam struct {
			FullName     string `json:"full_name"`
			Abbreviation string `json:"abbreviation"`
		} `json:"home_team"`
		VisitorTeam struct {
			FullName     string `json:"full_name"`
			Abbreviation string `json:"abbreviation"`
		} `json:"visitor_team"`
		HomeTeamScore    int `json:"home_team_score"`
		VisitorTeamScore int `json:"visitor_team_score"`
	} `json:"data"`
}

type standingsResponse struct {
	Data []struct {
		Team struct {
			Abbreviation string `json:"abbreviation"`
		} `json:"team"`
		Wins int `json:"wins"`
	} `json:"data"`
}

type leadersResponse struct {
	Data []struct {
		Player struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		} `json:"player"`
	} `json:"data"`
}

// GamesByDate returns the finished games for one date. In-progress and
// scheduled games are dropped here, so the store only ever holds games
// eligible for scoring.
func (c *Client) GamesByDate(ctx context.Context, date time.Time) ([]model.Game, error) {
	day := date.Format(dateLayout)
	var resp gamesResponse
	if err := c.get(ctx, "games", url.Values{
		"start_date": {day},
		"end_date":   {day},
	}, &resp); err != nil {
		return nil, fmt.Errorf("games for %s: %w", day, err)
	}

	games := make([]model.Game, 0, len(resp.Data))
	for _, g := range resp.Data {
		if g.Status != "Final" {
			continue
		}
		games = append(games, model.Game{
			ID:   strconv.Itoa(g.ID),
			Date: date,
			HomeTeam: model.Team{
				Code:  g.HomeTeam.Abbreviation,
				Name:  g.HomeTeam.FullName,
				Score: g.HomeTeamScore,
			},
			AwayTeam: model.Team{
				Code:  g.VisitorTeam.Abbreviation,
				Name:  g.VisitorTeam.FullName,
				Score: g.VisitorTeamScore,
			},
			// No play-by-play upstream, so lead changes stay zero.
		})
	}
	return games, nil
}

// TopTeams returns the top-tier team codes for a season, best record first.
func (c *Client) TopTeams(ctx context.Context, season int) ([]string, error) {
	var resp standingsResponse
	if err := c.get(ctx, "standings", url.Values{
		"season": {strconv.Itoa(season)},
	}, &resp); err != nil {
		return nil, fmt.Errorf("standings for %d: %w", season, err)
	}

	sort.SliceStable(resp.Data, func(i, j int) bool {
		return resp.Data[i].Wins > resp.Data[j].Wins
	})

	limit := topTierSize
	if limit > len(resp.Data) {
		limit = len(resp.Data)
	}
	teams := make([]string, 0, limit)
	for _, row := range resp.Data[:limit] {
		teams = append(teams, row.Team.Abbreviation)
	}
	return teams, nil
}

// StarPlayers returns the names of the season's top scorers.
func (c *Client) StarPlayers(ctx context.Context, season int) ([]string, error) {
	var resp leadersResponse
	if err := c.get(ctx, "leaders", url.Values{
		"season":    {strconv.Itoa(season)},
		"stat_type": {"pts"},
	}, &resp); err != nil {
		return nil, fmt.Errorf("leaders for %d: %w", season, err)
	}

	limit := starPlayerCount
	if limit > len(resp.Data) {
		limit = len(resp.Data)
	}
	players := make([]string, 0, limit)
	for _, row := range resp.Data[:limit] {
		name := row.Player.FirstName + " " + row.Player.LastName
		if name != " " {
			players = append(players, name)
		}
	}
	return players, nil
}

// CurrentSeason returns the season a date belongs to. Seasons start in
// October; before that the previous year's season is still current.
func CurrentSeason(now time.Time) int {
	if now.Month() >= time.October {
		return now.Year()
	}
	return now.Year() - 1
}

// get performs one authorized GET with retries on rate limiting and
// transient upstream failures (429/503/504).
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	reqURL := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(c.retryBase))
	attempt := 0

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			metrics.RecordProviderRetry()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Authorization", c.apiKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			metrics.RecordProviderRequest(endpoint, "network_error")
			return retry.RetryableError(fmt.Errorf("%w: %v", ErrProvider, err))
		}
		defer resp.Body.Close()

		metrics.RecordProviderRequest(endpoint, strconv.Itoa(resp.StatusCode))

		switch resp.StatusCode {
		case http.StatusOK:
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return fmt.Errorf("%w: decode %s: %v", ErrProvider, endpoint, err)
			}
			return nil
		case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			_, _ = io.Copy(io.Discard, resp.Body)
			c.logger.Warn(ctx, "transient upstream failure, will retry",
				logger.String("endpoint", endpoint),
				logger.Int("status", resp.StatusCode),
				logger.Int("attempt", attempt),
			)
			return retry.RetryableError(fmt.Errorf("%w: %s returned %d", ErrProvider, endpoint, resp.StatusCode))
		default:
			_, _ = io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("%w: %s returned %d", ErrProvider, endpoint, resp.StatusCode)
		}
	})
	if err != nil {
		return err
	}
	return nil
}
