package footballapi

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/turugol/quiniela/internal/platform/logging"
	"github.com/turugol/quiniela/internal/platform/resilience"
	"github.com/turugol/quiniela/internal/usecase"
)

const (
	defaultBaseURL  = "https://v3.football.api-sports.io"
	apiKeyHeader    = "x-apisports-key"
	maxResponseSize = 6 << 20
)

var apiKeyHeaderRegex = regexp.MustCompile(`(?i)x-apisports-key:\s*\S+`)
var errFootballAPITransient = crerr.New("football api transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the API-Football v3 feed. Identical in-flight
// requests are collapsed; transient provider failures are retried and
// trip a circuit breaker.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type envelope struct {
	Errors   any             `json:"errors"`
	Results  int             `json:"results"`
	Response json.RawMessage `json:"response"`
}

type leagueItem struct {
	League struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Logo string `json:"logo"`
	} `json:"league"`
	Country struct {
		Name string `json:"name"`
	} `json:"country"`
}

type fixtureItem struct {
	Fixture struct {
		ID     int64  `json:"id"`
		Date   string `json:"date"`
		Status struct {
			Short string `json:"short"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Round string `json:"round"`
	} `json:"league"`
	Teams struct {
		Home struct {
			Name string `json:"name"`
			Logo string `json:"logo"`
		} `json:"home"`
		Away struct {
			Name string `json:"name"`
			Logo string `json:"logo"`
		} `json:"away"`
	} `json:"teams"`
}

func (c *Client) FetchLeagues(ctx context.Context, season int) ([]usecase.ExternalLeague, error) {
	query := map[string]string{
		"season": fmt.Sprintf("%d", season),
	}

	var items []leagueItem
	if err := c.doJSON(ctx, "/leagues", query, &items); err != nil {
		return nil, fmt.Errorf("fetch leagues season=%d: %w", season, err)
	}

	out := make([]usecase.ExternalLeague, 0, len(items))
	for _, item := range items {
		if item.League.ID <= 0 {
			continue
		}
		out = append(out, usecase.ExternalLeague{
			ExternalID: item.League.ID,
			Name:       item.League.Name,
			LogoURL:    item.League.Logo,
			Country:    item.Country.Name,
		})
	}

	return out, nil
}

func (c *Client) FetchLeague(ctx context.Context, leagueID int64, season int) (usecase.ExternalLeague, error) {
	if leagueID <= 0 {
		return usecase.ExternalLeague{}, fmt.Errorf("league id must be greater than zero")
	}

	query := map[string]string{
		"id":     fmt.Sprintf("%d", leagueID),
		"season": fmt.Sprintf("%d", season),
	}

	var items []leagueItem
	if err := c.doJSON(ctx, "/leagues", query, &items); err != nil {
		return usecase.ExternalLeague{}, fmt.Errorf("fetch league id=%d: %w", leagueID, err)
	}
	if len(items) == 0 {
		return usecase.ExternalLeague{}, fmt.Errorf("league id=%d not found for season %d", leagueID, season)
	}

	item := items[0]
	return usecase.ExternalLeague{
		ExternalID: item.League.ID,
		Name:       item.League.Name,
		LogoURL:    item.League.Logo,
		Country:    item.Country.Name,
	}, nil
}

// FetchRounds returns all rounds of the league season and, when the
// provider knows it, the round currently in play.
func (c *Client) FetchRounds(ctx context.Context, leagueID int64, season int) ([]string, string, error) {
	if leagueID <= 0 {
		return nil, "", fmt.Errorf("league id must be greater than zero")
	}

	query := map[string]string{
		"league": fmt.Sprintf("%d", leagueID),
		"season": fmt.Sprintf("%d", season),
	}

	var rounds []string
	if err := c.doJSON(ctx, "/fixtures/rounds", query, &rounds); err != nil {
		return nil, "", fmt.Errorf("fetch rounds league=%d: %w", leagueID, err)
	}

	currentQuery := map[string]string{
		"league":  query["league"],
		"season":  query["season"],
		"current": "true",
	}

	var current []string
	if err := c.doJSON(ctx, "/fixtures/rounds", currentQuery, &current); err != nil {
		// The round list is still usable without the current marker.
		c.logger.WarnContext(ctx, "fetch current round failed", "league_id", leagueID, "error", err)
		return rounds, "", nil
	}

	if len(current) == 0 {
		return rounds, "", nil
	}
	return rounds, current[0], nil
}

func (c *Client) FetchFixtures(ctx context.Context, leagueID int64, season int, round string) ([]usecase.ExternalFixture, error) {
	if leagueID <= 0 {
		return nil, fmt.Errorf("league id must be greater than zero")
	}
	round = strings.TrimSpace(round)
	if round == "" {
		return nil, fmt.Errorf("round is required")
	}

	query := map[string]string{
		"league": fmt.Sprintf("%d", leagueID),
		"season": fmt.Sprintf("%d", season),
		"round":  round,
	}

	var items []fixtureItem
	if err := c.doJSON(ctx, "/fixtures", query, &items); err != nil {
		return nil, fmt.Errorf("fetch fixtures league=%d round=%s: %w", leagueID, round, err)
	}

	out := make([]usecase.ExternalFixture, 0, len(items))
	for _, item := range items {
		if item.Fixture.ID <= 0 {
			continue
		}
		kickoff, err := time.Parse(time.RFC3339, item.Fixture.Date)
		if err != nil {
			c.logger.WarnContext(ctx, "skip fixture with unparseable kickoff",
				"fixture_id", item.Fixture.ID,
				"date", item.Fixture.Date,
			)
			continue
		}
		out = append(out, usecase.ExternalFixture{
			ExternalID:   item.Fixture.ID,
			LeagueID:     item.League.ID,
			LeagueName:   item.League.Name,
			Round:        item.League.Round,
			HomeTeamName: item.Teams.Home.Name,
			AwayTeamName: item.Teams.Away.Name,
			HomeLogoURL:  item.Teams.Home.Logo,
			AwayLogoURL:  item.Teams.Away.Logo,
			KickoffAt:    kickoff,
			Status:       item.Fixture.Status.Short,
		})
	}

	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "football api circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: fixture provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errFootballAPITransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	var env envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode provider envelope: %w", err)
	}
	if msg := providerErrorMessage(env.Errors); msg != "" {
		return fmt.Errorf("provider rejected request: %s", msg)
	}
	if len(env.Response) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(env.Response, target); err != nil {
		return fmt.Errorf("decode provider response: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set(apiKeyHeader, c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errFootballAPITransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := readBody(resp.Body)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errFootballAPITransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errFootballAPITransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "football api request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := io.Copy(buf, io.LimitReader(body, maxResponseSize)); err != nil {
		return nil, err
	}

	return append([]byte(nil), buf.B...), nil
}

func providerErrorMessage(errs any) string {
	switch v := errs.(type) {
	case map[string]any:
		parts := make([]string, 0, len(v))
		for key, value := range v {
			parts = append(parts, fmt.Sprintf("%s=%v", key, value))
		}
		return strings.Join(parts, " ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, value := range v {
			parts = append(parts, fmt.Sprintf("%v", value))
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return apiKeyHeaderRegex.ReplaceAllString(value, apiKeyHeader+": REDACTED")
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const maxLen = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > maxLen {
		return body[:maxLen] + "..."
	}
	return body
}
