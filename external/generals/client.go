package generals

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/generals-arena/tournament-api/internal/domain/replay"
	"github.com/generals-arena/tournament-api/internal/platform/logging"
	"github.com/generals-arena/tournament-api/internal/platform/resilience"
	"github.com/generals-arena/tournament-api/internal/usecase"
)

const (
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 2 << 20
)

var defaultBaseURLs = map[replay.Server]string{
	replay.ServerNA:  "https://generals.io/api",
	replay.ServerEU:  "https://eu.generals.io/api",
	replay.ServerBot: "https://bot.generals.io/api",
}

var errFeedTransient = crerr.New("replay feed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURLs       map[replay.Server]string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the game server's public replay API: the per-player
// history feed and the per-replay statistics feed. Every request is bounded
// by the HTTP client timeout, protected by a circuit breaker and
// deduplicated across concurrent identical calls.
type Client struct {
	httpClient     *http.Client
	baseURLs       map[replay.Server]string
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
		httpClient.Timeout = defaultTimeout
	}

	baseURLs := make(map[replay.Server]string, len(defaultBaseURLs))
	for server, base := range defaultBaseURLs {
		baseURLs[server] = base
	}
	for server, base := range cfg.BaseURLs {
		if trimmed := strings.TrimRight(strings.TrimSpace(base), "/"); trimmed != "" {
			baseURLs[server] = trimmed
		}
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient:     httpClient,
		baseURLs:       baseURLs,
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// GetReplaysForUsername fetches a player's most recent replays, newest
// first. The feed has no pagination guarantees beyond offset/count.
func (c *Client) GetReplaysForUsername(ctx context.Context, name string, offset, count int, server replay.Server) ([]replay.Replay, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("username is required")
	}
	if count <= 0 {
		count = 1
	}
	if offset < 0 {
		offset = 0
	}

	query := map[string]string{
		"u":      name,
		"offset": strconv.Itoa(offset),
		"count":  strconv.Itoa(count),
	}

	var items []historyItem
	if err := c.doJSON(ctx, server, "/replaysForUsername", query, &items); err != nil {
		return nil, fmt.Errorf("fetch replays for %s: %w", name, err)
	}

	out := make([]replay.Replay, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			continue
		}
		out = append(out, replay.Replay{
			ID:      item.ID,
			Started: item.Started,
			Ranking: rankingNames(item.Ranking),
		})
	}
	return out, nil
}

// GetReplayStats fetches full per-match statistics for a replay known to
// exist, scores ordered best rank first.
func (c *Client) GetReplayStats(ctx context.Context, replayID string, server replay.Server) (replay.Stats, error) {
	if strings.TrimSpace(replayID) == "" {
		return replay.Stats{}, fmt.Errorf("replay id is required")
	}

	var item statsItem
	if err := c.doJSON(ctx, server, "/replayStats", map[string]string{"id": replayID}, &item); err != nil {
		return replay.Stats{}, fmt.Errorf("fetch replay stats for %s: %w", replayID, err)
	}

	scores := make([]replay.Score, 0, len(item.Scores))
	for _, score := range item.Scores {
		scores = append(scores, replay.Score{
			Name:     score.Name,
			Points:   score.Points,
			Rank:     score.Rank,
			LastTurn: score.LastTurn,
		})
	}

	return replay.Stats{
		Scores:  scores,
		Summary: item.Summary,
		Turns:   item.Turns,
	}, nil
}

func (c *Client) doJSON(ctx context.Context, server replay.Server, path string, query map[string]string, target any) error {
	base, ok := c.baseURLs[server]
	if !ok {
		return fmt.Errorf("unknown game server %q", server)
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "replay feed circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: replay feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := base + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errFeedTransient) {
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

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode feed payload: %w", err)
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

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFeedTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errFeedTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: feed status=%d body=%s", errFeedTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("feed status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
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
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "replay feed request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

type historyItem struct {
	ID      string        `json:"id"`
	Started int64         `json:"started"`
	Ranking []rankingItem `json:"ranking"`
}

type rankingItem struct {
	Name  string `json:"name"`
	Stars any    `json:"stars"`
}

func rankingNames(items []rankingItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

type statsItem struct {
	ID      string      `json:"id"`
	Summary string      `json:"summary"`
	Turns   int         `json:"turns"`
	Scores  []scoreItem `json:"scores"`
}

type scoreItem struct {
	Name     string `json:"name"`
	Points   int    `json:"points"`
	Rank     int    `json:"rank"`
	LastTurn int    `json:"lastTurn"`
}
