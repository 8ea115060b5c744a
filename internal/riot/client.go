// Package riot is a rate limited client for the Riot match-v5 API.
package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/champ-predictor/internal/metrics"
)

const (
	regionalURL = "https://%s.api.riotgames.com"
	tokenHeader = "X-Riot-Token"

	endpointMatchIDs = "match_ids"
	endpointMatch    = "match"
)

var (
	// ErrNotFound is returned when the API has no such match or player
	ErrNotFound = errors.New("riot resource not found")
	// ErrMissingAPIKey is returned by NewClient without a key
	ErrMissingAPIKey = errors.New("riot API key is required")
)

// APIError is a non-success response that was not retried away
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("riot API request failed with status code %d: %s", e.StatusCode, e.Body)
}

// Config holds configuration for the Riot client
type Config struct {
	APIKey       string
	Region       string
	BaseURL      string // overrides the regional host, used in tests
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	RateLimit    float64 // requests per second
}

// DefaultConfig returns limits matching a development key (100 requests per 2 minutes)
func DefaultConfig(apiKey, region string) Config {
	return Config{
		APIKey:       apiKey,
		Region:       region,
		Timeout:      10 * time.Second,
		MaxRetries:   5,
		RetryWaitMin: 500 * time.Millisecond,
		RetryWaitMax: 30 * time.Second,
		RateLimit:    100.0 / 120.0,
	}
}

// Client fetches match history and match details
type Client struct {
	apiKey  string
	baseURL string
	client  *retryablehttp.Client
	limiter *rate.Limiter
	logger  *logrus.Entry
}

// NewClient creates a new rate limited Riot client
func NewClient(cfg Config, logger *logrus.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.Region == "" {
			return nil, fmt.Errorf("riot region is required")
		}
		baseURL = fmt.Sprintf(regionalURL, cfg.Region)
	}

	entry := logger.WithField("component", "riot")

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.CheckRetry = retryPolicy
	retryClient.Backoff = retryablehttp.DefaultBackoff // honours Retry-After on 429
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client:  retryClient,
		limiter: rate.NewLimiter(limit, 1),
		logger:  entry,
	}, nil
}

// GetMatchIDs returns the most recent match IDs played by the player
func (c *Client) GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	path := fmt.Sprintf("/lol/match/v5/matches/by-puuid/%s/ids?count=%s",
		url.PathEscape(puuid), strconv.Itoa(count))

	var ids []string
	if err := c.get(ctx, endpointMatchIDs, path, &ids); err != nil {
		return nil, fmt.Errorf("failed to get match ids for %s: %w", puuid, err)
	}
	return ids, nil
}

// GetMatch returns the details of a single match
func (c *Client) GetMatch(ctx context.Context, matchID string) (*MatchDTO, error) {
	path := "/lol/match/v5/matches/" + url.PathEscape(matchID)

	var match MatchDTO
	if err := c.get(ctx, endpointMatch, path, &match); err != nil {
		return nil, fmt.Errorf("failed to get match %s: %w", matchID, err)
	}
	return &match, nil
}

// Close releases idle connections
func (c *Client) Close() {
	c.client.HTTPClient.CloseIdleConnections()
}

func (c *Client) get(ctx context.Context, endpoint, path string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set(tokenHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordRiotRequest(endpoint, "error", time.Since(start).Seconds())
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()
	metrics.RecordRiotRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		c.logger.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"status":   resp.StatusCode,
		}).Warn("Riot API request failed")
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

// retryPolicy retries transient network errors, rate limiting and transient
// server errors. Certificate, scheme and redirect failures are not retried.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true, nil
	}

	return false, nil
}
