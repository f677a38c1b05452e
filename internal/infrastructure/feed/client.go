package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"
)

// Config holds catalog feed client configuration
type Config struct {
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxBodyBytes      int64         `mapstructure:"max_body_bytes"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	MaxAttempts       int           `mapstructure:"max_attempts"`
	AllowedHosts      []string      `mapstructure:"allowed_hosts"`
}

// Client downloads catalog markup published by manufacturers
type Client struct {
	httpClient   *http.Client
	rateLimiter  *rate.Limiter
	maxBodyBytes int64
	maxAttempts  int
	allowedHosts map[string]bool
	backoffBase  time.Duration
	logger       *zap.Logger
}

// NewClient creates a feed client; zero config values take defaults
func NewClient(config Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = 20 << 20
	}
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = 30
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}

	hosts := make(map[string]bool, len(config.AllowedHosts))
	for _, h := range config.AllowedHosts {
		hosts[strings.ToLower(h)] = true
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter:  rate.NewLimiter(rate.Limit(float64(config.RequestsPerMinute)/60.0), 5),
		maxBodyBytes: config.MaxBodyBytes,
		maxAttempts:  config.MaxAttempts,
		allowedHosts: hosts,
		backoffBase:  500 * time.Millisecond,
		logger:       logger.Named("feed"),
	}
}

// FetchMarkup downloads the catalog markup at sourceURL.
// Server errors and 429 are retried with exponential backoff; other 4xx fail at once.
func (c *Client) FetchMarkup(ctx context.Context, sourceURL string) (string, error) {
	if err := c.checkURL(sourceURL); err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter error: %w", err)
		}

		body, status, err := c.doRequest(ctx, sourceURL)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			c.logger.Warn("feed request error", zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
		} else if status == http.StatusOK {
			if int64(len(body)) > c.maxBodyBytes {
				return "", fmt.Errorf("%w: body exceeds %d bytes", domain.ErrFeedFailure, c.maxBodyBytes)
			}
			c.logger.Info("feed fetched", zap.String("url", sourceURL), zap.Int("bytes", len(body)))
			return string(body), nil
		} else {
			lastErr = fmt.Errorf("%w: status %d", domain.ErrFeedFailure, status)
			if status != http.StatusTooManyRequests && status < 500 {
				return "", lastErr
			}
			c.logger.Warn("feed returned retryable status", zap.Int("attempt", attempt), zap.Int("status", status))
		}

		if attempt < c.maxAttempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.exponentialBackoff(attempt)):
			}
		}
	}

	c.logger.Error("feed retries exhausted", zap.String("url", sourceURL), zap.Error(lastErr))
	return "", lastErr
}

// doRequest executes a GET and returns at most maxBodyBytes+1 bytes of the body
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "KitchenPlanner/1.0")
	req.Header.Set("Accept", "application/xml, text/xml, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrFeedFailure, err)
	}
	defer resp.Body.Close()

	body, err := readLimitedBody(resp.Body, c.maxBodyBytes+1)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: reading body: %v", domain.ErrFeedFailure, err)
	}
	return body, resp.StatusCode, nil
}

// checkURL accepts only http(s) URLs, restricted to the allow-list when one is configured
func (c *Client) checkURL(sourceURL string) error {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported feed scheme %q", domain.ErrInvalidRequest, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: feed URL has no host", domain.ErrInvalidRequest)
	}
	if len(c.allowedHosts) > 0 && !c.allowedHosts[strings.ToLower(u.Hostname())] {
		return fmt.Errorf("%w: feed host %q is not allowed", domain.ErrInvalidRequest, u.Hostname())
	}
	return nil
}

// exponentialBackoff returns the wait before the next attempt: base, 2×base, 4×base, ...
func (c *Client) exponentialBackoff(attempt int) time.Duration {
	return c.backoffBase * time.Duration(1<<(attempt-1))
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
