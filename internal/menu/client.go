package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/ressharu/menu-bot/pkg/random"
	"go.uber.org/zap"
)

const (
	defaultTimeout  = 15 * time.Second
	defaultRetries  = 1
	defaultCacheTTL = time.Hour

	backoffBase          = time.Second
	backoffJitterPercent = 20
)

// Client fetches the weekly-menu feed over HTTP. Responses are cached for
// a TTL so switching tabs back and forth doesn't hammer the endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retries    int
	logger     *zap.Logger

	cacheTTL  time.Duration
	cacheMu   sync.RWMutex
	cached    []WeeklyMenu
	fetchedAt time.Time
}

// NewClient creates a menu feed client. Zero timeout or cacheTTL and
// negative retries fall back to defaults; cacheTTL < 0 disables caching.
func NewClient(baseURL string, timeout time.Duration, retries int, cacheTTL time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if retries < 0 {
		retries = defaultRetries
	}
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retries:  retries,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Fetch returns the menu records from the feed, serving from cache while
// it is fresh. Network failures are retried with jittered backoff; decode
// failures are not, since the body already arrived.
func (c *Client) Fetch(ctx context.Context) ([]WeeklyMenu, error) {
	c.cacheMu.RLock()
	if c.cached != nil && c.cacheTTL > 0 && time.Since(c.fetchedAt) < c.cacheTTL {
		menus := c.cached
		c.cacheMu.RUnlock()
		c.logger.Debug("Serving menu feed from cache",
			zap.Time("fetched_at", c.fetchedAt))
		return menus, nil
	}
	c.cacheMu.RUnlock()

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			backoff := random.Jitter(backoffBase*time.Duration(attempt), backoffJitterPercent)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		menus, err := c.fetchOnce(ctx)
		if err == nil {
			c.cacheMu.Lock()
			c.cached = menus
			c.fetchedAt = time.Now()
			c.cacheMu.Unlock()

			c.logger.Info("Menu feed fetched",
				zap.String("url", c.baseURL),
				zap.Int("records", len(menus)))
			return menus, nil
		}

		lastErr = err

		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			return nil, err
		}

		c.logger.Warn("Menu fetch failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", c.retries+1),
			zap.Error(err))
	}

	return nil, fmt.Errorf("menu fetch failed after %d attempts: %w", c.retries+1, lastErr)
}

// fetchOnce performs a single GET against the feed
func (c *Client) fetchOnce(ctx context.Context) ([]WeeklyMenu, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return DecodeMenus(body)
}

// ClearCache drops the cached response
func (c *Client) ClearCache() {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	c.cached = nil
	c.fetchedAt = time.Time{}
}
