// Package fetcher downloads word bundles from user-supplied URLs.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"wordcards/internal/domain"

	"go.uber.org/zap"
)

// Client performs plain GET requests for bundle JSON. It never retries.
type Client struct {
	httpClient *http.Client
	maxBytes   int64
	logger     *zap.Logger
}

// NewClient creates a fetch client with the given request timeout and body size cap
func NewClient(timeout time.Duration, maxBytes int64, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   maxBytes,
		logger:     logger,
	}
}

// Fetch returns the response body of a GET to url.
// Transport errors and non-2xx statuses are reported as domain.ErrFetch.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Fetching bundle", zap.String("url", url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	// Read one byte past the cap to detect oversized bodies
	limit := c.maxBytes
	if limit < math.MaxInt64 {
		limit++
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrFetch, err)
	}
	if int64(len(body)) > c.maxBytes {
		return nil, fmt.Errorf("%w: response body exceeds %d bytes", domain.ErrFetch, c.maxBytes)
	}

	c.logger.Debug("Bundle fetched",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
	)

	return body, nil
}

// StatusError is returned for a non-success HTTP status
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: unexpected status %d", domain.ErrFetch, e.StatusCode)
}

// Unwrap lets errors.Is match domain.ErrFetch
func (e *StatusError) Unwrap() error {
	return domain.ErrFetch
}
