package result

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/myatmin/twodlive/internal/model"
)

const feedTimeout = 10 * time.Second

// FeedClient fetches the live two-digit value from the upstream feed.
// Any failure degrades to the offline sentinel payload so a transient
// upstream outage never propagates a raw transport error.
type FeedClient struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewFeedClient creates a feed client for the given upstream URL
func NewFeedClient(url string, logger *slog.Logger) *FeedClient {
	return &FeedClient{
		url: url,
		httpClient: &http.Client{
			Timeout: feedTimeout,
		},
		logger: logger.With(slog.String("component", "feed")),
	}
}

// Ensure FeedClient implements the Feed interface
var _ Feed = (*FeedClient)(nil)

// feedResponse is the upstream payload envelope
type feedResponse struct {
	Live model.LiveResult `json:"live"`
}

// Fetch returns the current live result from the upstream feed, or the
// offline sentinel and model.ErrUpstreamUnavailable when the feed cannot
// be reached or returns garbage
func (c *FeedClient) Fetch(ctx context.Context) (model.LiveResult, error) {
	if c.url == "" {
		return model.OfflineLiveResult(), fmt.Errorf("%w: no feed url configured", model.ErrUpstreamUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return model.OfflineLiveResult(), fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("upstream feed unreachable", slog.Any("error", err))
		return model.OfflineLiveResult(), fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("upstream feed returned error status", slog.Int("status", resp.StatusCode))
		return model.OfflineLiveResult(), fmt.Errorf("%w: status %d", model.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var payload feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("upstream feed returned malformed payload", slog.Any("error", err))
		return model.OfflineLiveResult(), fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, err)
	}

	return payload.Live, nil
}
