// Package media looks up public metadata for embedded videos.
package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/JonMunkholm/nonprofit/internal/core"
)

// maxResponseSize bounds the oEmbed document read from the provider.
const maxResponseSize = 1 << 20

// ErrNoEndpoint is returned when lookups are disabled.
var ErrNoEndpoint = errors.New("oembed endpoint not configured")

// OEmbedClient fetches video titles from an oEmbed provider.
type OEmbedClient struct {
	endpoint string
	retry    *retryablehttp.Client
	http     *http.Client
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// NewOEmbedClient creates a client for endpoint. Each lookup, retries
// included, is bounded by timeout.
func NewOEmbedClient(endpoint string, timeout time.Duration) *OEmbedClient {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.HTTPClient = &http.Client{Timeout: timeout}
	retryClient.Logger = slog.Default()

	httpClient := retryClient.StandardClient()
	httpClient.Timeout = timeout

	return &OEmbedClient{
		endpoint: endpoint,
		retry:    retryClient,
		http:     httpClient,
	}
}

var _ core.VideoLookup = (*OEmbedClient)(nil)

// LookupVideo returns the title, author and thumbnail of videoURL.
func (c *OEmbedClient) LookupVideo(ctx context.Context, videoURL string) (core.VideoInfo, error) {
	if c.endpoint == "" {
		return core.VideoInfo{}, ErrNoEndpoint
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return core.VideoInfo{}, fmt.Errorf("parse oembed endpoint: %w", err)
	}
	q := u.Query()
	q.Set("url", videoURL)
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return core.VideoInfo{}, fmt.Errorf("build oembed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return core.VideoInfo{}, fmt.Errorf("oembed lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return core.VideoInfo{}, fmt.Errorf("oembed lookup: provider returned %s", resp.Status)
	}

	var body oembedResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&body); err != nil {
		return core.VideoInfo{}, fmt.Errorf("decode oembed response: %w", err)
	}

	return core.VideoInfo{
		Title:        body.Title,
		Author:       body.AuthorName,
		ThumbnailURL: body.ThumbnailURL,
	}, nil
}
