// Package tfl is a client for live London Underground, DLR and
// Elizabeth line data from the TfL Unified API: station search and
// resolution, arrival predictions, and line status.
package tfl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"stationly.dev/tfl/fetch"
)

const (
	DefaultBaseURL          = "https://api.tfl.gov.uk"
	DefaultTimeout          = 10 * time.Second
	DefaultCacheTTL         = 30 * time.Second
	DefaultMaxSearchResults = 20
	DefaultMaxResponseSize  = 4 << 20 // 4 MB
)

// The transport modes this client serves. Everything else upstream
// returns (buses, river boats, cable car) is filtered out.
const (
	ModeTube          = "tube"
	ModeDLR           = "dlr"
	ModeElizabethLine = "elizabeth-line"
)

var SupportedModes = []string{ModeTube, ModeDLR, ModeElizabethLine}

// Client talks to the TfL Unified API. The zero value is not usable;
// construct with NewClient. All fields may be adjusted before first
// use.
type Client struct {
	BaseURL          string
	AppID            string
	AppKey           string
	Timeout          time.Duration
	CacheTTL         time.Duration
	MaxSearchResults int
	MaxResponseSize  int
	Fetcher          fetch.Fetcher

	// Optional. Used for fail-soft paths (skipped parents,
	// unrecognized payload shapes). Nil disables logging.
	Logger *slog.Logger
}

// Creates a new Client with the given credentials. Both may be blank
// for anonymous (heavily rate-limited) access.
func NewClient(appID, appKey string) *Client {
	return &Client{
		BaseURL:          DefaultBaseURL,
		AppID:            appID,
		AppKey:           appKey,
		Timeout:          DefaultTimeout,
		CacheTTL:         DefaultCacheTTL,
		MaxSearchResults: DefaultMaxSearchResults,
		MaxResponseSize:  DefaultMaxResponseSize,
		Fetcher:          fetch.NewMemory(),
	}
}

// Builds the request URL, attaches credentials, and fetches. Cached
// requests share the Client's TTL; resolution-related requests are
// never cached.
func (c *Client) get(ctx context.Context, path string, params url.Values, cache bool) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	if c.AppID != "" {
		params.Set("app_id", c.AppID)
	}
	if c.AppKey != "" {
		params.Set("app_key", c.AppKey)
	}

	u := strings.TrimRight(c.BaseURL, "/") + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	return c.Fetcher.Get(ctx, u, nil, fetch.Options{
		Timeout:  c.Timeout,
		MaxSize:  c.MaxResponseSize,
		Cache:    cache,
		CacheTTL: c.CacheTTL,
	})
}

func (c *Client) warn(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Warn(msg, args...)
	}
}

// Reports whether mode is one of the supported transport modes.
// Matching is case-insensitive and accepts both spellings upstream
// uses for the Elizabeth line ("elizabeth-line" and "elizabeth line").
func supportedMode(mode string) bool {
	switch strings.ToLower(mode) {
	case ModeTube, ModeDLR, ModeElizabethLine, "elizabeth line":
		return true
	}
	return false
}

func anySupportedMode(modes []string) bool {
	for _, mode := range modes {
		if supportedMode(mode) {
			return true
		}
	}
	return false
}
