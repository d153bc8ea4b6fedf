package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Transport-level failures, mapped from HTTP status codes and network
// errors so callers can branch without inspecting status codes.
var (
	ErrNetwork     = errors.New("network error: check your connection")
	ErrAuth        = errors.New("invalid API credentials")
	ErrRateLimited = errors.New("too many requests")
	ErrUpstream    = errors.New("upstream server error")
)

type Options struct {
	MaxSize  int
	Timeout  time.Duration
	Cache    bool
	CacheTTL time.Duration
}

// A thing capable of fetching a URL, optionally with caching
type Fetcher interface {
	Get(ctx context.Context, url string, headers map[string]string, options Options) ([]byte, error)
}

// Gets a URL. Doesn't cache. Provided as convenience for
// implementing custom Fetchers.
func HTTPGet(ctx context.Context, url string, headers map[string]string, options Options) ([]byte, error) {
	client := &http.Client{
		Timeout: options.Timeout,
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for k, v := range headers {
		req.Header.Add(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		// Timeouts, DNS failures, refused connections all land
		// here. The caller only needs to know the upstream was
		// unreachable.
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		return nil, err
	}

	var reader io.Reader = resp.Body
	if options.MaxSize > 0 {
		reader = io.LimitReader(resp.Body, int64(options.MaxSize))
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrNetwork, err)
	}

	return body, nil
}

func statusError(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w (status %d)", ErrAuth, code)
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("%w (status %d)", ErrRateLimited, code)
	case code >= 500:
		return fmt.Errorf("%w (status %d)", ErrUpstream, code)
	default:
		return fmt.Errorf("status %d", code)
	}
}
