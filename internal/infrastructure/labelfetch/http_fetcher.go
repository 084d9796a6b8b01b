// Package labelfetch downloads shipping label documents from merchant URLs.
package labelfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/coregenion/holo-gateway/internal/application/holo"
	"go.uber.org/zap"
)

// maxLabelSize caps label downloads; labels are small PDFs.
const maxLabelSize = 16 << 20

// Ensure HTTPLabelFetcher implements holo.LabelFetcher
var _ holo.LabelFetcher = (*HTTPLabelFetcher)(nil)

// HTTPLabelFetcher fetches label documents over HTTP with a per-attempt
// timeout and a fixed number of retries.
type HTTPLabelFetcher struct {
	client  *http.Client
	timeout time.Duration
	retries int
	logger  *zap.Logger
}

// HTTPLabelFetcherOption configures an HTTPLabelFetcher
type HTTPLabelFetcherOption func(*HTTPLabelFetcher)

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(client *http.Client) HTTPLabelFetcherOption {
	return func(f *HTTPLabelFetcher) {
		f.client = client
	}
}

// WithRetries sets the number of extra attempts after the first failure
func WithRetries(retries int) HTTPLabelFetcherOption {
	return func(f *HTTPLabelFetcher) {
		f.retries = retries
	}
}

// NewHTTPLabelFetcher creates a fetcher with the given per-attempt timeout
func NewHTTPLabelFetcher(timeout time.Duration, logger *zap.Logger, opts ...HTTPLabelFetcherOption) *HTTPLabelFetcher {
	f := &HTTPLabelFetcher{
		client:  &http.Client{},
		timeout: timeout,
		retries: 1,
		logger:  logger.Named("labelfetch"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the label document at the given URL. All attempts share
// the caller's context; each attempt additionally gets its own deadline.
func (f *HTTPLabelFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	attempts := f.retries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		content, err := f.fetchOnce(ctx, url)
		if err == nil {
			return content, nil
		}
		lastErr = err
		f.logger.Warn("Label download attempt failed",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, &holo.LabelFetchError{URL: url, Err: lastErr}
}

func (f *HTTPLabelFetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	attemptCtx := ctx
	if f.timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxLabelSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return content, nil
}
