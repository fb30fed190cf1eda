package fetcher

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Fixed backoff policy: exponential, 2s initial, doubling, no jitter.
// Not tunable per call.
const (
	initialBackoff    = 2 * time.Second
	backoffMultiplier = 2.0
)

// FetchError is a transport failure after exhausting retries. It is
// source-level: callers skip the source rather than aborting the run.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Request describes one fetch: the per-source policy travels with it.
type Request struct {
	URL     string
	Referer string
	Timeout time.Duration // per attempt
	Retries int           // attempts after the first
}

type Fetcher struct {
	client          *http.Client
	userAgent       string
	initialInterval time.Duration
}

func NewFetcher(userAgent string) *Fetcher {
	return &Fetcher{
		client:          &http.Client{},
		userAgent:       userAgent,
		initialInterval: initialBackoff,
	}
}

// Fetch retrieves the payload for a URL with bounded retries and returns it
// with gzip framing removed. On exhausted retries it returns a *FetchError
// distinct from empty content.
func (f *Fetcher) Fetch(ctx context.Context, req Request) ([]byte, error) {
	var body []byte
	attempts := 0

	operation := func() error {
		attempts++
		data, err := f.fetchOnce(ctx, req)
		if err != nil {
			slog.Warn("Fetch attempt failed", "url", req.URL, "attempt", attempts, "error", err)
			return err
		}
		body = data
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = f.initialInterval
	bo.Multiplier = backoffMultiplier
	bo.RandomizationFactor = 0

	retries := req.Retries
	if retries < 0 {
		retries = 0
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(retries)), ctx))
	if err != nil {
		return nil, &FetchError{URL: req.URL, Attempts: attempts, Err: err}
	}

	return decompress(body), nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, req Request) ([]byte, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("User-Agent", f.userAgent)
	if req.Referer != "" {
		httpReq.Header.Set("Referer", req.Referer)
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// decompress strips gzip framing when present. A body that is not
// gzip-framed is returned as-is; this is an expected branch, not an error.
func decompress(data []byte) []byte {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return data
	}
	defer reader.Close()

	decoded, err := io.ReadAll(reader)
	if err != nil {
		return data
	}

	return decoded
}
