package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/rshade/pagedtable/internal/logging"
)

const (
	defaultTimeout   = 10 * time.Second
	drainLimit       = 64 << 10
	initialRetryWait = 200 * time.Millisecond
	maxRetryWait     = 2 * time.Second
)

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// Temporary reports whether the request may succeed if retried.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

// HTTPOptions configures an HTTP backed loader.
type HTTPOptions struct {
	BaseURL string
	// Timeout bounds each attempt. Zero selects 10s.
	Timeout time.Duration
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// Client overrides the HTTP client. Timeout is ignored when set.
	Client *http.Client
	// BackOff returns the retry schedule for one request.
	// Defaults to exponential backoff starting at 200ms.
	BackOff func() backoff.BackOff
}

type httpGetter struct {
	client     *http.Client
	header     http.Header
	maxRetries int
	newBackOff func() backoff.BackOff
}

func newHTTPGetter(opts HTTPOptions, header http.Header) *httpGetter {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	newBackOff := opts.BackOff
	if newBackOff == nil {
		newBackOff = func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initialRetryWait
			b.MaxInterval = maxRetryWait
			return b
		}
	}

	return &httpGetter{
		client:     client,
		header:     header,
		maxRetries: max(opts.MaxRetries, 0),
		newBackOff: newBackOff,
	}
}

// getJSON decodes the JSON body of a GET on rawURL into dst. Network errors,
// 5xx and 429 responses are retried; everything else fails immediately.
func (g *httpGetter) getJSON(ctx context.Context, rawURL string, dst any) error {
	log := logging.FromContext(ctx)

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		for k, vs := range g.header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}

		start := time.Now()
		resp, err := g.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		defer resp.Body.Close()

		log.Debug().
			Str("url", rawURL).
			Int("status", resp.StatusCode).
			Dur("duration", time.Since(start)).
			Msg("http response")

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))
			statusErr := &StatusError{URL: rawURL, StatusCode: resp.StatusCode, Status: resp.Status}
			if statusErr.Temporary() {
				return statusErr
			}
			return backoff.Permanent(statusErr)
		}

		if err = json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return backoff.Permanent(fmt.Errorf("%w from %s: %w", ErrDecode, rawURL, err))
		}
		return nil
	}

	//nolint:gosec // maxRetries is clamped to >= 0.
	policy := backoff.WithContext(backoff.WithMaxRetries(g.newBackOff(), uint64(g.maxRetries)), ctx)
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("url", rawURL).Dur("retry_in", wait).Msg("request failed, retrying")
	}
	return backoff.RetryNotify(op, policy, notify)
}
