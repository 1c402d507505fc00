// Package upstream is the shared HTTP client behind every data provider:
// client-side rate limiting, bounded retries, and error classification into
// the domain taxonomy.
package upstream

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"ski_planner/internal/adapters/observability"
	"ski_planner/internal/domain"
)

const maxAttempts = 4

type Client struct {
	service string
	hc      *http.Client
	rl      *rate.Limiter
	backoff func(i int) time.Duration
}

type Option func(*Client)

// WithHTTPClient swaps the transport, mostly for tests.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.hc = hc } }

// WithBackoff overrides the retry delay schedule.
func WithBackoff(f func(i int) time.Duration) Option { return func(c *Client) { c.backoff = f } }

// New builds a client for one upstream service. service labels metrics and errors;
// rps <= 0 defaults to 5 requests per second.
func New(service string, timeout time.Duration, rps int, opts ...Option) *Client {
	if rps <= 0 {
		rps = 5
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	c := &Client{
		service: service,
		hc:      &http.Client{Timeout: timeout},
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
		backoff: Backoff,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Request describes one call. Endpoint is a low-cardinality metric label.
type Request struct {
	Method      string
	URL         string
	Endpoint    string
	Header      http.Header
	Body        []byte
	ContentType string
}

// GetJSON issues a GET and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, endpoint, url string, hdr http.Header, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, URL: url, Endpoint: endpoint, Header: hdr}, out)
}

// PostJSON marshals in as the request body and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, endpoint, url string, hdr http.Header, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s %s: encode body: %w", c.service, endpoint, err)
	}
	return c.Do(ctx, Request{Method: http.MethodPost, URL: url, Endpoint: endpoint, Header: hdr, Body: b, ContentType: "application/json"}, out)
}

// Do performs req with rate limiting and retries, decoding a 2xx body into out.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
// 401/403 map to domain.ErrUpstreamAuth; every other failure maps to
// domain.ErrUpstreamUnavailable.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return c.unavailable(req, err)
	}

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		hreq, err := c.build(ctx, req)
		if err != nil {
			return c.unavailable(req, err)
		}

		start := time.Now()
		resp, err := c.hc.Do(hreq)
		if err != nil {
			observability.ObserveExternal(c.service, req.Endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return c.unavailable(req, ctx.Err())
			}
			lastErr = err
			if i < maxAttempts-1 && sleepCtx(ctx, c.backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return c.unavailable(req, ctx.Err())
			}
			return c.unavailable(req, lastErr)
		}
		observability.ObserveExternal(c.service, req.Endpoint, resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode == http.StatusNoContent:
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return c.unavailable(req, fmt.Errorf("decode response: %w", err))
			}
			return nil

		case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
			detail := readDetail(resp)
			return fmt.Errorf("%s %s: status %d: %s: %w", c.service, req.Endpoint, resp.StatusCode, detail, domain.ErrUpstreamAuth)

		case retryable(resp.StatusCode):
			wait := retryAfter(resp)
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			if wait == 0 {
				wait = c.backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < maxAttempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return c.unavailable(req, ctx.Err())
			}
			return c.unavailable(req, lastErr)

		default:
			detail := readDetail(resp)
			return c.unavailable(req, fmt.Errorf("bad status %d: %s", resp.StatusCode, detail))
		}
	}
	return c.unavailable(req, lastErr)
}

func (c *Client) build(ctx context.Context, req Request) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	hreq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			hreq.Header.Add(k, v)
		}
	}
	if req.ContentType != "" {
		hreq.Header.Set("Content-Type", req.ContentType)
	}
	hreq.Header.Set("Accept", "application/json")
	hreq.Header.Set("User-Agent", "ski-planner/1.0")
	return hreq, nil
}

func (c *Client) unavailable(req Request, err error) error {
	return fmt.Errorf("%s %s: %w: %w", c.service, req.Endpoint, domain.ErrUpstreamUnavailable, err)
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// readDetail drains a small error body for diagnostics and closes it.
func readDetail(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
	return strings.TrimSpace(string(b))
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// Backoff is the default retry schedule: 200ms doubling per attempt plus up to
// 50% random jitter.
func Backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
