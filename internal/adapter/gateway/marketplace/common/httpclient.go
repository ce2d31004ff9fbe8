package common

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/sh1m0r1an1n/seller-apis/internal/domain/offers"
)

// Client is a JSON HTTP client for one marketplace API: fixed base URL,
// fixed auth headers, retries for transient failures. Submission retries
// live here and nowhere else.
type Client struct {
	Base    string
	HC      *http.Client
	Opts    Options
	Headers map[string]string
}

func New(base string, opts Options, headers map[string]string) *Client {
	return &Client{
		Base: base,
		HC: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
				MaxIdleConns: 100, IdleConnTimeout: 90 * time.Second,
			},
		},
		Opts:    opts,
		Headers: headers,
	}
}

func (c *Client) GetJSON(ctx context.Context, path string, query map[string]string, v any) error {
	p := path
	if len(query) > 0 {
		q := url.Values{}
		for k, val := range query {
			q.Set(k, val)
		}
		p += "?" + q.Encode()
	}
	return c.do(ctx, http.MethodGet, p, nil, v)
}

func (c *Client) PostJSON(ctx context.Context, path string, body, v any) error {
	return c.doWithBody(ctx, http.MethodPost, path, body, v)
}

func (c *Client) PutJSON(ctx context.Context, path string, body, v any) error {
	return c.doWithBody(ctx, http.MethodPut, path, body, v)
}

func (c *Client) doWithBody(ctx context.Context, method, path string, body, v any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", method, path, err)
	}
	return c.do(ctx, method, path, raw, v)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, v any) error {
	var lastErr error
	for attempt := 0; attempt <= c.Opts.Retries; attempt++ {
		if attempt > 0 {
			wait := computeBackoff(c.Opts.BackoffMin, c.Opts.BackoffMax, attempt-1, retryAfterOf(lastErr))
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %s %s: %v", offers.ErrUpstream, method, path, ctx.Err())
			case <-time.After(wait):
			}
		}

		err := c.once(ctx, method, path, body, v)
		if err == nil {
			return nil
		}
		lastErr = err
		status := 0
		if se, ok := err.(*statusError); ok {
			status = se.code
		}
		if !shouldRetry(status, transportErr(err)) {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}
	return fmt.Errorf("%w: %s %s: %v", offers.ErrUpstream, method, path, lastErr)
}

func (c *Client) once(ctx context.Context, method, path string, body []byte, v any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.Opts.UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, val := range c.Headers {
		req.Header.Set(k, val)
	}

	res, err := c.HC.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return &statusError{code: res.StatusCode, body: string(b), retryAfter: headerRetryAfter(res.Header)}
	}
	if v == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	return json.NewDecoder(res.Body).Decode(v)
}

// Ping checks that the API host answers at all; any HTTP status counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.Base, nil)
	if err != nil {
		return err
	}
	res, err := c.HC.Do(req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, res.Body)
	return res.Body.Close()
}

type statusError struct {
	code       int
	body       string
	retryAfter string
}

func (e *statusError) Error() string { return fmt.Sprintf("http %d: %s", e.code, e.body) }

// transportErr returns err only when it is not an HTTP status failure, so
// shouldRetry can tell the two apart.
func transportErr(err error) error {
	if _, ok := err.(*statusError); ok {
		return nil
	}
	return err
}

func retryAfterOf(err error) string {
	if se, ok := err.(*statusError); ok {
		return se.retryAfter
	}
	return ""
}
