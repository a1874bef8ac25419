// Pagelens - Umami Pageview Aggregation Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pagelens

// Package analytics is the aggregation layer over the Umami API:
// a typed HTTP client, the normalize/aggregate/index pipeline, and a
// facade that converts every upstream failure into a safe default.
package analytics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pagelens/internal/config"
	umami "github.com/tomtom215/pagelens/internal/models/umami"
)

// pageLimit is the fixed page size for metric reads. One bounded page
// approximates "all data"; larger datasets are truncated, not paged.
const pageLimit = 10000

// maxErrorBodySize limits how much of a response body is read for
// error reporting.
const maxErrorBodySize = 64 * 1024 // 64KB

// Source provides the upstream reads the facade depends on. *Client
// implements it for production; tests substitute doubles, and
// CircuitBreakerSource wraps it with breaker protection.
//
// All methods are safe for concurrent use.
type Source interface {
	PageviewMetrics(ctx context.Context, startAt, endAt time.Time) ([]umami.PageviewMetric, error)
	WebsiteStats(ctx context.Context, startAt, endAt time.Time) (*umami.WebsiteStats, error)
	ActiveVisitors(ctx context.Context) (*umami.ActiveVisitors, error)
}

// Client handles communication with the Umami HTTP API for one tracked
// website.
//
// Thread safety: safe for concurrent use; each call builds its own
// request.
type Client struct {
	apiURL    string
	websiteID string
	apiKey    string
	hosted    bool
	client    *http.Client
}

var _ Source = (*Client)(nil)

// NewClient creates an Umami API client from the connection settings.
func NewClient(cfg *config.UmamiConfig) *Client {
	base := strings.TrimRight(cfg.APIURL, "/")
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiURL:    base,
		websiteID: cfg.WebsiteID,
		apiKey:    cfg.APIKey,
		hosted:    base == config.CloudAPIURL,
		client:    &http.Client{Timeout: timeout},
	}
}

// PageviewMetrics fetches raw per-URL pageview counts for the time
// range in a single bounded page.
func (c *Client) PageviewMetrics(ctx context.Context, startAt, endAt time.Time) ([]umami.PageviewMetric, error) {
	query := url.Values{}
	query.Set("startAt", millis(startAt))
	query.Set("endAt", millis(endAt))
	query.Set("type", "url")
	query.Set("limit", strconv.Itoa(pageLimit))

	var out []umami.PageviewMetric
	if err := c.do(ctx, "metrics", requestSpec{
		method: http.MethodGet,
		path:   "/websites/" + c.websiteID + "/metrics",
		query:  query,
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// WebsiteStats fetches site-wide totals for the time range.
func (c *Client) WebsiteStats(ctx context.Context, startAt, endAt time.Time) (*umami.WebsiteStats, error) {
	query := url.Values{}
	query.Set("startAt", millis(startAt))
	query.Set("endAt", millis(endAt))

	out := &umami.WebsiteStats{}
	if err := c.do(ctx, "stats", requestSpec{
		method: http.MethodGet,
		path:   "/websites/" + c.websiteID + "/stats",
		query:  query,
	}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ActiveVisitors fetches the current active visitor count.
func (c *Client) ActiveVisitors(ctx context.Context) (*umami.ActiveVisitors, error) {
	out := &umami.ActiveVisitors{}
	if err := c.do(ctx, "active", requestSpec{
		method: http.MethodGet,
		path:   "/websites/" + c.websiteID + "/active",
	}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// do performs one upstream request and decodes the JSON body into
// result. Failures come back classified as *APIError; the caller
// decides the policy.
func (c *Client) do(ctx context.Context, op string, spec requestSpec, result interface{}) error {
	req, err := c.newRequest(ctx, spec)
	if err != nil {
		return &APIError{Kind: FailureTransport, Op: op, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &APIError{Kind: FailureTransport, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := readBodyForError(resp.Body)
		return &APIError{
			Kind:       FailureStatus,
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        errors.New(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &APIError{Kind: FailureParse, Op: op, Err: err}
	}
	return nil
}

// millis renders a time as a string-encoded millisecond epoch value,
// the encoding the Umami API expects for startAt/endAt.
func millis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// readBodyForError reads up to maxErrorBodySize of the response body
// for error reporting. Uses io.LimitReader so a large error response
// cannot allocate unboundedly.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("... (truncated)")...)
	}
	return body
}
