// Pagelens - Umami Pageview Aggregation Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pagelens

package analytics

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// requestSpec enumerates everything that goes into one upstream
// request. Auth headers are attached by the client, not the spec.
type requestSpec struct {
	method string
	path   string // relative to the API base, e.g. /websites/{id}/metrics
	query  url.Values
	header http.Header
	body   io.Reader
}

// newRequest materializes the spec into an *http.Request against the
// client's endpoint, with the deployment-appropriate auth header
// attached: the hosted cloud API takes a dedicated API-key header,
// self-hosted deployments take a bearer token.
func (c *Client) newRequest(ctx context.Context, spec requestSpec) (*http.Request, error) {
	reqURL := c.apiURL + spec.path
	if len(spec.query) > 0 {
		reqURL += "?" + spec.query.Encode()
	}

	body := spec.body
	if body == nil {
		body = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, spec.method, reqURL, body)
	if err != nil {
		return nil, err
	}

	for key, values := range spec.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	req.Header.Set("Accept", "application/json")
	if c.hosted {
		req.Header.Set("x-umami-api-key", c.apiKey)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	return req, nil
}
