// Pagelens - Umami Pageview Aggregation Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pagelens

// Package umami holds the wire and domain types for the Umami API.
package umami

import "time"

// TrackingEpoch marks the start of tracked history. Fetches with no
// explicit start bound cover everything from this instant onward.
var TrackingEpoch = time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)

// PageviewMetric is one raw per-URL entry as returned by the
// /websites/{id}/metrics endpoint with type=url.
//
// The path in X may still carry a fragment suffix ("/post/a#intro");
// normalization and deduplication happen downstream.
type PageviewMetric struct {
	X string `json:"x"`
	Y int    `json:"y"`
}

// PageMetric is one aggregated entry: a canonical path (fragment
// stripped, variants merged) and its summed view count.
type PageMetric struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}

// TimeRange bounds which recorded events a fetch covers. Zero fields
// take defaults: StartAt falls back to TrackingEpoch, EndAt to the
// current time at the call.
type TimeRange struct {
	StartAt time.Time
	EndAt   time.Time
}

// Bounds resolves the effective [startAt, endAt] pair, substituting
// defaults for zero values. now is injected so callers control the
// "current time at call" default.
func (tr TimeRange) Bounds(now time.Time) (startAt, endAt time.Time) {
	startAt = tr.StartAt
	if startAt.IsZero() {
		startAt = TrackingEpoch
	}
	endAt = tr.EndAt
	if endAt.IsZero() {
		endAt = now
	}
	return startAt, endAt
}
