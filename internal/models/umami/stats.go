// Pagelens - Umami Pageview Aggregation Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pagelens

package umami

// StatValue is a single stats figure with its previous-period value,
// as nested inside the /websites/{id}/stats response.
type StatValue struct {
	Value int `json:"value"`
	Prev  int `json:"prev"`
}

// WebsiteStats is the response of /websites/{id}/stats: site-wide
// totals for the requested time range.
type WebsiteStats struct {
	Pageviews StatValue `json:"pageviews"`
	Visitors  StatValue `json:"visitors"`
	Visits    StatValue `json:"visits"`
	Bounces   StatValue `json:"bounces"`
	TotalTime StatValue `json:"totaltime"`
}

// ActiveVisitors is the response of /websites/{id}/active: the number
// of unique visitors within the last five minutes.
type ActiveVisitors struct {
	Visitors int `json:"x"`
}
