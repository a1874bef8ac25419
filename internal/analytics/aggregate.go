// Pagelens - Umami Pageview Aggregation Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pagelens

package analytics

import (
	umami "github.com/tomtom215/pagelens/internal/models/umami"
)

// Aggregate merges raw per-URL observations into a canonical-path ->
// summed-count map. Each path is normalized first, so fragment variants
// of the same page collapse into one entry.
//
// The result is built fresh on every call and is order-independent:
// permuting the input produces an identical map. Empty input yields an
// empty non-nil map.
func Aggregate(raw []umami.PageviewMetric) map[string]int {
	totals := make(map[string]int, len(raw))
	for _, m := range raw {
		totals[NormalizePath(m.X)] += m.Y
	}
	return totals
}
