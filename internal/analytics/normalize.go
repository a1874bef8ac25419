// Pagelens - Umami Pageview Aggregation Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pagelens

package analytics

import "strings"

// NormalizePath strips the fragment suffix from a path, producing the
// canonical deduplication key. "/post/a#intro" and "/post/a#faq" both
// normalize to "/post/a"; a path without a fragment is returned as is.
//
// Pure and idempotent: NormalizePath(NormalizePath(p)) == NormalizePath(p).
func NormalizePath(path string) string {
	if i := strings.IndexByte(path, '#'); i >= 0 {
		return path[:i]
	}
	return path
}
