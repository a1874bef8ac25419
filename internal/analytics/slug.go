// Pagelens - Umami Pageview Aggregation Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pagelens

package analytics

import (
	"regexp"
	"sort"
)

// slugPattern extracts the content slug from a canonical path: the
// segment following the /post/ prefix, up to the next path, query, or
// fragment separator.
var slugPattern = regexp.MustCompile(`^/post/([^/?#]+)`)

// SlugPath renders the canonical path for a content slug.
func SlugPath(slug string) string {
	return "/post/" + slug
}

// IndexBySlug derives a slug -> count map from an aggregated result.
// Paths that do not match the /post/ prefix are dropped silently; most
// tracked paths are not content pages.
//
// Paths are processed in lexical order so the output is deterministic.
// If two distinct canonical paths yield the same slug (trailing-slash
// or query-string variants the normalizer does not collapse), the
// later-processed path's count overwrites the earlier one. Known
// limitation, kept as is.
func IndexBySlug(aggregated map[string]int) map[string]int {
	paths := make([]string, 0, len(aggregated))
	for path := range aggregated {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	views := make(map[string]int, len(paths))
	for _, path := range paths {
		m := slugPattern.FindStringSubmatch(path)
		if m == nil {
			continue
		}
		views[m[1]] = aggregated[path]
	}
	return views
}
