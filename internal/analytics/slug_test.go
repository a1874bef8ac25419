// Pagelens - Umami Pageview Aggregation Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pagelens

package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	umami "github.com/tomtom215/pagelens/internal/models/umami"
)

func TestIndexBySlug(t *testing.T) {
	t.Parallel()

	aggregated := map[string]int{
		"/post/a":    5,
		"/post/b":    5,
		"/about":     12,
		"/":          40,
		"/posts":     3, // prefix is /post/ with trailing slash; /posts does not match
		"/post/":     2, // empty slug segment does not match
		"/category/": 1,
	}

	got := IndexBySlug(aggregated)

	assert.Equal(t, map[string]int{"a": 5, "b": 5}, got)
}

func TestIndexBySlugFromFragmentVariants(t *testing.T) {
	t.Parallel()

	raw := []umami.PageviewMetric{
		{X: "/post/abc", Y: 4},
		{X: "/post/abc#section", Y: 6},
	}

	got := IndexBySlug(Aggregate(raw))

	// Both variants collapse into the same slug with combined count.
	assert.Equal(t, map[string]int{"abc": 10}, got)
}

func TestIndexBySlugCollisionOverwrites(t *testing.T) {
	t.Parallel()

	// Two distinct canonical paths can map to one slug when trailing
	// variants survive normalization. Lexically later paths win; this
	// pins the documented overwrite behavior.
	aggregated := map[string]int{
		"/post/abc":  4,
		"/post/abc/": 9,
	}

	got := IndexBySlug(aggregated)

	assert.Equal(t, map[string]int{"abc": 9}, got)
}

func TestIndexBySlugQueryVariant(t *testing.T) {
	t.Parallel()

	aggregated := map[string]int{
		"/post/abc":          4,
		"/post/abc?ref=home": 2,
	}

	got := IndexBySlug(aggregated)

	// The query variant sorts after the bare path and overwrites it.
	assert.Equal(t, map[string]int{"abc": 2}, got)
}

func TestIndexBySlugEmpty(t *testing.T) {
	t.Parallel()

	got := IndexBySlug(map[string]int{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSlugPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/post/abc", SlugPath("abc"))
}
