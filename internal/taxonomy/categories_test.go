// Pagelens - Umami Pageview Aggregation Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pagelens

package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBySlug(t *testing.T) {
	c, ok := BySlug("golang")
	assert.True(t, ok)
	assert.Equal(t, "Go", c.Label)

	_, ok = BySlug("no-such-category")
	assert.False(t, ok)
}

func TestSlugsMatchCategories(t *testing.T) {
	slugs := Slugs()
	assert.Len(t, slugs, len(Categories))
	for i, c := range Categories {
		assert.Equal(t, c.Slug, slugs[i])
	}
}

func TestSlugsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range Slugs() {
		assert.False(t, seen[s], "duplicate category slug %q", s)
		seen[s] = true
	}
}
