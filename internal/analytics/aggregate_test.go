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

func TestAggregateMergesFragmentVariants(t *testing.T) {
	t.Parallel()

	raw := []umami.PageviewMetric{
		{X: "/post/a#intro", Y: 3},
		{X: "/post/a#faq", Y: 2},
		{X: "/post/b", Y: 5},
	}

	got := Aggregate(raw)

	assert.Equal(t, map[string]int{
		"/post/a": 5,
		"/post/b": 5,
	}, got)
}

func TestAggregateOrderIndependent(t *testing.T) {
	t.Parallel()

	base := []umami.PageviewMetric{
		{X: "/post/a#intro", Y: 3},
		{X: "/post/b", Y: 5},
		{X: "/post/a", Y: 1},
		{X: "/about", Y: 7},
		{X: "/post/a#faq", Y: 2},
	}

	want := Aggregate(base)

	permutations := [][]int{
		{4, 3, 2, 1, 0},
		{2, 0, 4, 1, 3},
		{1, 4, 0, 3, 2},
	}
	for _, perm := range permutations {
		shuffled := make([]umami.PageviewMetric, len(base))
		for i, j := range perm {
			shuffled[i] = base[j]
		}
		assert.Equal(t, want, Aggregate(shuffled))
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	t.Parallel()

	got := Aggregate(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got = Aggregate([]umami.PageviewMetric{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAggregateZeroCounts(t *testing.T) {
	t.Parallel()

	got := Aggregate([]umami.PageviewMetric{
		{X: "/post/a", Y: 0},
		{X: "/post/a#ref", Y: 0},
	})

	assert.Equal(t, map[string]int{"/post/a": 0}, got)
}
