// Pagelens - Umami Pageview Aggregation Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pagelens

package analytics

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	umami "github.com/tomtom215/pagelens/internal/models/umami"
)

// gatedSource blocks every fetch on release so a test can pile up
// concurrent callers on one in-flight request.
type gatedSource struct {
	fakeSource
	arrived chan struct{}
	release chan struct{}
	fetches atomic.Int64
}

func (g *gatedSource) PageviewMetrics(ctx context.Context, startAt, endAt time.Time) ([]umami.PageviewMetric, error) {
	g.fetches.Add(1)
	g.arrived <- struct{}{}
	<-g.release
	return g.fakeSource.PageviewMetrics(ctx, startAt, endAt)
}

func TestConcurrentFetchesCoalesce(t *testing.T) {
	source := &gatedSource{
		fakeSource: fakeSource{metrics: exampleMetrics()},
		arrived:    make(chan struct{}, 1),
		release:    make(chan struct{}),
	}
	svc := NewService(configuredConfig(), source)

	const callers = 8
	results := make([][]umami.PageMetric, callers)

	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = svc.FetchURLMetrics(context.Background(), umami.TimeRange{})
		}(i)
	}

	// Wait for the first caller to reach the source, give the rest a
	// moment to join its flight, then let it complete.
	<-source.arrived
	time.Sleep(50 * time.Millisecond)
	close(source.release)
	wg.Wait()

	assert.Equal(t, int64(1), source.fetches.Load(), "concurrent same-range callers share one upstream read")
	for i := 0; i < callers; i++ {
		assert.Equal(t, []umami.PageMetric{
			{Path: "/post/a", Views: 5},
			{Path: "/post/b", Views: 5},
		}, results[i])
	}
}

func TestDistinctRangesDoNotCoalesce(t *testing.T) {
	source := &fakeSource{metrics: exampleMetrics()}
	svc := NewService(configuredConfig(), source)
	ctx := context.Background()

	jan := umami.TimeRange{
		StartAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	feb := umami.TimeRange{
		StartAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NotEmpty(t, svc.FetchURLMetrics(ctx, jan))
	require.NotEmpty(t, svc.FetchURLMetrics(ctx, feb))

	assert.Equal(t, int64(2), source.calls.Load())
}

func TestCoalesceKey(t *testing.T) {
	startAt := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	endAt := time.Date(2023, 4, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "1680307200000-1680393600000", coalesceKey(startAt, endAt))
	assert.Equal(t, coalesceKey(startAt, endAt), coalesceKey(startAt.Add(time.Microsecond), endAt),
		"sub-millisecond differences share a key")
}
