// Pagelens - Umami Pageview Aggregation Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pagelens

package analytics

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/pagelens/internal/metrics"
	umami "github.com/tomtom215/pagelens/internal/models/umami"
)

// flightGroup coalesces concurrent fetches for the same effective time
// range into one upstream read. singleflight drops the key as soon as
// the flight completes, so nothing is cached across calls.
type flightGroup struct {
	group singleflight.Group
}

// fetchCoalesced performs the upstream metric read, sharing an
// in-flight request with any concurrent caller that asks for the same
// [startAt, endAt] key.
//
// The shared flight runs under the first caller's context; a caller
// joining a flight inherits its outcome, including a cancellation
// triggered by the flight owner.
func (s *Service) fetchCoalesced(ctx context.Context, startAt, endAt time.Time) ([]umami.PageviewMetric, error) {
	key := coalesceKey(startAt, endAt)

	v, err, shared := s.flights.group.Do(key, func() (interface{}, error) {
		return s.source.PageviewMetrics(ctx, startAt, endAt)
	})
	if shared {
		metrics.CoalescedFetches.Inc()
	}
	if err != nil {
		return nil, err
	}

	raw, ok := v.([]umami.PageviewMetric)
	if !ok {
		// Unreachable unless the flight function changes shape.
		return nil, nil
	}
	return raw, nil
}

// coalesceKey renders the effective time range as the coalescing key,
// millisecond-truncated to match the wire encoding.
func coalesceKey(startAt, endAt time.Time) string {
	return strconv.FormatInt(startAt.UnixMilli(), 10) + "-" + strconv.FormatInt(endAt.UnixMilli(), 10)
}
