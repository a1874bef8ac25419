// Pagelens - Umami Pageview Aggregation Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pagelens

package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"github.com/tomtom215/pagelens/internal/config"
	"github.com/tomtom215/pagelens/internal/logging"
	"github.com/tomtom215/pagelens/internal/metrics"
	umami "github.com/tomtom215/pagelens/internal/models/umami"
)

// Service is the analytics facade. It gates every operation on
// configuration readiness and absorbs all upstream failure modes into
// safe defaults: callers get an empty result or zero count, never an
// error. Failures are visible through logging and Prometheus counters
// only.
//
// The configured/unconfigured state is fixed at construction; there is
// no runtime transition between them. Each operation performs its own
// fetch and aggregation; nothing is cached across calls, though
// concurrent calls for the same time range share one upstream read.
//
// Thread safety: safe for concurrent use. The only mutable state is
// the in-flight coalescing group.
type Service struct {
	cfg    *config.UmamiConfig
	source Source
	clock  clock.Clock
	log    zerolog.Logger

	flights flightGroup
}

// Option configures optional Service dependencies.
type Option func(*Service)

// WithClock injects the clock used for the "current time at call"
// default of the fetch end bound. Tests pass a mock clock.
func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithLogger replaces the component logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService creates the analytics facade over the given source. The
// source is injected so tests can substitute a double for the network
// boundary.
func NewService(cfg *config.UmamiConfig, source Source, opts ...Option) *Service {
	s := &Service{
		cfg:    cfg,
		source: source,
		clock:  clock.New(),
		log:    logging.With().Str("component", "analytics").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsConfigured reports whether endpoint, website ID, and credential are
// all present. Pure predicate, no side effects.
func (s *Service) IsConfigured() bool {
	return s.cfg.Configured()
}

// FetchURLMetrics fetches, normalizes, and aggregates per-URL pageview
// counts for the time range. Zero bounds default to the tracking epoch
// and the current time. Unconfigured or failed fetches yield an empty
// slice; the cause is logged, not returned.
//
// Entries come back sorted by path so output is deterministic.
func (s *Service) FetchURLMetrics(ctx context.Context, tr umami.TimeRange) []umami.PageMetric {
	aggregated := s.fetchAggregated(ctx, tr)

	out := make([]umami.PageMetric, 0, len(aggregated))
	for path, views := range aggregated {
		out = append(out, umami.PageMetric{Path: path, Views: views})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// PageviewsForURL returns the total view count for one path, 0 when the
// path is absent from the aggregated data or the facade is
// unconfigured. The input path is normalized before comparison, and
// matches are summed defensively even though aggregation leaves at most
// one entry per canonical path.
func (s *Service) PageviewsForURL(ctx context.Context, path string) int {
	if !s.IsConfigured() {
		return 0
	}

	want := NormalizePath(path)
	total := 0
	for canonical, views := range s.fetchAggregated(ctx, umami.TimeRange{}) {
		if canonical == want {
			total += views
		}
	}
	return total
}

// PageviewsForSlug returns the view count for one content slug via its
// canonical /post/ path.
func (s *Service) PageviewsForSlug(ctx context.Context, slug string) int {
	return s.PageviewsForURL(ctx, SlugPath(slug))
}

// SlugViewMap fetches and aggregates once, then indexes the result by
// content slug. Intended for bulk lookups; one network read serves any
// number of slug lookups in the returned map.
func (s *Service) SlugViewMap(ctx context.Context) map[string]int {
	return IndexBySlug(s.fetchAggregated(ctx, umami.TimeRange{}))
}

// WebsiteStats returns site-wide totals for the time range, or zero
// values when unconfigured or on failure.
func (s *Service) WebsiteStats(ctx context.Context, tr umami.TimeRange) umami.WebsiteStats {
	if !s.IsConfigured() {
		s.warnUnconfigured()
		return umami.WebsiteStats{}
	}

	startAt, endAt := tr.Bounds(s.clock.Now())
	stats, err := s.source.WebsiteStats(ctx, startAt, endAt)
	if err != nil {
		s.absorb("stats", err)
		return umami.WebsiteStats{}
	}
	return *stats
}

// ActiveVisitors returns the current active visitor count, 0 when
// unconfigured or on failure.
func (s *Service) ActiveVisitors(ctx context.Context) int {
	if !s.IsConfigured() {
		s.warnUnconfigured()
		return 0
	}

	active, err := s.source.ActiveVisitors(ctx)
	if err != nil {
		s.absorb("active", err)
		return 0
	}
	return active.Visitors
}

// fetchAggregated performs the shared fetch+aggregate step. Every
// failure mode collapses into an empty non-nil map here, which keeps
// the policy in one place and the callers branch-free.
func (s *Service) fetchAggregated(ctx context.Context, tr umami.TimeRange) map[string]int {
	if !s.IsConfigured() {
		s.warnUnconfigured()
		return map[string]int{}
	}

	startAt, endAt := tr.Bounds(s.clock.Now())

	started := time.Now()
	raw, err := s.fetchCoalesced(ctx, startAt, endAt)
	metrics.FetchDuration.Observe(time.Since(started).Seconds())

	if err != nil {
		s.absorb("metrics", err)
		return map[string]int{}
	}

	metrics.FetchTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	s.log.Debug().
		Int("entries", len(raw)).
		Time("start_at", startAt).
		Time("end_at", endAt).
		Msg("fetched url metrics")
	return Aggregate(raw)
}

// warnUnconfigured logs the configuration gate once per call site hit.
func (s *Service) warnUnconfigured() {
	metrics.FetchTotal.WithLabelValues(metrics.OutcomeUnconfigured).Inc()
	s.log.Warn().Msg("umami endpoint, website id, or credential missing; returning empty result")
}

// absorb applies the failure policy: classify, count, log, move on.
func (s *Service) absorb(op string, err error) {
	outcome := failureLabel(err)
	metrics.FetchTotal.WithLabelValues(outcome).Inc()
	s.log.Warn().Err(err).Str("op", op).Str("failure", outcome).Msg("umami fetch failed, returning safe default")
}
