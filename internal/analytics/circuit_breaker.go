// Pagelens - Umami Pageview Aggregation Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pagelens

package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/pagelens/internal/config"
	"github.com/tomtom215/pagelens/internal/logging"
	"github.com/tomtom215/pagelens/internal/metrics"
	umami "github.com/tomtom215/pagelens/internal/models/umami"
)

// CircuitBreakerSource wraps Client with a circuit breaker so a failing
// Umami upstream is rejected fast instead of waited on. An open circuit
// surfaces as an ordinary error and is absorbed by the facade like any
// other transport failure.
//
// The breaker uses real time for its interval and timeout calculations;
// unit tests exercise the wrapped client directly.
type CircuitBreakerSource struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[any]
	name   string
}

var _ Source = (*CircuitBreakerSource)(nil)

// NewCircuitBreakerSource creates a breaker-protected Umami source.
// Breaker configuration:
//   - max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 2 minute timeout before attempting recovery
//   - opens at a 60% failure rate with minimum 10 requests
func NewCircuitBreakerSource(cfg *config.UmamiConfig) *CircuitBreakerSource {
	client := NewClient(cfg)
	cbName := "umami-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("opening umami circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("umami circuit state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &CircuitBreakerSource{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

// execute wraps one upstream call with circuit breaker protection.
func (s *CircuitBreakerSource) execute(fn func() (any, error)) (any, error) {
	result, err := s.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "failure").Inc()
		}
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(s.name, "success").Inc()
	return result, nil
}

// castResult type-casts the breaker result with error checking.
func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// PageviewMetrics fetches raw per-URL counts with breaker protection.
func (s *CircuitBreakerSource) PageviewMetrics(ctx context.Context, startAt, endAt time.Time) ([]umami.PageviewMetric, error) {
	return castResult[[]umami.PageviewMetric](s.execute(func() (any, error) {
		return s.client.PageviewMetrics(ctx, startAt, endAt)
	}))
}

// WebsiteStats fetches site-wide totals with breaker protection.
func (s *CircuitBreakerSource) WebsiteStats(ctx context.Context, startAt, endAt time.Time) (*umami.WebsiteStats, error) {
	return castResult[*umami.WebsiteStats](s.execute(func() (any, error) {
		return s.client.WebsiteStats(ctx, startAt, endAt)
	}))
}

// ActiveVisitors fetches the active visitor count with breaker protection.
func (s *CircuitBreakerSource) ActiveVisitors(ctx context.Context) (*umami.ActiveVisitors, error) {
	return castResult[*umami.ActiveVisitors](s.execute(func() (any, error) {
		return s.client.ActiveVisitors(ctx)
	}))
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
