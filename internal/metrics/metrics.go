// Pagelens - Umami Pageview Aggregation Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pagelens

// Package metrics provides Prometheus instrumentation for the Umami
// fetch pipeline: upstream request outcomes, coalesced fetches, and
// circuit breaker state.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcome label values.
const (
	OutcomeSuccess      = "success"
	OutcomeUnconfigured = "unconfigured"
	OutcomeTransport    = "transport"
	OutcomeStatus       = "status"
	OutcomeParse        = "parse"
)

var (
	// FetchTotal counts upstream metric fetches by outcome.
	FetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagelens_fetch_total",
			Help: "Total number of Umami metric fetches by outcome",
		},
		[]string{"outcome"},
	)

	// FetchDuration observes upstream fetch latency.
	FetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pagelens_fetch_duration_seconds",
			Help:    "Duration of Umami metric fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// CoalescedFetches counts callers that shared another caller's
	// in-flight fetch instead of issuing their own.
	CoalescedFetches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pagelens_fetch_coalesced_total",
			Help: "Total number of fetches served by an in-flight request for the same time range",
		},
	)

	// CircuitBreakerState tracks breaker state (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pagelens_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// CircuitBreakerTransitions counts breaker state transitions.
	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagelens_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// CircuitBreakerRequests counts requests through the breaker by outcome.
	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagelens_circuit_breaker_requests_total",
			Help: "Total number of circuit breaker requests by outcome (success, failure, rejected)",
		},
		[]string{"name", "outcome"},
	)
)
