// Pagelens - Umami Pageview Aggregation Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pagelens

package analytics

import (
	"errors"
	"fmt"

	"github.com/tomtom215/pagelens/internal/metrics"
)

// FailureKind classifies why an upstream fetch failed. The client
// reports the classification; the facade decides what to do with it
// (always: log, count, return the safe default).
type FailureKind int

const (
	// FailureTransport covers network-level errors: connection refused,
	// timeouts, cancelled contexts, an open circuit breaker.
	FailureTransport FailureKind = iota + 1

	// FailureStatus covers non-success HTTP responses.
	FailureStatus

	// FailureParse covers malformed response bodies.
	FailureParse
)

// String returns the metrics label for the failure kind.
func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return metrics.OutcomeTransport
	case FailureStatus:
		return metrics.OutcomeStatus
	case FailureParse:
		return metrics.OutcomeParse
	default:
		return "unknown"
	}
}

// APIError is a classified upstream failure.
type APIError struct {
	Kind       FailureKind
	Op         string // API operation, e.g. "metrics"
	StatusCode int    // set for FailureStatus
	Err        error
}

func (e *APIError) Error() string {
	if e.Kind == FailureStatus {
		return fmt.Sprintf("umami %s request failed with status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("umami %s request failed: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// failureLabel maps an error to its fetch-outcome metrics label.
// Errors that are not APIErrors (context cancellation, breaker open
// state) count as transport failures.
func failureLabel(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind.String()
	}
	return metrics.OutcomeTransport
}
