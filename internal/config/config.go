// Pagelens - Umami Pageview Aggregation Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pagelens

// Package config loads Pagelens configuration with Koanf v2 layering:
// built-in defaults, an optional YAML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// CloudAPIURL is the hosted Umami Cloud API address. Requests to it
// authenticate with the x-umami-api-key header; any other endpoint is
// treated as self-hosted and gets a bearer token instead.
const CloudAPIURL = "https://api.umami.is/v1"

// Config holds all application configuration.
//
// Thread safety: Config is immutable after Load() and safe for
// concurrent read access.
type Config struct {
	Umami   UmamiConfig   `koanf:"umami"`
	Logging LoggingConfig `koanf:"logging"`
}

// UmamiConfig holds the connection settings for the tracked website.
//
// A partially filled config is not a load error: the analytics facade
// treats missing endpoint, website ID, or credential as "unconfigured"
// and serves safe defaults without contacting the network.
//
// Environment variables:
//   - UMAMI_API_URL: API endpoint (default: the hosted cloud address)
//   - UMAMI_WEBSITE_ID: website identifier from the Umami dashboard
//   - UMAMI_API_KEY: API key (cloud) or access token (self-hosted)
type UmamiConfig struct {
	APIURL    string `koanf:"api_url" validate:"omitempty,url"`
	WebsiteID string `koanf:"website_id"`
	APIKey    string `koanf:"api_key"`

	// Timeout bounds each upstream HTTP request.
	Timeout time.Duration `koanf:"timeout" validate:"min=0"`

	// CircuitBreaker wraps the transport client with a breaker so a
	// failing upstream is rejected fast instead of waited on.
	CircuitBreaker bool `koanf:"circuit_breaker"`
}

// Configured reports whether all three connection parameters are
// present. Fixed for the lifetime of the facade built from this config.
func (c *UmamiConfig) Configured() bool {
	return c.APIURL != "" && c.WebsiteID != "" && c.APIKey != ""
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal disabled"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// validate is the shared validator instance; it caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that present configuration values are well formed.
// Missing Umami credentials are allowed (unconfigured mode).
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			fe := errs[0]
			return fmt.Errorf("invalid configuration: field %s failed rule %q", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
