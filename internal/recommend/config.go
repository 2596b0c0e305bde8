// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package recommend

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pantryplan/internal/recommend/preference"
	"github.com/tomtom215/pantryplan/internal/recommend/scoring"
	"github.com/tomtom215/pantryplan/internal/recommend/selection"
)

// Config contains all configuration for the recommendation service.
type Config struct {
	// Preference tunes the online taste model.
	Preference preference.Config `json:"preference"`

	// Scoring holds the composite score weights and nutrition targets.
	Scoring scoring.Config `json:"scoring"`

	// Selection controls which slots a generated plan fills.
	Selection selection.Config `json:"selection"`

	// Windows bound the inventory and history lookups.
	Windows WindowConfig `json:"windows"`

	// Retry controls optimistic-concurrency retries on preference updates.
	Retry RetryConfig `json:"retry"`

	// FetchTimeout bounds the concurrent collaborator fetches of one operation.
	// Default: 30s.
	FetchTimeout time.Duration `json:"fetch_timeout"`

	// CatalogCacheTTL is how long recipe lookups are cached. 0 disables the cache.
	// Default: 5m.
	CatalogCacheTTL time.Duration `json:"catalog_cache_ttl"`
}

// WindowConfig holds the time windows used when building a scoring context.
type WindowConfig struct {
	// ExpiryHorizon is how far ahead an inventory item counts as expiring.
	// Default: 7 days.
	ExpiryHorizon time.Duration `json:"expiry_horizon"`

	// RecentWindow is how far back a cooked recipe counts as recent and is
	// excluded from new plans.
	// Default: 14 days.
	RecentWindow time.Duration `json:"recent_window"`
}

// RetryConfig controls the read-modify-write retry loop.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	// Default: 3.
	MaxAttempts int `json:"max_attempts"`

	// BaseDelay is the first backoff; each retry doubles it.
	// Default: 1ms.
	BaseDelay time.Duration `json:"base_delay"`
}

// DefaultConfig returns a configuration with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Preference: preference.DefaultConfig(),
		Scoring:    scoring.DefaultConfig(),
		Selection:  selection.DefaultConfig(),
		Windows: WindowConfig{
			ExpiryHorizon: 7 * 24 * time.Hour,
			RecentWindow:  14 * 24 * time.Hour,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			BaseDelay:   time.Millisecond,
		},
		FetchTimeout:    30 * time.Second,
		CatalogCacheTTL: 5 * time.Minute,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := c.Preference.Validate(); err != nil {
		return fmt.Errorf("preference: %w", err)
	}
	if err := c.Scoring.Validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := c.Selection.Validate(); err != nil {
		return fmt.Errorf("selection: %w", err)
	}
	if c.Windows.ExpiryHorizon <= 0 {
		return fmt.Errorf("windows.expiry_horizon must be positive, got %v", c.Windows.ExpiryHorizon)
	}
	if c.Windows.RecentWindow <= 0 {
		return fmt.Errorf("windows.recent_window must be positive, got %v", c.Windows.RecentWindow)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.BaseDelay < 0 {
		return fmt.Errorf("retry.base_delay must be non-negative, got %v", c.Retry.BaseDelay)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %v", c.FetchTimeout)
	}
	if c.CatalogCacheTTL < 0 {
		return fmt.Errorf("catalog_cache_ttl must be non-negative, got %v", c.CatalogCacheTTL)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Selection = c.Selection.Clone()
	return &clone
}

// MarshalJSON implements custom JSON marshaling for duration fields.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	return json.Marshal(&struct {
		*Alias
		Windows struct {
			ExpiryHorizon string `json:"expiry_horizon"`
			RecentWindow  string `json:"recent_window"`
		} `json:"windows"`
		Retry struct {
			MaxAttempts int    `json:"max_attempts"`
			BaseDelay   string `json:"base_delay"`
		} `json:"retry"`
		FetchTimeout    string `json:"fetch_timeout"`
		CatalogCacheTTL string `json:"catalog_cache_ttl"`
	}{
		Alias: (*Alias)(c),
		Windows: struct {
			ExpiryHorizon string `json:"expiry_horizon"`
			RecentWindow  string `json:"recent_window"`
		}{
			ExpiryHorizon: c.Windows.ExpiryHorizon.String(),
			RecentWindow:  c.Windows.RecentWindow.String(),
		},
		Retry: struct {
			MaxAttempts int    `json:"max_attempts"`
			BaseDelay   string `json:"base_delay"`
		}{
			MaxAttempts: c.Retry.MaxAttempts,
			BaseDelay:   c.Retry.BaseDelay.String(),
		},
		FetchTimeout:    c.FetchTimeout.String(),
		CatalogCacheTTL: c.CatalogCacheTTL.String(),
	})
}
