// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path      string `koanf:"path"`       // ":memory:" for an in-memory database
	MaxMemory string `koanf:"max_memory"` // DuckDB memory limit, e.g. "1GB"
	Threads   int    `koanf:"threads"`    // Number of DuckDB threads (0 = use NumCPU)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// RecommendConfig holds meal recommendation settings.
//
// Environment Variables:
//   - RECOMMEND_LEARNING_RATE: preference EMA step (default: 0.1)
//   - RECOMMEND_INGREDIENT_DAMPING: ingredient signal scale (default: 0.5)
//   - RECOMMEND_WEIGHT_COVERAGE, _EXPIRY, _PREFERENCE, _NUTRITION, _VARIETY
//   - RECOMMEND_MEAL_TYPES: comma-separated slots per day (default: lunch,dinner)
//   - RECOMMEND_EXPIRY_HORIZON: window for "expiring soon" (default: 168h)
//   - RECOMMEND_RECENT_WINDOW: window for "recently cooked" (default: 336h)
//   - RECOMMEND_MAX_RETRIES: preference update attempts on conflict (default: 3)
//   - RECOMMEND_CATALOG_CACHE_TTL: recipe cache lifetime, 0 disables (default: 5m)
type RecommendConfig struct {
	// Preference learning
	LearningRate            float64 `koanf:"learning_rate"`
	IngredientDamping       float64 `koanf:"ingredient_damping"`
	TimeToleranceMin        float64 `koanf:"time_tolerance_min"`
	DefaultPreferredTimeMin int     `koanf:"default_preferred_time_min"`

	// Scoring
	Weights        ScoreWeights `koanf:"weights"`
	DailyCalories  float64      `koanf:"daily_calories"`
	DailyProteinG  float64      `koanf:"daily_protein_g"`
	RecentPenalty  float64      `koanf:"recent_penalty"`
	FavouriteBonus float64      `koanf:"favourite_bonus"`
	ScoreWorkers   int          `koanf:"score_workers"`

	// Selection
	MealTypes              []string `koanf:"meal_types"`
	DinnerCuisineDiversity bool     `koanf:"dinner_cuisine_diversity"`

	// Windows
	ExpiryHorizon time.Duration `koanf:"expiry_horizon"`
	RecentWindow  time.Duration `koanf:"recent_window"`

	// Concurrency
	MaxRetries     int           `koanf:"max_retries"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay"`
	FetchTimeout   time.Duration `koanf:"fetch_timeout"`

	// Caching
	CatalogCacheTTL time.Duration `koanf:"catalog_cache_ttl"`
}

// ScoreWeights holds the composite score weights. They must sum to 1.
type ScoreWeights struct {
	Coverage   float64 `koanf:"coverage"`
	Expiry     float64 `koanf:"expiry"`
	Preference float64 `koanf:"preference"`
	Nutrition  float64 `koanf:"nutrition"`
	Variety    float64 `koanf:"variety"`
}

// Validate checks the configuration for errors that would prevent startup.
// Detailed recommend tuning is validated again by the recommend package.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("database.threads must be non-negative, got %d", c.Database.Threads)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled":
	default:
		return fmt.Errorf("logging.level %q is not a known level", c.Logging.Level)
	}

	r := c.Recommend
	if r.LearningRate <= 0 || r.LearningRate > 1 {
		return fmt.Errorf("recommend.learning_rate must be in (0, 1], got %f", r.LearningRate)
	}
	if len(r.MealTypes) == 0 {
		return fmt.Errorf("recommend.meal_types must not be empty")
	}
	if r.ExpiryHorizon <= 0 {
		return fmt.Errorf("recommend.expiry_horizon must be positive, got %v", r.ExpiryHorizon)
	}
	if r.RecentWindow <= 0 {
		return fmt.Errorf("recommend.recent_window must be positive, got %v", r.RecentWindow)
	}
	if r.MaxRetries < 1 {
		return fmt.Errorf("recommend.max_retries must be at least 1, got %d", r.MaxRetries)
	}
	if r.FetchTimeout <= 0 {
		return fmt.Errorf("recommend.fetch_timeout must be positive, got %v", r.FetchTimeout)
	}
	if r.CatalogCacheTTL < 0 {
		return fmt.Errorf("recommend.catalog_cache_ttl must be non-negative, got %v", r.CatalogCacheTTL)
	}
	return nil
}
