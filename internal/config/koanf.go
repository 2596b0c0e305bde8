// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"pantryplan.yaml",
	"pantryplan.yml",
	"/etc/pantryplan/config.yaml",
	"/etc/pantryplan/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:      "/data/pantryplan.duckdb",
			MaxMemory: "1GB",
			Threads:   0, // 0 = use runtime.NumCPU()
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: RecommendConfig{
			LearningRate:            0.1,
			IngredientDamping:       0.5,
			TimeToleranceMin:        60,
			DefaultPreferredTimeMin: 30,
			Weights: ScoreWeights{
				Coverage:   0.30,
				Expiry:     0.25,
				Preference: 0.25,
				Nutrition:  0.12,
				Variety:    0.08,
			},
			DailyCalories:          2000,
			DailyProteinG:          50,
			RecentPenalty:          -0.3,
			FavouriteBonus:         0.1,
			ScoreWorkers:           8,
			MealTypes:              []string{"lunch", "dinner"},
			DinnerCuisineDiversity: true,
			ExpiryHorizon:          7 * 24 * time.Hour,
			RecentWindow:           14 * 24 * time.Hour,
			MaxRetries:             3,
			RetryBaseDelay:         time.Millisecond,
			FetchTimeout:           30 * time.Second,
			CatalogCacheTTL:        5 * time.Minute,
		},
	}
}

// LoadWithKoanf loads configuration in three layers: struct defaults, an
// optional YAML file, then environment variables. explicitPath, when set,
// takes precedence over CONFIG_PATH and the default search paths.
func LoadWithKoanf(explicitPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath := explicitPath
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"recommend.meal_types",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Database
	"duckdb_path":       "database.path",
	"database_path":     "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Preference learning
	"recommend_learning_rate":              "recommend.learning_rate",
	"recommend_ingredient_damping":         "recommend.ingredient_damping",
	"recommend_time_tolerance_min":         "recommend.time_tolerance_min",
	"recommend_default_preferred_time_min": "recommend.default_preferred_time_min",

	// Scoring
	"recommend_weight_coverage":   "recommend.weights.coverage",
	"recommend_weight_expiry":     "recommend.weights.expiry",
	"recommend_weight_preference": "recommend.weights.preference",
	"recommend_weight_nutrition":  "recommend.weights.nutrition",
	"recommend_weight_variety":    "recommend.weights.variety",
	"recommend_daily_calories":    "recommend.daily_calories",
	"recommend_daily_protein_g":   "recommend.daily_protein_g",
	"recommend_recent_penalty":    "recommend.recent_penalty",
	"recommend_favourite_bonus":   "recommend.favourite_bonus",
	"recommend_score_workers":     "recommend.score_workers",

	// Selection
	"recommend_meal_types":               "recommend.meal_types",
	"recommend_dinner_cuisine_diversity": "recommend.dinner_cuisine_diversity",

	// Windows and concurrency
	"recommend_expiry_horizon":    "recommend.expiry_horizon",
	"recommend_recent_window":     "recommend.recent_window",
	"recommend_max_retries":       "recommend.max_retries",
	"recommend_retry_base_delay":  "recommend.retry_base_delay",
	"recommend_fetch_timeout":     "recommend.fetch_timeout",
	"recommend_catalog_cache_ttl": "recommend.catalog_cache_ttl",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped, which keeps unrelated
// environment variables out of the configuration.
//
// Examples:
//   - DUCKDB_PATH -> database.path
//   - LOG_LEVEL -> logging.level
//   - RECOMMEND_WEIGHT_COVERAGE -> recommend.weights.coverage
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
