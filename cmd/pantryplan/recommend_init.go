// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package main

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/pantryplan/internal/config"
	"github.com/tomtom215/pantryplan/internal/database"
	"github.com/tomtom215/pantryplan/internal/models"
	"github.com/tomtom215/pantryplan/internal/recommend"
	"github.com/tomtom215/pantryplan/internal/recommend/preference"
	"github.com/tomtom215/pantryplan/internal/recommend/scoring"
	"github.com/tomtom215/pantryplan/internal/recommend/selection"
)

// buildRecommendConfig maps the recommend section of the application config
// onto engine parameters. Values the application config does not expose keep
// their engine defaults.
func buildRecommendConfig(cfg *config.Config) *recommend.Config {
	rc := cfg.Recommend
	out := recommend.DefaultConfig()

	out.Preference = preference.Config{
		LearningRate:            rc.LearningRate,
		IngredientDamping:       rc.IngredientDamping,
		TimeToleranceMin:        rc.TimeToleranceMin,
		DefaultPreferredTimeMin: rc.DefaultPreferredTimeMin,
	}

	out.Scoring.Weights = scoring.Weights{
		Coverage:   rc.Weights.Coverage,
		Expiry:     rc.Weights.Expiry,
		Preference: rc.Weights.Preference,
		Nutrition:  rc.Weights.Nutrition,
		Variety:    rc.Weights.Variety,
	}
	out.Scoring.DailyCalories = rc.DailyCalories
	out.Scoring.DailyProteinG = rc.DailyProteinG
	out.Scoring.RecentPenalty = rc.RecentPenalty
	out.Scoring.FavouriteBonus = rc.FavouriteBonus
	if rc.ScoreWorkers > 0 {
		out.Scoring.MaxWorkers = rc.ScoreWorkers
	}

	out.Selection = selection.Config{
		Days:                   out.Selection.Days,
		MealTypes:              mealTypes(rc.MealTypes),
		DinnerCuisineDiversity: rc.DinnerCuisineDiversity,
	}

	out.Windows = recommend.WindowConfig{
		ExpiryHorizon: rc.ExpiryHorizon,
		RecentWindow:  rc.RecentWindow,
	}
	out.Retry = recommend.RetryConfig{
		MaxAttempts: rc.MaxRetries,
		BaseDelay:   rc.RetryBaseDelay,
	}
	out.FetchTimeout = rc.FetchTimeout
	out.CatalogCacheTTL = rc.CatalogCacheTTL

	return out
}

func mealTypes(names []string) []models.MealType {
	out := make([]models.MealType, len(names))
	for i, n := range names {
		out[i] = models.MealType(n)
	}
	return out
}

// newRecommendService wires the DuckDB store into every collaborator slot.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func newRecommendService(cfg *config.Config, db *database.DB, logger zerolog.Logger) (*recommend.Service, error) {
	engineCfg := buildRecommendConfig(cfg)

	logger.Debug().
		Float64("learning_rate", engineCfg.Preference.LearningRate).
		Dur("expiry_horizon", engineCfg.Windows.ExpiryHorizon).
		Dur("recent_window", engineCfg.Windows.RecentWindow).
		Int("max_attempts", engineCfg.Retry.MaxAttempts).
		Msg("initializing recommendation service")

	return recommend.NewService(engineCfg, recommend.Dependencies{
		Catalog:     db,
		Inventory:   db,
		History:     db,
		Preferences: db,
		Plans:       db,
	}, logger)
}
