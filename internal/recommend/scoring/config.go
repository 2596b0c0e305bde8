// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package scoring

import (
	"fmt"
	"math"
)

// Weights defines the contribution of each component to a recipe's total score.
type Weights struct {
	// Coverage rewards recipes the user already has ingredients for.
	// Default: 0.30.
	Coverage float64 `json:"coverage"`

	// Expiry rewards recipes that use ingredients close to expiry.
	// Default: 0.25.
	Expiry float64 `json:"expiry"`

	// Preference is the weight of the learned taste score.
	// Default: 0.25.
	Preference float64 `json:"preference"`

	// Nutrition rewards recipes that fill the week's nutrition targets.
	// Default: 0.12.
	Nutrition float64 `json:"nutrition"`

	// Variety rewards favourites and penalises recent repeats.
	// Default: 0.08.
	Variety float64 `json:"variety"`
}

// Sum returns the total of all weights.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w Weights) Sum() float64 {
	return w.Coverage + w.Expiry + w.Preference + w.Nutrition + w.Variety
}

// Config contains parameters for the scoring engine.
type Config struct {
	Weights Weights `json:"weights"`

	// DailyCalories is the per-person calorie target.
	// Default: 2000.
	DailyCalories float64 `json:"daily_calories"`

	// DailyProteinG is the per-person protein target in grams.
	// Default: 50.
	DailyProteinG float64 `json:"daily_protein_g"`

	// PlanDays is the number of days the nutrition targets cover.
	// Default: 7.
	PlanDays int `json:"plan_days"`

	// RecentPenalty is the variety value of a recently cooked recipe.
	// Default: -0.3.
	RecentPenalty float64 `json:"recent_penalty"`

	// FavouriteBonus is the variety value of a favourite recipe.
	// Default: 0.1.
	FavouriteBonus float64 `json:"favourite_bonus"`

	// MaxWorkers bounds the number of candidates scored concurrently.
	// Default: 8.
	MaxWorkers int `json:"max_workers"`
}

// DefaultConfig returns the production scoring parameters.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Coverage:   0.30,
			Expiry:     0.25,
			Preference: 0.25,
			Nutrition:  0.12,
			Variety:    0.08,
		},
		DailyCalories:  2000,
		DailyProteinG:  50,
		PlanDays:       7,
		RecentPenalty:  -0.3,
		FavouriteBonus: 0.1,
		MaxWorkers:     8,
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (c Config) Validate() error {
	for name, w := range map[string]float64{
		"coverage":   c.Weights.Coverage,
		"expiry":     c.Weights.Expiry,
		"preference": c.Weights.Preference,
		"nutrition":  c.Weights.Nutrition,
		"variety":    c.Weights.Variety,
	} {
		if w < 0 {
			return fmt.Errorf("weights.%s must be non-negative, got %f", name, w)
		}
	}
	if sum := c.Weights.Sum(); math.Abs(sum-1) > 0.001 {
		return fmt.Errorf("weights must sum to 1.0, got %f", sum)
	}
	if c.DailyCalories <= 0 {
		return fmt.Errorf("daily_calories must be positive, got %f", c.DailyCalories)
	}
	if c.DailyProteinG <= 0 {
		return fmt.Errorf("daily_protein_g must be positive, got %f", c.DailyProteinG)
	}
	if c.PlanDays < 1 {
		return fmt.Errorf("plan_days must be positive, got %d", c.PlanDays)
	}
	if c.RecentPenalty > 0 {
		return fmt.Errorf("recent_penalty must not be positive, got %f", c.RecentPenalty)
	}
	if c.FavouriteBonus < 0 {
		return fmt.Errorf("favourite_bonus must be non-negative, got %f", c.FavouriteBonus)
	}
	if c.MaxWorkers < 1 {
		return fmt.Errorf("max_workers must be positive, got %d", c.MaxWorkers)
	}
	return nil
}
