// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

// Package selection assigns ranked recipes to the slots of a weekly plan.
//
// Selection is greedy over a single forward-only cursor: each slot takes the
// first remaining candidate that fits it, and candidates passed over for one
// slot are never revisited for a later one. Dinner must differ in cuisine
// from the same day's lunch; a missing cuisine counts as a cuisine of its
// own, so a cuisine-less dinner is rejected when lunch is empty or has no
// cuisine either. A slot with no qualifying candidate stays empty.
package selection

import (
	"fmt"
	"sort"

	"github.com/tomtom215/pantryplan/internal/models"
)

// Config contains parameters for plan selection.
type Config struct {
	// Days is the number of days in a plan, starting at day 0 (Monday).
	// Default: 7.
	Days int `json:"days"`

	// MealTypes are the slots filled each day.
	// Default: lunch, dinner.
	MealTypes []models.MealType `json:"meal_types"`

	// DinnerCuisineDiversity requires dinner to differ in cuisine from lunch.
	// Default: true.
	DinnerCuisineDiversity bool `json:"dinner_cuisine_diversity"`
}

// DefaultConfig returns the production selection parameters.
func DefaultConfig() Config {
	return Config{
		Days:                   7,
		MealTypes:              []models.MealType{models.MealLunch, models.MealDinner},
		DinnerCuisineDiversity: true,
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (c Config) Validate() error {
	if c.Days < 1 || c.Days > 7 {
		return fmt.Errorf("days must be between 1 and 7, got %d", c.Days)
	}
	if len(c.MealTypes) == 0 {
		return fmt.Errorf("meal_types must not be empty")
	}
	seen := make(map[models.MealType]struct{}, len(c.MealTypes))
	for _, mt := range c.MealTypes {
		if !mt.Valid() {
			return fmt.Errorf("unknown meal type %q", mt)
		}
		if _, ok := seen[mt]; ok {
			return fmt.Errorf("duplicate meal type %q", mt)
		}
		seen[mt] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy of the configuration.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (c Config) Clone() Config {
	c.MealTypes = append([]models.MealType(nil), c.MealTypes...)
	return c
}

// Selector fills plan slots from a ranked candidate list.
type Selector struct {
	days      int
	mealTypes []models.MealType
	diversity bool
}

// NewSelector creates a selector. Meal types are filled in their natural
// daily order regardless of the order given.
//
//nolint:gocritic // config passed by value is intentional
func NewSelector(cfg Config) *Selector {
	mealTypes := append([]models.MealType(nil), cfg.MealTypes...)
	sort.SliceStable(mealTypes, func(i, j int) bool {
		return mealTypes[i].Order() < mealTypes[j].Order()
	})
	return &Selector{
		days:      cfg.Days,
		mealTypes: mealTypes,
		diversity: cfg.DinnerCuisineDiversity,
	}
}

// Fits reports whether a recipe category may be served at a meal type.
// Breakfast recipes fit only breakfast and desserts fit no slot.
func Fits(category string, mealType models.MealType) bool {
	switch category {
	case models.CategoryBreakfast:
		return mealType == models.MealBreakfast
	case models.CategoryDessert:
		return false
	default:
		return true
	}
}

// Select assigns candidates, which must already be ranked best first, to the
// plan grid. The returned slots are ordered by day then meal type and carry
// householdSize as their servings override; ids and plan ids are left unset.
func (s *Selector) Select(ranked []models.ScoredRecipe, householdSize int) []models.MealSlot {
	var slots []models.MealSlot
	used := make(map[int64]struct{})
	cursor := 0

	for day := 0; day < s.days; day++ {
		lunchCuisine := ""

		for _, mt := range s.mealTypes {
			accept := func(r *models.ScoredRecipe) bool {
				if _, ok := used[r.RecipeID]; ok {
					return false
				}
				if !Fits(r.Category, mt) {
					return false
				}
				if mt == models.MealDinner && s.diversity {
					return r.Cuisine != lunchCuisine
				}
				return true
			}

			pick := -1
			for cursor < len(ranked) {
				i := cursor
				cursor++
				if accept(&ranked[i]) {
					pick = i
					break
				}
			}
			if pick < 0 {
				continue
			}

			r := ranked[pick]
			used[r.RecipeID] = struct{}{}
			if mt == models.MealLunch {
				lunchCuisine = r.Cuisine
			}

			servings := householdSize
			slots = append(slots, models.MealSlot{
				RecipeID:         r.RecipeID,
				DayOfWeek:        day,
				MealType:         mt,
				ServingsOverride: &servings,
			})
		}
	}

	return slots
}
