// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package models

import (
	"time"

	"github.com/google/uuid"
)

// MacroBias is the learned lean toward protein, carbohydrate and fat heavy recipes.
type MacroBias struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// PreferenceVector is the learned taste profile of one user.
//
// All weights live in [-1, 1] and are stored rounded to three decimals.
// Ingredient weights are keyed by ingredient name.
type PreferenceVector struct {
	UserID            uuid.UUID          `json:"user_id"`
	CuisineWeights    map[string]float64 `json:"cuisine_weights"`
	IngredientWeights map[string]float64 `json:"ingredient_weights"`
	DifficultyWeights map[string]float64 `json:"difficulty_weights"`
	MacroBias         MacroBias          `json:"macro_bias"`
	PreferredTimeMin  int                `json:"preferred_time_min"`
	InteractionCount  int                `json:"interaction_count"`

	// Version is bumped on every successful save and guards concurrent updates.
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy of the vector.
func (p *PreferenceVector) Clone() *PreferenceVector {
	if p == nil {
		return nil
	}
	c := *p
	c.CuisineWeights = cloneWeights(p.CuisineWeights)
	c.IngredientWeights = cloneWeights(p.IngredientWeights)
	c.DifficultyWeights = cloneWeights(p.DifficultyWeights)
	return &c
}

func cloneWeights(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
