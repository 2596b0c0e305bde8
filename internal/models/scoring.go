// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package models

// ScoreBreakdown holds the weighted components that make up a recipe's total score.
type ScoreBreakdown struct {
	Coverage   float64 `json:"coverage"`
	Expiry     float64 `json:"expiry"`
	Preference float64 `json:"preference"`
	Nutrition  float64 `json:"nutrition"`
	Variety    float64 `json:"variety"`
}

// ScoredRecipe is a candidate recipe with its composite score.
type ScoredRecipe struct {
	RecipeID     int64          `json:"recipe_id"`
	Name         string         `json:"name"`
	TotalScore   float64        `json:"total_score"`
	Cuisine      string         `json:"cuisine,omitempty"`
	Category     string         `json:"category,omitempty"`
	TotalTimeMin *int           `json:"total_time_min,omitempty"`
	Breakdown    ScoreBreakdown `json:"breakdown"`
}

// ShoppingListEntry is one ingredient the user still needs to buy for the week.
type ShoppingListEntry struct {
	IngredientID int64   `json:"ingredient_id"`
	Name         string  `json:"name"`
	NeededGrams  float64 `json:"needed_grams"`
	HaveGrams    float64 `json:"have_grams"`
	ToBuyGrams   float64 `json:"to_buy_grams"`
	InInventory  bool    `json:"in_inventory"`
}
