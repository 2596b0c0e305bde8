// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package models

// Recipe categories with special slot-fitting rules.
const (
	CategoryBreakfast = "breakfast"
	CategoryDessert   = "dessert"
)

// Recipe is a catalog entry as seen by the recommendation core.
// Empty Cuisine, Category and Difficulty mean the attribute is unknown.
type Recipe struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	Cuisine      string             `json:"cuisine,omitempty"`
	Category     string             `json:"category,omitempty"`
	Difficulty   string             `json:"difficulty,omitempty"`
	Servings     int                `json:"servings"`
	TotalTimeMin *int               `json:"total_time_min,omitempty"`
	Ingredients  []RecipeIngredient `json:"ingredients,omitempty"`
	Nutrition    *Nutrition         `json:"nutrition,omitempty"`
}

// RecipeIngredient is one ingredient line of a recipe.
// QuantityGrams is nil when the line is not expressed in grams ("a pinch").
type RecipeIngredient struct {
	RecipeID      int64    `json:"recipe_id"`
	IngredientID  int64    `json:"ingredient_id"`
	Name          string   `json:"name"`
	QuantityGrams *float64 `json:"quantity_grams,omitempty"`
}

// Nutrition holds per-serving nutrition facts.
type Nutrition struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
}

// Ingredient is a row of the ingredient dictionary.
type Ingredient struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// IngredientIDs returns the distinct ingredient ids used by the recipe, in line order.
func (r *Recipe) IngredientIDs() []int64 {
	seen := make(map[int64]struct{}, len(r.Ingredients))
	ids := make([]int64, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if _, ok := seen[ing.IngredientID]; ok {
			continue
		}
		seen[ing.IngredientID] = struct{}{}
		ids = append(ids, ing.IngredientID)
	}
	return ids
}
