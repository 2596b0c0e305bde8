// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

/*
Package models defines the data structures shared by the Pantryplan packages.

Key Components:

  - Recipe, RecipeIngredient, Nutrition, Ingredient: the shared catalog
  - InventoryItem, CookingRecord: per-user pantry and history
  - PreferenceVector, MacroBias: the learned taste profile of one user
  - MealPlan, MealSlot, MealType: a generated week of meals
  - ScoredRecipe, ScoreBreakdown, ShoppingListEntry: computed results, never stored

All types carry JSON tags with snake_case keys. Optional recipe attributes
are pointers (TotalTimeMin, Nutrition, QuantityGrams) or empty strings
(Cuisine, Category, Difficulty).
*/
package models
