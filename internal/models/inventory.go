// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is an ingredient the user currently has on hand.
type InventoryItem struct {
	ID            int64      `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	IngredientID  int64      `json:"ingredient_id"`
	Name          string     `json:"name,omitempty"`
	QuantityGrams float64    `json:"quantity_grams"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
}

// ExpiresBy reports whether the item has an expiry date on or before t.
func (i InventoryItem) ExpiresBy(t time.Time) bool {
	return i.ExpiryDate != nil && !i.ExpiryDate.After(t)
}

// CookingRecord is one entry of a user's cooking history.
type CookingRecord struct {
	UserID   uuid.UUID `json:"user_id"`
	RecipeID int64     `json:"recipe_id"`
	CookedAt time.Time `json:"cooked_at"`
}
