// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package database

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/pantryplan/internal/models"
)

// Fixture is a bulk load of catalog and per-user data, as read by the
// "import" command.
type Fixture struct {
	Ingredients []models.Ingredient    `json:"ingredients"`
	Recipes     []models.Recipe        `json:"recipes"`
	Inventory   []models.InventoryItem `json:"inventory"`
	History     []models.CookingRecord `json:"history"`
	Favourites  []FavouriteRecord      `json:"favourites"`
}

// FavouriteRecord is one favourite in a fixture.
type FavouriteRecord struct {
	UserID    uuid.UUID `json:"user_id"`
	RecipeID  int64     `json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ImportStats counts the rows written by Import.
type ImportStats struct {
	Ingredients int `json:"ingredients"`
	Recipes     int `json:"recipes"`
	Inventory   int `json:"inventory"`
	History     int `json:"history"`
	Favourites  int `json:"favourites"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Duration returns how long the import took.
func (s *ImportStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// DecodeFixture reads a JSON fixture.
func DecodeFixture(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	return &f, nil
}

// Import writes a fixture. Ingredients and recipes are upserted; inventory,
// history and favourites are appended. Import stops at the first failing
// row and returns the counts written so far.
func (db *DB) Import(ctx context.Context, f *Fixture) (*ImportStats, error) {
	stats := &ImportStats{StartTime: time.Now()}
	defer func() { stats.EndTime = time.Now() }()

	for i := range f.Ingredients {
		if err := db.UpsertIngredient(ctx, &f.Ingredients[i]); err != nil {
			return stats, err
		}
		stats.Ingredients++
	}
	for i := range f.Recipes {
		if err := db.SaveRecipe(ctx, &f.Recipes[i]); err != nil {
			return stats, err
		}
		stats.Recipes++
	}
	for i := range f.Inventory {
		if err := db.AddInventoryItem(ctx, &f.Inventory[i]); err != nil {
			return stats, err
		}
		stats.Inventory++
	}
	for i := range f.History {
		if err := db.RecordCooking(ctx, &f.History[i]); err != nil {
			return stats, err
		}
		stats.History++
	}
	for _, fav := range f.Favourites {
		createdAt := fav.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		if err := db.AddFavourite(ctx, fav.UserID, fav.RecipeID, createdAt); err != nil {
			return stats, err
		}
		stats.Favourites++
	}

	db.logger.Info().
		Int("ingredients", stats.Ingredients).
		Int("recipes", stats.Recipes).
		Int("inventory", stats.Inventory).
		Int("history", stats.History).
		Int("favourites", stats.Favourites).
		Dur("duration", stats.Duration()).
		Msg("Fixture imported")

	return stats, nil
}
