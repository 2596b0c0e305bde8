// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/pantryplan/internal/database/query"
	"github.com/tomtom215/pantryplan/internal/models"
)

// RecentlyCooked returns the distinct recipe ids a user cooked at or after since.
func (db *DB) RecentlyCooked(ctx context.Context, userID uuid.UUID, since time.Time) (ids []int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { err = observe("recently_cooked", "cooking_history", start, err) }()

	where, args := query.NewWhereBuilder().
		AddClause("user_id = ?", userID.String()).
		AddSince("cooked_at", since).
		BuildWithPrefix()

	return db.queryIDs(ctx, `SELECT DISTINCT recipe_id FROM cooking_history `+where+` ORDER BY recipe_id`, args...)
}

// Favourites returns a user's favourite recipe ids.
func (db *DB) Favourites(ctx context.Context, userID uuid.UUID) (ids []int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { err = observe("favourites", "user_favorites", start, err) }()

	return db.queryIDs(ctx, `SELECT recipe_id FROM user_favorites WHERE user_id = ? ORDER BY recipe_id`, userID.String())
}

func (db *DB) queryIDs(ctx context.Context, q string, args ...interface{}) ([]int64, error) {
	rows, err := db.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ids: %w", err)
	}
	defer closeWithLog(rows, "rows")

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ids: %w", err)
	}
	return ids, nil
}

// RecordCooking appends an entry to a user's cooking history.
func (db *DB) RecordCooking(ctx context.Context, rec *models.CookingRecord) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { err = observe("record_cooking", "cooking_history", start, err) }()

	if _, err = db.conn.ExecContext(ctx, `INSERT INTO cooking_history (user_id, recipe_id, cooked_at) VALUES (?, ?, ?)`,
		rec.UserID.String(), rec.RecipeID, rec.CookedAt.UTC()); err != nil {
		return fmt.Errorf("failed to insert cooking record: %w", err)
	}
	return nil
}

// AddFavourite marks a recipe as a user's favourite. Adding it twice is a no-op.
func (db *DB) AddFavourite(ctx context.Context, userID uuid.UUID, recipeID int64, at time.Time) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { err = observe("add_favourite", "user_favorites", start, err) }()

	if _, err = db.conn.ExecContext(ctx, `INSERT INTO user_favorites (user_id, recipe_id, created_at) VALUES (?, ?, ?)
		ON CONFLICT DO NOTHING`, userID.String(), recipeID, at.UTC()); err != nil {
		return fmt.Errorf("failed to insert favourite: %w", err)
	}
	return nil
}
