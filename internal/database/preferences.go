// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/pantryplan/internal/metrics"
	"github.com/tomtom215/pantryplan/internal/models"
	"github.com/tomtom215/pantryplan/internal/recommend"
)

// GetPreferences returns a user's preference vector, or an error wrapping
// recommend.ErrNotFound.
func (db *DB) GetPreferences(ctx context.Context, userID uuid.UUID) (prefs *models.PreferenceVector, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { err = observe("get_preferences", "user_preferences", start, err) }()

	var cuisine, ingredient, difficulty, macro string
	p := &models.PreferenceVector{UserID: userID}
	err = db.conn.QueryRowContext(ctx, `SELECT cuisine_weights, ingredient_weights, difficulty_weights, macro_bias,
			preferred_time_min, interaction_count, version, updated_at
		FROM user_preferences WHERE user_id = ?`, userID.String()).
		Scan(&cuisine, &ingredient, &difficulty, &macro,
			&p.PreferredTimeMin, &p.InteractionCount, &p.Version, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("preferences for %s: %w", userID, err)
	}

	if err := decodeWeights(cuisine, &p.CuisineWeights); err != nil {
		return nil, fmt.Errorf("cuisine_weights: %w", err)
	}
	if err := decodeWeights(ingredient, &p.IngredientWeights); err != nil {
		return nil, fmt.Errorf("ingredient_weights: %w", err)
	}
	if err := decodeWeights(difficulty, &p.DifficultyWeights); err != nil {
		return nil, fmt.Errorf("difficulty_weights: %w", err)
	}
	if err := json.Unmarshal([]byte(macro), &p.MacroBias); err != nil {
		return nil, fmt.Errorf("macro_bias: %w", err)
	}
	p.UpdatedAt = p.UpdatedAt.UTC()

	return p, nil
}

// SavePreferences stores prefs if the stored version equals expectedVersion.
// An expectedVersion of 0 inserts a new row. A stale version or a concurrent
// first insert returns an error wrapping recommend.ErrConflict. On success
// prefs.Version is the new stored version.
func (db *DB) SavePreferences(ctx context.Context, prefs *models.PreferenceVector, expectedVersion int64) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() {
		if isConflictErr(err) {
			metrics.RecordTransactionConflict("save_preferences")
		}
		err = observe("save_preferences", "user_preferences", start, err)
	}()

	cuisine, ingredient, difficulty, macro, err := encodePreferences(prefs)
	if err != nil {
		return err
	}
	next := expectedVersion + 1
	updatedAt := prefs.UpdatedAt.UTC()

	if expectedVersion == 0 {
		_, err = db.conn.ExecContext(ctx, `INSERT INTO user_preferences (
				user_id, cuisine_weights, ingredient_weights, difficulty_weights, macro_bias,
				preferred_time_min, interaction_count, version, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			prefs.UserID.String(), cuisine, ingredient, difficulty, macro,
			prefs.PreferredTimeMin, prefs.InteractionCount, next, updatedAt)
		if isConstraintViolation(err) {
			return fmt.Errorf("preferences for %s already exist: %w", prefs.UserID, recommend.ErrConflict)
		}
		if err != nil {
			return fmt.Errorf("failed to insert preferences: %w", err)
		}
		prefs.Version = next
		return nil
	}

	res, err := db.conn.ExecContext(ctx, `UPDATE user_preferences SET
			cuisine_weights = ?, ingredient_weights = ?, difficulty_weights = ?, macro_bias = ?,
			preferred_time_min = ?, interaction_count = ?, version = ?, updated_at = ?
		WHERE user_id = ? AND version = ?`,
		cuisine, ingredient, difficulty, macro,
		prefs.PreferredTimeMin, prefs.InteractionCount, next, updatedAt,
		prefs.UserID.String(), expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("preferences for %s changed since version %d: %w", prefs.UserID, expectedVersion, recommend.ErrConflict)
	}
	prefs.Version = next
	return nil
}

func encodePreferences(p *models.PreferenceVector) (cuisine, ingredient, difficulty, macro string, err error) {
	parts := []interface{}{nonNil(p.CuisineWeights), nonNil(p.IngredientWeights), nonNil(p.DifficultyWeights), p.MacroBias}
	out := make([]string, len(parts))
	for i, v := range parts {
		b, err := json.Marshal(v)
		if err != nil {
			return "", "", "", "", fmt.Errorf("failed to encode preferences: %w", err)
		}
		out[i] = string(b)
	}
	return out[0], out[1], out[2], out[3], nil
}

func decodeWeights(s string, dst *map[string]float64) error {
	m := map[string]float64{}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return err
	}
	*dst = m
	return nil
}

func nonNil(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}
	return m
}

func isConflictErr(err error) bool {
	return errors.Is(err, recommend.ErrConflict) || isTransactionConflict(err)
}
