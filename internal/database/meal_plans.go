// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/pantryplan/internal/metrics"
	"github.com/tomtom215/pantryplan/internal/models"
	"github.com/tomtom215/pantryplan/internal/recommend"
)

// ReplacePlan deletes any plan of the same user and week and stores plan with
// its slots, all in one transaction. DuckDB transaction conflicts are retried
// with exponential backoff (1ms, 2ms, 4ms).
func (db *DB) ReplacePlan(ctx context.Context, plan *models.MealPlan) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { err = observe("replace_plan", "meal_plans", start, err) }()

	var lastErr error
	for attempt := 0; attempt < db.maxConflictRetries; attempt++ {
		err := db.doReplacePlan(ctx, plan)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return fmt.Errorf("operation timed out or canceled: %w", ctx.Err())
		}
		if isInternalError(err) {
			return fmt.Errorf("DuckDB internal error: %w", err)
		}
		if !isTransactionConflict(err) {
			return err
		}

		metrics.RecordTransactionConflict("replace_plan")
		if attempt < db.maxConflictRetries-1 {
			backoff := time.Millisecond * time.Duration(1<<uint(attempt))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (db *DB) doReplacePlan(ctx context.Context, plan *models.MealPlan) (err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			db.rollback(tx, err)
		}
	}()

	userID := plan.UserID.String()
	weekStart := plan.WeekStart.UTC()

	if _, err = tx.ExecContext(ctx, `DELETE FROM meal_plan_slots WHERE meal_plan_id IN (
			SELECT id FROM meal_plans WHERE user_id = ? AND week_start = ?)`, userID, weekStart); err != nil {
		return fmt.Errorf("failed to delete old slots: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM meal_plans WHERE user_id = ? AND week_start = ?`, userID, weekStart); err != nil {
		return fmt.Errorf("failed to delete old plan: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `INSERT INTO meal_plans (id, user_id, week_start, is_ai_generated, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		plan.ID.String(), userID, weekStart, plan.IsAIGenerated, plan.CreatedAt.UTC(), plan.UpdatedAt.UTC()); err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}

	if len(plan.Slots) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO meal_plan_slots (
				id, meal_plan_id, recipe_id, day_of_week, meal_type, servings_override, is_completed
			) VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare slot insert: %w", err)
		}
		defer closeWithLog(stmt, "prepared statement")

		for i := range plan.Slots {
			s := &plan.Slots[i]
			var servings interface{}
			if s.ServingsOverride != nil {
				servings = *s.ServingsOverride
			}
			if _, err := stmt.ExecContext(ctx, s.ID.String(), plan.ID.String(), s.RecipeID, s.DayOfWeek,
				string(s.MealType), servings, s.IsCompleted); err != nil {
				return fmt.Errorf("failed to insert slot: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit plan: %w", err)
	}
	return nil
}

// GetPlan returns a user's plan for the week starting at weekStart.
func (db *DB) GetPlan(ctx context.Context, userID uuid.UUID, weekStart time.Time) (plan *models.MealPlan, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { err = observe("get_plan", "meal_plans", start, err) }()

	return db.queryPlan(ctx, `WHERE user_id = ? AND week_start = ?`, userID.String(), weekStart.UTC())
}

// GetPlanByID returns a plan by id.
func (db *DB) GetPlanByID(ctx context.Context, planID uuid.UUID) (plan *models.MealPlan, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { err = observe("get_plan_by_id", "meal_plans", start, err) }()

	return db.queryPlan(ctx, `WHERE id = ?`, planID.String())
}

func (db *DB) queryPlan(ctx context.Context, where string, args ...interface{}) (*models.MealPlan, error) {
	p := &models.MealPlan{}
	err := db.conn.QueryRowContext(ctx, `SELECT CAST(id AS VARCHAR), CAST(user_id AS VARCHAR), week_start,
			is_ai_generated, created_at, updated_at
		FROM meal_plans `+where+`
		ORDER BY created_at DESC
		LIMIT 1`, args...).
		Scan(&p.ID, &p.UserID, &p.WeekStart, &p.IsAIGenerated, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("meal plan: %w", err)
	}
	p.WeekStart = p.WeekStart.UTC()
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()

	rows, err := db.conn.QueryContext(ctx, `SELECT CAST(id AS VARCHAR), recipe_id, day_of_week, meal_type,
			servings_override, is_completed
		FROM meal_plan_slots
		WHERE meal_plan_id = ?`, p.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query slots: %w", err)
	}
	defer closeWithLog(rows, "rows")

	p.Slots = []models.MealSlot{}
	for rows.Next() {
		var (
			s        models.MealSlot
			mealType string
			servings sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &s.RecipeID, &s.DayOfWeek, &mealType, &servings, &s.IsCompleted); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		s.PlanID = p.ID
		s.MealType = models.MealType(mealType)
		if servings.Valid {
			v := int(servings.Int64)
			s.ServingsOverride = &v
		}
		p.Slots = append(p.Slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating slots: %w", err)
	}

	models.SortSlots(p.Slots)
	return p, nil
}

// CompleteSlot marks one slot of a plan completed.
func (db *DB) CompleteSlot(ctx context.Context, planID, slotID uuid.UUID) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { err = observe("complete_slot", "meal_plan_slots", start, err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			db.rollback(tx, err)
		}
	}()

	res, err := tx.ExecContext(ctx, `UPDATE meal_plan_slots SET is_completed = true
		WHERE id = ? AND meal_plan_id = ?`, slotID.String(), planID.String())
	if err != nil {
		return fmt.Errorf("failed to complete slot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("slot %s of plan %s: %w", slotID, planID, recommend.ErrNotFound)
	}

	if _, err = tx.ExecContext(ctx, `UPDATE meal_plans SET updated_at = ? WHERE id = ?`,
		time.Now().UTC(), planID.String()); err != nil {
		return fmt.Errorf("failed to touch plan: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit slot completion: %w", err)
	}
	return nil
}

// rollback rolls tx back, logging failures alongside the error that caused it.
func (db *DB) rollback(tx *sql.Tx, cause error) {
	if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
		db.logger.Error().
			Err(rbErr).
			AnErr("original_error", cause).
			Msg("Transaction rollback failed")
	}
}
