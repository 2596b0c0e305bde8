// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

/*
schema.go - Database Schema Management

Tables:
  - ingredients, recipes, recipe_ingredients, recipe_nutrition: the shared catalog
  - inventory_items: per-user pantry with optional expiry dates
  - cooking_history, user_favorites: per-user history feeding the variety score
  - user_preferences: one learned preference vector per user, weight maps as
    JSON text, guarded by a version column
  - meal_plans, meal_plan_slots: generated weekly plans

Timestamps are stored as UTC TIMESTAMP values. Foreign keys are not declared;
plan replacement deletes and re-inserts inside one transaction.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

// createIndexes creates the secondary indexes
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range indexQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute index query: %s: %w", query, err)
		}
	}
	return nil
}

var tableCreationQueries = []string{
	`CREATE TABLE IF NOT EXISTS ingredients (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS recipes (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		cuisine TEXT,
		category TEXT,
		difficulty TEXT,
		servings INTEGER NOT NULL DEFAULT 1,
		total_time_min INTEGER
	)`,

	`CREATE TABLE IF NOT EXISTS recipe_ingredients (
		recipe_id BIGINT NOT NULL,
		ingredient_id BIGINT NOT NULL,
		quantity_grams DOUBLE
	)`,

	`CREATE TABLE IF NOT EXISTS recipe_nutrition (
		recipe_id BIGINT PRIMARY KEY,
		calories DOUBLE NOT NULL DEFAULT 0,
		protein_g DOUBLE NOT NULL DEFAULT 0,
		carbs_g DOUBLE NOT NULL DEFAULT 0,
		fat_g DOUBLE NOT NULL DEFAULT 0,
		fiber_g DOUBLE NOT NULL DEFAULT 0
	)`,

	`CREATE SEQUENCE IF NOT EXISTS inventory_items_id_seq START 1`,

	`CREATE TABLE IF NOT EXISTS inventory_items (
		id BIGINT PRIMARY KEY DEFAULT nextval('inventory_items_id_seq'),
		user_id UUID NOT NULL,
		ingredient_id BIGINT NOT NULL,
		quantity_grams DOUBLE NOT NULL DEFAULT 0,
		expiry_date DATE
	)`,

	`CREATE TABLE IF NOT EXISTS cooking_history (
		user_id UUID NOT NULL,
		recipe_id BIGINT NOT NULL,
		cooked_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS user_favorites (
		user_id UUID NOT NULL,
		recipe_id BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (user_id, recipe_id)
	)`,

	`CREATE TABLE IF NOT EXISTS user_preferences (
		user_id UUID PRIMARY KEY,
		cuisine_weights TEXT NOT NULL,
		ingredient_weights TEXT NOT NULL,
		difficulty_weights TEXT NOT NULL,
		macro_bias TEXT NOT NULL,
		preferred_time_min INTEGER NOT NULL,
		interaction_count INTEGER NOT NULL,
		version BIGINT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS meal_plans (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		week_start TIMESTAMP NOT NULL,
		is_ai_generated BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS meal_plan_slots (
		id UUID PRIMARY KEY,
		meal_plan_id UUID NOT NULL,
		recipe_id BIGINT NOT NULL,
		day_of_week INTEGER NOT NULL,
		meal_type TEXT NOT NULL,
		servings_override INTEGER,
		is_completed BOOLEAN NOT NULL DEFAULT false
	)`,
}

var indexQueries = []string{
	`CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_recipe ON recipe_ingredients(recipe_id)`,
	`CREATE INDEX IF NOT EXISTS idx_inventory_user ON inventory_items(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_cooking_history_user_time ON cooking_history(user_id, cooked_at)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_meal_plans_user_week ON meal_plans(user_id, week_start)`,
	`CREATE INDEX IF NOT EXISTS idx_meal_plan_slots_plan ON meal_plan_slots(meal_plan_id)`,
}
