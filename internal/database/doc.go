// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

// Package database provides DuckDB storage for Pantryplan.
//
// # Overview
//
// DB implements every collaborator interface of the recommend package
// (CatalogReader, InventoryReader, HistoryReader, PreferenceStore and
// PlanStore), so one *DB can be passed for all of recommend.Dependencies.
//
// # Architecture
//
//   - database.go: connection lifecycle, checkpointing and context defaults
//   - connection.go: pool settings and DuckDB error detection
//   - errors.go: mapping driver errors onto recommend sentinels, query metrics
//   - schema.go: table and index creation
//   - catalog.go: recipes, ingredient lines, nutrition
//   - inventory.go: per-user pantry
//   - history.go: cooking history and favourites
//   - preferences.go: versioned preference vectors
//   - meal_plans.go: weekly plans and slot completion
//   - seed.go: bulk import of fixture files
//
// # Error Handling
//
// Missing rows are reported as errors wrapping recommend.ErrNotFound. Version
// mismatches on preference saves and DuckDB transaction conflicts wrap
// recommend.ErrConflict. Plan replacement retries transaction conflicts up to
// three times before giving up; preference conflicts are left to the caller.
//
// # Concurrency
//
// All methods are safe for concurrent use. Writes that touch several tables
// run in a single transaction.
package database
