// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

// Package recommend plans a household's week of meals.
//
// # Architecture
//
// The service composes four leaf components:
//
//   - preference: an online taste model updated by every interaction
//   - scoring: ranks recipes by pantry coverage, expiring stock, taste,
//     nutrition and variety
//   - selection: fills day and meal slots greedily from the ranking
//   - shopping: subtracts the pantry from what the remaining meals need
//
// Collaborators (catalog, inventory, history, preferences, plans) are
// interfaces defined in provider.go; internal/database implements them on
// DuckDB.
//
// # Usage
//
//	svc, err := recommend.NewService(recommend.DefaultConfig(), recommend.Dependencies{
//	    Catalog:     db,
//	    Inventory:   db,
//	    History:     db,
//	    Preferences: db,
//	    Plans:       db,
//	}, logger)
//
//	plan, err := svc.GenerateWeekPlan(ctx, userID, 2, models.WeekStartOf(time.Now()))
//	err = svc.RecordInteraction(ctx, userID, recipeID, preference.Rated(5))
//
// # Errors
//
// Operations return errors wrapping ErrNotFound, ErrConflict or
// ErrInvalidInput. Other store failures are logged and reported as
// ErrInternal.
//
// # Thread Safety
//
// Service is safe for concurrent use. Preference updates use optimistic
// concurrency on the stored vector's version and retry on conflict.
package recommend
