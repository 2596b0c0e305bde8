// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

// Package query builds parameterized WHERE clauses for the database package.
//
//	wb := query.NewWhereBuilder().
//	    AddClause("user_id = ?", userID).
//	    AddInt64In("recipe_id", ids)
//	where, args := wb.BuildWithPrefix()
//	// WHERE user_id = ? AND recipe_id IN (?, ?, ?)
//
// Values are always bound as arguments; only column names, which come from
// code, are interpolated.
package query
