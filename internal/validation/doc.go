// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

/*
Package validation validates request structs with go-playground/validator.

A single validator instance is shared process-wide; it caches struct metadata
and is safe for concurrent use. Two planner-specific tags are registered on
top of the built-in ones:

  - user_id: the field is a uuid.UUID other than uuid.Nil
  - week_start: the field is a time.Time falling on Monday 00:00 UTC

Failures are returned as *RequestValidationError, whose Error method joins
one short message per failing field.
*/
package validation
