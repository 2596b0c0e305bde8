// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package recommend

import "errors"

// Sentinel errors returned by the service. Store implementations wrap
// ErrNotFound and ErrConflict; anything else they return is logged and
// surfaced to callers as ErrInternal.
var (
	// ErrNotFound is returned when a user, recipe, plan or slot does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an optimistic-concurrency check fails.
	ErrConflict = errors.New("conflict")

	// ErrInternal is returned for store failures. Details are logged, not returned.
	ErrInternal = errors.New("internal error")

	// ErrInvalidInput is returned when a request fails validation.
	ErrInvalidInput = errors.New("invalid input")
)

type errMissingDependency string

func (e errMissingDependency) Error() string {
	return "missing dependency: " + string(e)
}
