// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tomtom215/pantryplan/internal/logging"
	"github.com/tomtom215/pantryplan/internal/metrics"
	"github.com/tomtom215/pantryplan/internal/recommend"
)

// closeWithLog closes a resource and logs any error
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}

// classify maps driver errors onto the recommend sentinels.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%w: %w", recommend.ErrNotFound, err)
	case isTransactionConflict(err):
		return fmt.Errorf("%w: %w", recommend.ErrConflict, err)
	}
	return err
}

// observe records query metrics and returns err classified.
func observe(operation, table string, start time.Time, err error) error {
	err = classify(err)
	if errors.Is(err, recommend.ErrNotFound) {
		metrics.RecordDBQuery(operation, table, time.Since(start), nil)
		return err
	}
	metrics.RecordDBQuery(operation, table, time.Since(start), err)
	return err
}
