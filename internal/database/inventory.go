// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/pantryplan/internal/models"
)

// ListInventory returns a user's pantry, ordered by ingredient.
func (db *DB) ListInventory(ctx context.Context, userID uuid.UUID) (items []models.InventoryItem, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { err = observe("list_inventory", "inventory_items", start, err) }()

	rows, err := db.conn.QueryContext(ctx, `SELECT inv.id, inv.ingredient_id, COALESCE(i.name, ''), inv.quantity_grams, inv.expiry_date
		FROM inventory_items inv
		LEFT JOIN ingredients i ON i.id = inv.ingredient_id
		WHERE inv.user_id = ?
		ORDER BY inv.ingredient_id, inv.id`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer closeWithLog(rows, "rows")

	items = []models.InventoryItem{}
	for rows.Next() {
		var (
			item   models.InventoryItem
			expiry sql.NullTime
		)
		if err := rows.Scan(&item.ID, &item.IngredientID, &item.Name, &item.QuantityGrams, &expiry); err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		item.UserID = userID
		if expiry.Valid {
			t := expiry.Time.UTC()
			item.ExpiryDate = &t
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory: %w", err)
	}
	return items, nil
}

// AddInventoryItem stores a pantry item and sets its id.
func (db *DB) AddInventoryItem(ctx context.Context, item *models.InventoryItem) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { err = observe("add_inventory_item", "inventory_items", start, err) }()

	var expiry interface{}
	if item.ExpiryDate != nil {
		expiry = item.ExpiryDate.UTC().Format(time.DateOnly)
	}

	err = db.conn.QueryRowContext(ctx, `INSERT INTO inventory_items (user_id, ingredient_id, quantity_grams, expiry_date)
		VALUES (?, ?, ?, CAST(? AS DATE))
		RETURNING id`,
		item.UserID.String(), item.IngredientID, item.QuantityGrams, expiry).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to insert inventory item: %w", err)
	}
	return nil
}
