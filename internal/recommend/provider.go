// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package recommend

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/pantryplan/internal/models"
)

// The interfaces below are the collaborators the service reads from and
// writes to. internal/database.DB implements all of them; tests use
// in-memory fakes. Implementations must honour ctx cancellation.

// CatalogReader reads the shared recipe catalog.
type CatalogReader interface {
	// ListRecipes returns every recipe with its ingredient lines and
	// nutrition, ordered by id.
	ListRecipes(ctx context.Context) ([]models.Recipe, error)

	// GetRecipe returns one recipe with ingredients and nutrition.
	// Returns an error wrapping ErrNotFound if it does not exist.
	GetRecipe(ctx context.Context, id int64) (*models.Recipe, error)

	// RecipeIngredients returns the ingredient lines of the given recipes.
	RecipeIngredients(ctx context.Context, recipeIDs []int64) ([]models.RecipeIngredient, error)
}

// InventoryReader reads a user's pantry.
type InventoryReader interface {
	ListInventory(ctx context.Context, userID uuid.UUID) ([]models.InventoryItem, error)
}

// HistoryReader reads a user's cooking history and favourites.
type HistoryReader interface {
	// RecentlyCooked returns the distinct recipe ids cooked at or after since.
	RecentlyCooked(ctx context.Context, userID uuid.UUID, since time.Time) ([]int64, error)

	// Favourites returns the user's favourite recipe ids.
	Favourites(ctx context.Context, userID uuid.UUID) ([]int64, error)
}

// PreferenceStore persists preference vectors with optimistic concurrency.
type PreferenceStore interface {
	// GetPreferences returns the user's vector, or an error wrapping
	// ErrNotFound if none has been stored yet.
	GetPreferences(ctx context.Context, userID uuid.UUID) (*models.PreferenceVector, error)

	// SavePreferences stores prefs if the stored version still equals
	// expectedVersion (0 means no row may exist yet). On success prefs.Version
	// holds the new version. A lost race returns an error wrapping ErrConflict.
	SavePreferences(ctx context.Context, prefs *models.PreferenceVector, expectedVersion int64) error
}

// PlanStore persists weekly meal plans.
type PlanStore interface {
	// ReplacePlan atomically deletes any plan of the same user and week and
	// stores plan with its slots.
	ReplacePlan(ctx context.Context, plan *models.MealPlan) error

	// GetPlan returns the plan of a user for the week starting at weekStart,
	// or an error wrapping ErrNotFound.
	GetPlan(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*models.MealPlan, error)

	// GetPlanByID returns a plan by id, or an error wrapping ErrNotFound.
	GetPlanByID(ctx context.Context, planID uuid.UUID) (*models.MealPlan, error)

	// CompleteSlot marks one slot of a plan completed, or returns an error
	// wrapping ErrNotFound.
	CompleteSlot(ctx context.Context, planID, slotID uuid.UUID) error
}

// Dependencies groups the collaborators of a Service.
type Dependencies struct {
	Catalog     CatalogReader
	Inventory   InventoryReader
	History     HistoryReader
	Preferences PreferenceStore
	Plans       PlanStore
}

func (d Dependencies) validate() error {
	switch {
	case d.Catalog == nil:
		return errMissingDependency("catalog")
	case d.Inventory == nil:
		return errMissingDependency("inventory")
	case d.History == nil:
		return errMissingDependency("history")
	case d.Preferences == nil:
		return errMissingDependency("preferences")
	case d.Plans == nil:
		return errMissingDependency("plans")
	}
	return nil
}
