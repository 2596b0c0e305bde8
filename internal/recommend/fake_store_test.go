// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/pantryplan/internal/models"
)

// fakeStore is an in-memory implementation of every collaborator interface.
type fakeStore struct {
	mu sync.Mutex

	recipes    map[int64]models.Recipe
	inventory  map[uuid.UUID][]models.InventoryItem
	history    []models.CookingRecord
	favourites map[uuid.UUID][]int64
	prefs      map[uuid.UUID]*models.PreferenceVector
	plans      map[uuid.UUID]*models.MealPlan

	// conflicts makes the next n SavePreferences calls fail with ErrConflict.
	conflicts int
	saves     int

	// failWith, when set, is returned by every read.
	failWith error
}

func newFakeStore(recipes ...models.Recipe) *fakeStore {
	f := &fakeStore{
		recipes:    make(map[int64]models.Recipe),
		inventory:  make(map[uuid.UUID][]models.InventoryItem),
		favourites: make(map[uuid.UUID][]int64),
		prefs:      make(map[uuid.UUID]*models.PreferenceVector),
		plans:      make(map[uuid.UUID]*models.MealPlan),
	}
	for _, r := range recipes {
		f.recipes[r.ID] = r
	}
	return f
}

func (f *fakeStore) deps() Dependencies {
	return Dependencies{Catalog: f, Inventory: f, History: f, Preferences: f, Plans: f}
}

func (f *fakeStore) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]models.Recipe, 0, len(f.recipes))
	for _, r := range f.recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) GetRecipe(ctx context.Context, id int64) (*models.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	r, ok := f.recipes[id]
	if !ok {
		return nil, fmt.Errorf("recipe %d: %w", id, ErrNotFound)
	}
	return &r, nil
}

func (f *fakeStore) RecipeIngredients(ctx context.Context, recipeIDs []int64) ([]models.RecipeIngredient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.RecipeIngredient
	for _, id := range recipeIDs {
		out = append(out, f.recipes[id].Ingredients...)
	}
	return out, nil
}

func (f *fakeStore) ListInventory(ctx context.Context, userID uuid.UUID) ([]models.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return append([]models.InventoryItem(nil), f.inventory[userID]...), nil
}

func (f *fakeStore) RecentlyCooked(ctx context.Context, userID uuid.UUID, since time.Time) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []int64
	for _, h := range f.history {
		if h.UserID == userID && !h.CookedAt.Before(since) {
			out = append(out, h.RecipeID)
		}
	}
	return out, nil
}

func (f *fakeStore) Favourites(ctx context.Context, userID uuid.UUID) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.favourites[userID]...), nil
}

func (f *fakeStore) GetPreferences(ctx context.Context, userID uuid.UUID) (*models.PreferenceVector, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	p, ok := f.prefs[userID]
	if !ok {
		return nil, fmt.Errorf("preferences for %s: %w", userID, ErrNotFound)
	}
	return p.Clone(), nil
}

func (f *fakeStore) SavePreferences(ctx context.Context, prefs *models.PreferenceVector, expectedVersion int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conflicts > 0 {
		f.conflicts--
		return fmt.Errorf("save preferences: %w", ErrConflict)
	}
	var current int64
	if p, ok := f.prefs[prefs.UserID]; ok {
		current = p.Version
	}
	if current != expectedVersion {
		return fmt.Errorf("save preferences: %w", ErrConflict)
	}
	prefs.Version = expectedVersion + 1
	f.prefs[prefs.UserID] = prefs.Clone()
	f.saves++
	return nil
}

func (f *fakeStore) ReplacePlan(ctx context.Context, plan *models.MealPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, p := range f.plans {
		if p.UserID == plan.UserID && p.WeekStart.Equal(plan.WeekStart) {
			delete(f.plans, id)
		}
	}
	cp := *plan
	cp.Slots = append([]models.MealSlot(nil), plan.Slots...)
	f.plans[plan.ID] = &cp
	return nil
}

func (f *fakeStore) GetPlan(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*models.MealPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.plans {
		if p.UserID == userID && p.WeekStart.Equal(weekStart) {
			cp := *p
			cp.Slots = append([]models.MealSlot(nil), p.Slots...)
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("plan: %w", ErrNotFound)
}

func (f *fakeStore) GetPlanByID(ctx context.Context, planID uuid.UUID) (*models.MealPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.plans[planID]
	if !ok {
		return nil, fmt.Errorf("plan %s: %w", planID, ErrNotFound)
	}
	cp := *p
	cp.Slots = append([]models.MealSlot(nil), p.Slots...)
	return &cp, nil
}

func (f *fakeStore) CompleteSlot(ctx context.Context, planID, slotID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.plans[planID]
	if !ok {
		return fmt.Errorf("plan %s: %w", planID, ErrNotFound)
	}
	for i := range p.Slots {
		if p.Slots[i].ID == slotID {
			p.Slots[i].IsCompleted = true
			return nil
		}
	}
	return errors.New("slot vanished")
}

func (f *fakeStore) planCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.plans)
}
