// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package selection

import (
	"testing"

	"github.com/tomtom215/pantryplan/internal/models"
)

func scored(id int64, category, cuisine string) models.ScoredRecipe {
	return models.ScoredRecipe{RecipeID: id, Category: category, Cuisine: cuisine}
}

type slotKey struct {
	day int
	mt  models.MealType
}

func byKey(slots []models.MealSlot) map[slotKey]models.MealSlot {
	m := make(map[slotKey]models.MealSlot, len(slots))
	for _, s := range slots {
		m[slotKey{s.DayOfWeek, s.MealType}] = s
	}
	return m
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero days", func(c *Config) { c.Days = 0 }, true},
		{"eight days", func(c *Config) { c.Days = 8 }, true},
		{"no meal types", func(c *Config) { c.MealTypes = nil }, true},
		{"unknown meal type", func(c *Config) { c.MealTypes = []models.MealType{"brunch"} }, true},
		{"duplicate meal type", func(c *Config) {
			c.MealTypes = []models.MealType{models.MealLunch, models.MealLunch}
		}, true},
		{"all four meals", func(c *Config) {
			c.MealTypes = []models.MealType{models.MealSnack, models.MealDinner, models.MealLunch, models.MealBreakfast}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.MealTypes[0] = models.MealSnack

	if cfg.MealTypes[0] != models.MealLunch {
		t.Error("Clone() shares the meal type slice")
	}
}

func TestFits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category string
		mealType models.MealType
		want     bool
	}{
		{"breakfast", models.MealBreakfast, true},
		{"breakfast", models.MealLunch, false},
		{"breakfast", models.MealDinner, false},
		{"dessert", models.MealLunch, false},
		{"dessert", models.MealDinner, false},
		{"dessert", models.MealSnack, false},
		{"main", models.MealLunch, true},
		{"main", models.MealBreakfast, true},
		{"", models.MealDinner, true},
	}

	for _, tt := range tests {
		if got := Fits(tt.category, tt.mealType); got != tt.want {
			t.Errorf("Fits(%q, %q) = %v, want %v", tt.category, tt.mealType, got, tt.want)
		}
	}
}

func TestSelector_Select_SmallCatalog(t *testing.T) {
	t.Parallel()

	ranked := []models.ScoredRecipe{
		scored(1, "breakfast", ""),
		scored(2, "main", ""),
		scored(3, "main", ""),
	}

	slots := NewSelector(DefaultConfig()).Select(ranked, 2)

	if len(slots) != 2 {
		t.Fatalf("Select() filled %d slots, want 2", len(slots))
	}
	got := byKey(slots)
	if s, ok := got[slotKey{0, models.MealLunch}]; !ok || s.RecipeID != 2 {
		t.Errorf("day 0 lunch = %+v, want recipe 2", s)
	}
	if s, ok := got[slotKey{0, models.MealDinner}]; !ok || s.RecipeID != 3 {
		t.Errorf("day 0 dinner = %+v, want recipe 3", s)
	}
	for _, s := range slots {
		if s.RecipeID == 1 {
			t.Errorf("breakfast-only recipe assigned to %s", s.MealType)
		}
	}
}

func TestSelector_Select_DinnerCuisineDiversity(t *testing.T) {
	t.Parallel()

	ranked := []models.ScoredRecipe{
		scored(1, "main", "italian"),
		scored(2, "main", "italian"),
		scored(3, "main", "thai"),
		scored(4, "main", "italian"),
	}

	slots := NewSelector(DefaultConfig()).Select(ranked, 2)
	got := byKey(slots)

	if got[slotKey{0, models.MealLunch}].RecipeID != 1 {
		t.Errorf("day 0 lunch = %d, want 1", got[slotKey{0, models.MealLunch}].RecipeID)
	}
	if got[slotKey{0, models.MealDinner}].RecipeID != 3 {
		t.Errorf("day 0 dinner = %d, want 3", got[slotKey{0, models.MealDinner}].RecipeID)
	}
	if got[slotKey{1, models.MealLunch}].RecipeID != 4 {
		t.Errorf("day 1 lunch = %d, want 4", got[slotKey{1, models.MealLunch}].RecipeID)
	}
	if _, ok := got[slotKey{1, models.MealDinner}]; ok {
		t.Error("day 1 dinner should stay empty once candidates run out")
	}
	for _, s := range slots {
		if s.RecipeID == 2 {
			t.Error("recipe passed over for dinner must not be revisited")
		}
	}
}

func TestSelector_Select_DiversityDisabled(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.DinnerCuisineDiversity = false
	ranked := []models.ScoredRecipe{
		scored(1, "main", "italian"),
		scored(2, "main", "italian"),
	}

	slots := NewSelector(cfg).Select(ranked, 1)
	if len(slots) != 2 {
		t.Fatalf("Select() filled %d slots, want 2", len(slots))
	}
}

func TestSelector_Select_MissingCuisineDinner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mealTypes  []models.MealType
		ranked     []models.ScoredRecipe
		wantDinner int64
	}{
		{
			name:       "both without cuisine leaves dinner empty",
			ranked:     []models.ScoredRecipe{scored(1, "main", ""), scored(2, "main", "")},
			wantDinner: 0,
		},
		{
			name:       "cuisine-less lunch accepts a dinner with cuisine",
			ranked:     []models.ScoredRecipe{scored(1, "main", ""), scored(2, "main", ""), scored(3, "main", "thai")},
			wantDinner: 3,
		},
		{
			name:       "empty lunch rejects a cuisine-less dinner",
			mealTypes:  []models.MealType{models.MealDinner},
			ranked:     []models.ScoredRecipe{scored(1, "main", "")},
			wantDinner: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			cfg.Days = 1
			if tt.mealTypes != nil {
				cfg.MealTypes = tt.mealTypes
			}
			got := byKey(NewSelector(cfg).Select(tt.ranked, 1))
			if id := got[slotKey{0, models.MealDinner}].RecipeID; id != tt.wantDinner {
				t.Errorf("day 0 dinner = %d, want %d", id, tt.wantDinner)
			}
		})
	}
}

func TestSelector_Select_DessertsNeverPlaced(t *testing.T) {
	t.Parallel()

	ranked := []models.ScoredRecipe{
		scored(1, "dessert", ""),
		scored(2, "dessert", ""),
	}

	if slots := NewSelector(DefaultConfig()).Select(ranked, 1); len(slots) != 0 {
		t.Errorf("Select() = %d slots, want 0", len(slots))
	}
}

func TestSelector_Select_UniqueSlotsAndRecipes(t *testing.T) {
	t.Parallel()

	var ranked []models.ScoredRecipe
	cuisines := []string{"italian", "thai", "mexican"}
	for i := int64(1); i <= 40; i++ {
		ranked = append(ranked, scored(i, "main", cuisines[i%3]))
	}
	// duplicated candidate must not be used twice
	ranked = append(ranked[:3], append([]models.ScoredRecipe{ranked[1]}, ranked[3:]...)...)

	slots := NewSelector(DefaultConfig()).Select(ranked, 3)

	if len(slots) != 14 {
		t.Errorf("Select() filled %d slots, want 14", len(slots))
	}
	seenSlot := make(map[slotKey]bool)
	seenRecipe := make(map[int64]bool)
	for _, s := range slots {
		k := slotKey{s.DayOfWeek, s.MealType}
		if seenSlot[k] {
			t.Errorf("slot %+v assigned twice", k)
		}
		seenSlot[k] = true
		if seenRecipe[s.RecipeID] {
			t.Errorf("recipe %d assigned twice", s.RecipeID)
		}
		seenRecipe[s.RecipeID] = true
		if s.ServingsOverride == nil || *s.ServingsOverride != 3 {
			t.Errorf("slot %+v servings override = %v, want 3", k, s.ServingsOverride)
		}
		if s.IsCompleted {
			t.Errorf("slot %+v should not be completed", k)
		}
	}
}

func TestSelector_Select_MealOrderAndBreakfast(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.MealTypes = []models.MealType{models.MealDinner, models.MealBreakfast}

	ranked := []models.ScoredRecipe{
		scored(1, "main", ""),
		scored(2, "breakfast", ""),
		scored(3, "main", ""),
	}

	slots := NewSelector(cfg).Select(ranked, 1)
	if len(slots) != 2 {
		t.Fatalf("Select() filled %d slots, want 2", len(slots))
	}
	if slots[0].MealType != models.MealBreakfast || slots[0].RecipeID != 1 {
		t.Errorf("first slot = %s/%d, want breakfast/1", slots[0].MealType, slots[0].RecipeID)
	}
	if slots[1].MealType != models.MealDinner || slots[1].RecipeID != 3 {
		t.Errorf("second slot = %s/%d, want dinner/3", slots[1].MealType, slots[1].RecipeID)
	}
}

func TestSelector_Select_Empty(t *testing.T) {
	t.Parallel()

	if slots := NewSelector(DefaultConfig()).Select(nil, 2); len(slots) != 0 {
		t.Errorf("Select(nil) = %d slots, want 0", len(slots))
	}
}
