// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package scoring

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/pantryplan/internal/models"
	"github.com/tomtom215/pantryplan/internal/recommend/preference"
)

const epsilon = 1e-9

func newTestScorer() *Scorer {
	return NewScorer(DefaultConfig(), preference.NewModel(preference.DefaultConfig()))
}

func recipeWith(id int64, ingredientIDs ...int64) models.Recipe {
	r := models.Recipe{ID: id, Name: "recipe", Servings: 2}
	for _, ing := range ingredientIDs {
		r.Ingredients = append(r.Ingredients, models.RecipeIngredient{RecipeID: id, IngredientID: ing})
	}
	return r
}

func emptyContext() Context {
	return NewContext(nil, 2, nil, time.Time{}, nil, nil)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"negative weight", func(c *Config) { c.Weights.Variety = -0.08; c.Weights.Coverage = 0.46 }, true},
		{"weights do not sum to one", func(c *Config) { c.Weights.Coverage = 0.5 }, true},
		{"zero calories", func(c *Config) { c.DailyCalories = 0 }, true},
		{"zero protein", func(c *Config) { c.DailyProteinG = 0 }, true},
		{"zero days", func(c *Config) { c.PlanDays = 0 }, true},
		{"positive penalty", func(c *Config) { c.RecentPenalty = 0.1 }, true},
		{"negative bonus", func(c *Config) { c.FavouriteBonus = -0.1 }, true},
		{"zero workers", func(c *Config) { c.MaxWorkers = 0 }, true},
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

func TestNewContext(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	soon := now.AddDate(0, 0, 3)
	cutoff := now.AddDate(0, 0, 7)
	later := now.AddDate(0, 0, 30)

	inventory := []models.InventoryItem{
		{IngredientID: 1, QuantityGrams: 100, ExpiryDate: &soon},
		{IngredientID: 2, QuantityGrams: 100, ExpiryDate: &later},
		{IngredientID: 3, QuantityGrams: 100},
		{IngredientID: 4, QuantityGrams: 100, ExpiryDate: &cutoff},
	}

	c := NewContext(nil, 3, inventory, cutoff, []int64{7}, []int64{8, 9})

	if len(c.Owned) != 4 {
		t.Errorf("Owned = %d ids, want 4", len(c.Owned))
	}
	for _, id := range []int64{1, 4} {
		if _, ok := c.Expiring[id]; !ok {
			t.Errorf("ingredient %d should be expiring", id)
		}
	}
	for _, id := range []int64{2, 3} {
		if _, ok := c.Expiring[id]; ok {
			t.Errorf("ingredient %d should not be expiring", id)
		}
	}
	if _, ok := c.Recent[7]; !ok {
		t.Error("recipe 7 should be recent")
	}
	if len(c.Favourites) != 2 {
		t.Errorf("Favourites = %d ids, want 2", len(c.Favourites))
	}
}

func TestScorer_Score_Components(t *testing.T) {
	t.Parallel()

	s := newTestScorer()
	sc := emptyContext()
	sc.Owned = map[int64]struct{}{1: {}, 2: {}}
	sc.Expiring = map[int64]struct{}{2: {}}
	sc.Favourites = map[int64]struct{}{10: {}}

	r := recipeWith(10, 1, 2, 3, 4)
	r.Nutrition = &models.Nutrition{Calories: 700, ProteinG: 35}

	got := s.Score(&r, sc)

	// household 2, servings 2 -> scale 1; 700/14000 = 0.05, 35/350 = 0.1
	want := models.ScoreBreakdown{
		Coverage:   0.5,
		Expiry:     0.25,
		Preference: 0.5,
		Nutrition:  0.075,
		Variety:    0.1,
	}
	if math.Abs(got.Breakdown.Coverage-want.Coverage) > epsilon ||
		math.Abs(got.Breakdown.Expiry-want.Expiry) > epsilon ||
		math.Abs(got.Breakdown.Preference-want.Preference) > epsilon ||
		math.Abs(got.Breakdown.Nutrition-want.Nutrition) > epsilon ||
		math.Abs(got.Breakdown.Variety-want.Variety) > epsilon {
		t.Errorf("Breakdown = %+v, want %+v", got.Breakdown, want)
	}

	wantTotal := 0.5*0.30 + 0.25*0.25 + 0.5*0.25 + 0.075*0.12 + 0.1*0.08
	if math.Abs(got.TotalScore-wantTotal) > epsilon {
		t.Errorf("TotalScore = %v, want %v", got.TotalScore, wantTotal)
	}
}

func TestScorer_Score_Nutrition(t *testing.T) {
	t.Parallel()

	s := newTestScorer()

	tests := []struct {
		name      string
		household int
		servings  int
		nutrition *models.Nutrition
		want      float64
	}{
		{"missing nutrition is neutral", 2, 2, nil, 0.5},
		{"scaled by household over servings", 4, 2, &models.Nutrition{Calories: 700, ProteinG: 35}, (0.1 + 0.2) / 2},
		{"zero servings treated as one", 1, 0, &models.Nutrition{Calories: 1400, ProteinG: 0}, 0.05},
		{"capped at one", 50, 1, &models.Nutrition{Calories: 2000, ProteinG: 100}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := recipeWith(1, 1)
			r.Servings = tt.servings
			r.Nutrition = tt.nutrition
			sc := emptyContext()
			sc.HouseholdSize = tt.household
			got := s.Score(&r, sc).Breakdown.Nutrition
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("nutrition = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScorer_Score_NoIngredients(t *testing.T) {
	t.Parallel()

	s := newTestScorer()
	r := recipeWith(1)
	got := s.Score(&r, emptyContext())

	if got.Breakdown.Coverage != 0 || got.Breakdown.Expiry != 0 {
		t.Errorf("coverage/expiry = %v/%v, want 0/0", got.Breakdown.Coverage, got.Breakdown.Expiry)
	}
}

func TestScorer_Score_RecentPenalty(t *testing.T) {
	t.Parallel()

	s := newTestScorer()
	sc := emptyContext()
	sc.Recent = map[int64]struct{}{1: {}}
	sc.Favourites = map[int64]struct{}{1: {}}
	r := recipeWith(1, 1)

	if got := s.Score(&r, sc).Breakdown.Variety; got != -0.3 {
		t.Errorf("variety = %v, want -0.3", got)
	}
}

func TestScorer_Score_UsesPreferences(t *testing.T) {
	t.Parallel()

	s := newTestScorer()
	prefs := preference.New(uuid.New(), preference.DefaultConfig())
	prefs.InteractionCount = 5
	prefs.CuisineWeights["thai"] = 0.9

	sc := emptyContext()
	sc.Prefs = prefs

	r := recipeWith(1, 1)
	r.Cuisine = "thai"

	if got := s.Score(&r, sc).Breakdown.Preference; math.Abs(got-0.9) > epsilon {
		t.Errorf("preference = %v, want 0.9", got)
	}
}

func TestScorer_ScoreAll_ExcludesRecentAndSorts(t *testing.T) {
	t.Parallel()

	s := newTestScorer()
	sc := emptyContext()
	sc.Owned = map[int64]struct{}{1: {}, 2: {}}
	sc.Recent = map[int64]struct{}{4: {}}

	recipes := []models.Recipe{
		recipeWith(3, 9),    // no coverage
		recipeWith(1, 1, 9), // half coverage
		recipeWith(2, 1, 2), // full coverage
		recipeWith(4, 1, 2), // full coverage but cooked recently
		recipeWith(5, 9),    // ties with 3
	}

	ranked, err := s.ScoreAll(context.Background(), recipes, sc)
	if err != nil {
		t.Fatalf("ScoreAll() error = %v", err)
	}

	wantOrder := []int64{2, 1, 3, 5}
	if len(ranked) != len(wantOrder) {
		t.Fatalf("ScoreAll() returned %d recipes, want %d", len(ranked), len(wantOrder))
	}
	for i, id := range wantOrder {
		if ranked[i].RecipeID != id {
			t.Errorf("ranked[%d] = recipe %d, want %d", i, ranked[i].RecipeID, id)
		}
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].TotalScore > ranked[i-1].TotalScore {
			t.Errorf("ranking not descending at %d", i)
		}
	}
}

func TestScorer_ScoreAll_Empty(t *testing.T) {
	t.Parallel()

	ranked, err := newTestScorer().ScoreAll(context.Background(), nil, emptyContext())
	if err != nil {
		t.Fatalf("ScoreAll() error = %v", err)
	}
	if len(ranked) != 0 {
		t.Errorf("ScoreAll() = %d items, want 0", len(ranked))
	}
}

func TestScorer_ScoreAll_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	recipes := []models.Recipe{recipeWith(1, 1), recipeWith(2, 2)}
	_, err := newTestScorer().ScoreAll(ctx, recipes, emptyContext())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ScoreAll() error = %v, want context.Canceled", err)
	}
}

func TestScorer_ScoreAll_ZeroWorkers(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.MaxWorkers = 0
	scorer := NewScorer(cfg, preference.NewModel(preference.DefaultConfig()))
	recipes := []models.Recipe{recipeWith(1, 1), recipeWith(2, 2), recipeWith(3, 3)}

	done := make(chan int, 1)
	go func() {
		ranked, err := scorer.ScoreAll(context.Background(), recipes, emptyContext())
		if err != nil {
			t.Errorf("ScoreAll() error = %v", err)
		}
		done <- len(ranked)
	}()

	select {
	case n := <-done:
		if n != 3 {
			t.Errorf("ScoreAll() = %d items, want 3", n)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ScoreAll() did not return with MaxWorkers = 0")
	}
}

func TestSort_TieBreakByID(t *testing.T) {
	t.Parallel()

	items := []models.ScoredRecipe{
		{RecipeID: 9, TotalScore: 0.4},
		{RecipeID: 3, TotalScore: 0.4},
		{RecipeID: 5, TotalScore: 0.7},
	}
	Sort(items)

	want := []int64{5, 3, 9}
	for i, id := range want {
		if items[i].RecipeID != id {
			t.Errorf("items[%d] = %d, want %d", i, items[i].RecipeID, id)
		}
	}
}
