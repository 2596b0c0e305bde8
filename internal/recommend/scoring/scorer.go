// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

// Package scoring ranks candidate recipes for a user's week.
//
// Each recipe gets five components in [0, 1] (variety may be negative):
//
//   - coverage: share of its ingredients already in the inventory
//   - expiry: share of its ingredients that expire soon
//   - preference: the learned taste score
//   - nutrition: how much of the week's calorie and protein target one cook covers
//   - variety: favourite bonus or recent-repeat penalty
//
// The total is their weighted sum. Recently cooked recipes never reach the
// ranking.
package scoring

import (
	"context"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/pantryplan/internal/models"
	"github.com/tomtom215/pantryplan/internal/recommend/preference"
)

// neutralNutrition is used for recipes without nutrition facts.
const neutralNutrition = 0.5

// Context is the per-user state a ranking is computed against.
// It is read-only once built.
type Context struct {
	Prefs         *models.PreferenceVector
	HouseholdSize int

	Owned      map[int64]struct{} // ingredient ids with stock on hand
	Expiring   map[int64]struct{} // ingredient ids expiring by the cutoff
	Recent     map[int64]struct{} // recipe ids cooked within the recent window
	Favourites map[int64]struct{} // favourite recipe ids
}

// NewContext builds a scoring context from raw inventory, history and favourites.
// Items with an expiry date on or before expiryCutoff count as expiring.
func NewContext(
	prefs *models.PreferenceVector,
	householdSize int,
	inventory []models.InventoryItem,
	expiryCutoff time.Time,
	recent []int64,
	favourites []int64,
) Context {
	c := Context{
		Prefs:         prefs,
		HouseholdSize: householdSize,
		Owned:         make(map[int64]struct{}, len(inventory)),
		Expiring:      make(map[int64]struct{}),
		Recent:        idSet(recent),
		Favourites:    idSet(favourites),
	}
	for _, item := range inventory {
		c.Owned[item.IngredientID] = struct{}{}
		if item.ExpiresBy(expiryCutoff) {
			c.Expiring[item.IngredientID] = struct{}{}
		}
	}
	return c
}

func idSet(ids []int64) map[int64]struct{} {
	s := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Scorer computes composite recipe scores. It is safe for concurrent use.
type Scorer struct {
	cfg   Config
	model *preference.Model
}

// NewScorer creates a scorer using model for the preference component.
// A MaxWorkers below 1 scores on a single worker.
//
//nolint:gocritic // config passed by value is intentional
func NewScorer(cfg Config, model *preference.Model) *Scorer {
	cfg.MaxWorkers = max(1, cfg.MaxWorkers)
	return &Scorer{cfg: cfg, model: model}
}

// ScoreAll scores every candidate that was not cooked recently and returns
// them ordered by total score descending, ties broken by recipe id ascending.
func (s *Scorer) ScoreAll(ctx context.Context, recipes []models.Recipe, sc Context) ([]models.ScoredRecipe, error) {
	results := make([]*models.ScoredRecipe, len(recipes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxWorkers)

	for i := range recipes {
		if _, recent := sc.Recent[recipes[i].ID]; recent {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scored := s.Score(&recipes[i], sc)
			results[i] = &scored
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := make([]models.ScoredRecipe, 0, len(results))
	for _, r := range results {
		if r != nil {
			ranked = append(ranked, *r)
		}
	}
	Sort(ranked)
	return ranked, nil
}

// Sort orders scored recipes by total score descending, then recipe id ascending.
func Sort(items []models.ScoredRecipe) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].TotalScore != items[j].TotalScore {
			return items[i].TotalScore > items[j].TotalScore
		}
		return items[i].RecipeID < items[j].RecipeID
	})
}

// Score computes the composite score of a single recipe.
func (s *Scorer) Score(recipe *models.Recipe, sc Context) models.ScoredRecipe {
	ids := recipe.IngredientIDs()
	total := float64(max(1, len(ids)))

	var owned, expiring int
	for _, id := range ids {
		if _, ok := sc.Owned[id]; ok {
			owned++
		}
		if _, ok := sc.Expiring[id]; ok {
			expiring++
		}
	}

	b := models.ScoreBreakdown{
		Coverage:   float64(owned) / total,
		Expiry:     math.Min(1, float64(expiring)/total),
		Preference: s.model.Score(sc.Prefs, recipe),
		Nutrition:  s.nutrition(recipe, sc.HouseholdSize),
		Variety:    s.variety(recipe.ID, sc),
	}

	w := s.cfg.Weights
	return models.ScoredRecipe{
		RecipeID: recipe.ID,
		Name:     recipe.Name,
		TotalScore: b.Coverage*w.Coverage +
			b.Expiry*w.Expiry +
			b.Preference*w.Preference +
			b.Nutrition*w.Nutrition +
			b.Variety*w.Variety,
		Cuisine:      recipe.Cuisine,
		Category:     recipe.Category,
		TotalTimeMin: recipe.TotalTimeMin,
		Breakdown:    b,
	}
}

// nutrition scores one cook of the recipe for the household against the full
// week's calorie and protein target. The target is not reduced as slots fill.
func (s *Scorer) nutrition(recipe *models.Recipe, householdSize int) float64 {
	n := recipe.Nutrition
	if n == nil {
		return neutralNutrition
	}

	scale := float64(householdSize) / float64(max(1, recipe.Servings))
	days := float64(s.cfg.PlanDays)
	calGap := math.Max(1, s.cfg.DailyCalories*days)
	proGap := math.Max(1, s.cfg.DailyProteinG*days)

	calScore := math.Min(1, n.Calories*scale/calGap)
	proScore := math.Min(1, n.ProteinG*scale/proGap)
	return (calScore + proScore) / 2
}

func (s *Scorer) variety(recipeID int64, sc Context) float64 {
	if _, ok := sc.Recent[recipeID]; ok {
		return s.cfg.RecentPenalty
	}
	if _, ok := sc.Favourites[recipeID]; ok {
		return s.cfg.FavouriteBonus
	}
	return 0
}
