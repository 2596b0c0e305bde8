// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package preference

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/tomtom215/pantryplan/internal/models"
)

// NeutralScore is returned when there is nothing to compare a recipe against.
const NeutralScore = 0.5

// Config contains the learning parameters of the model.
type Config struct {
	// LearningRate is the EMA step size.
	// Default: 0.1.
	LearningRate float64 `json:"learning_rate"`

	// IngredientDamping scales the signal applied to ingredient weights.
	// Default: 0.5.
	IngredientDamping float64 `json:"ingredient_damping"`

	// TimeToleranceMin is the distance in minutes at which the time fit reaches zero.
	// Default: 60.
	TimeToleranceMin float64 `json:"time_tolerance_min"`

	// DefaultPreferredTimeMin seeds the preferred cooking time of a new vector.
	// Default: 30.
	DefaultPreferredTimeMin int `json:"default_preferred_time_min"`
}

// DefaultConfig returns the production learning parameters.
func DefaultConfig() Config {
	return Config{
		LearningRate:            0.1,
		IngredientDamping:       0.5,
		TimeToleranceMin:        60,
		DefaultPreferredTimeMin: 30,
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (c Config) Validate() error {
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return fmt.Errorf("learning_rate must be in (0, 1], got %f", c.LearningRate)
	}
	if c.IngredientDamping < 0 || c.IngredientDamping > 1 {
		return fmt.Errorf("ingredient_damping must be in [0, 1], got %f", c.IngredientDamping)
	}
	if c.TimeToleranceMin <= 0 {
		return fmt.Errorf("time_tolerance_min must be positive, got %f", c.TimeToleranceMin)
	}
	if c.DefaultPreferredTimeMin < 0 {
		return fmt.Errorf("default_preferred_time_min must be non-negative, got %d", c.DefaultPreferredTimeMin)
	}
	return nil
}

// Model applies interaction signals to preference vectors and scores recipes
// against them. It holds no mutable state and is safe for concurrent use.
type Model struct {
	cfg Config
}

// NewModel creates a model with the given parameters.
//
//nolint:gocritic // config passed by value is intentional
func NewModel(cfg Config) *Model {
	return &Model{cfg: cfg}
}

// Config returns the model's parameters.
func (m *Model) Config() Config {
	return m.cfg
}

// New returns the empty preference vector for a user.
//
//nolint:gocritic // config passed by value is intentional
func New(userID uuid.UUID, cfg Config) *models.PreferenceVector {
	return &models.PreferenceVector{
		UserID:            userID,
		CuisineWeights:    make(map[string]float64),
		IngredientWeights: make(map[string]float64),
		DifficultyWeights: make(map[string]float64),
		PreferredTimeMin:  cfg.DefaultPreferredTimeMin,
	}
}

// Update returns a copy of prefs moved toward the signal for the recipe.
// prefs is not modified; a nil prefs starts from an empty vector.
func (m *Model) Update(prefs *models.PreferenceVector, recipe *models.Recipe, sig Signal) *models.PreferenceVector {
	if prefs == nil {
		prefs = New(uuid.Nil, m.cfg)
	}
	next := prefs.Clone()
	v := sig.Value()

	if recipe.Cuisine != "" {
		next.CuisineWeights[recipe.Cuisine] = m.step(next.CuisineWeights[recipe.Cuisine], v)
	}
	if recipe.Difficulty != "" {
		next.DifficultyWeights[recipe.Difficulty] = m.step(next.DifficultyWeights[recipe.Difficulty], v)
	}

	for _, name := range ingredientNames(recipe) {
		next.IngredientWeights[name] = m.step(next.IngredientWeights[name], v*m.cfg.IngredientDamping)
	}

	if n := recipe.Nutrition; n != nil && n.Calories > 0 {
		sign := 1.0
		if v <= 0 {
			sign = -1.0
		}
		mag := math.Abs(v)
		next.MacroBias.Protein = m.step(next.MacroBias.Protein, sign*(n.ProteinG*4/n.Calories)*mag)
		next.MacroBias.Carbs = m.step(next.MacroBias.Carbs, sign*(n.CarbsG*4/n.Calories)*mag)
		next.MacroBias.Fat = m.step(next.MacroBias.Fat, sign*(n.FatG*9/n.Calories)*mag)
	}

	if recipe.TotalTimeMin != nil && v > 0 {
		count := float64(prefs.InteractionCount)
		mean := (float64(prefs.PreferredTimeMin)*count + float64(*recipe.TotalTimeMin)) / (count + 1)
		next.PreferredTimeMin = int(mean)
	}

	next.InteractionCount = prefs.InteractionCount + 1
	return next
}

// Score rates how well a recipe matches the learned preferences, in [0, 1].
//
// Only components the vector knows something about contribute: the cuisine
// and difficulty weights, the cooking time fit, and the mean of the known
// ingredient weights. A nil or untrained vector, or a recipe sharing nothing
// with it, scores NeutralScore.
func (m *Model) Score(prefs *models.PreferenceVector, recipe *models.Recipe) float64 {
	if prefs == nil || prefs.InteractionCount == 0 {
		return NeutralScore
	}

	var sum float64
	var n int

	if w, ok := prefs.CuisineWeights[recipe.Cuisine]; ok && recipe.Cuisine != "" {
		sum += w
		n++
	}
	if w, ok := prefs.DifficultyWeights[recipe.Difficulty]; ok && recipe.Difficulty != "" {
		sum += w
		n++
	}
	if recipe.TotalTimeMin != nil {
		diff := math.Abs(float64(*recipe.TotalTimeMin - prefs.PreferredTimeMin))
		sum += 1 - math.Min(1, diff/m.cfg.TimeToleranceMin)
		n++
	}

	var ingSum float64
	var ingN int
	for _, name := range ingredientNames(recipe) {
		if w, ok := prefs.IngredientWeights[name]; ok {
			ingSum += w
			ingN++
		}
	}
	if ingN > 0 {
		sum += ingSum / float64(ingN)
		n++
	}

	if n == 0 {
		return NeutralScore
	}
	return clamp(sum/float64(n), 0, 1)
}

func (m *Model) step(old, signal float64) float64 {
	return Step(old, signal, m.cfg.LearningRate)
}

// Step applies one EMA update: old moves rate of the way toward signal,
// clamped to [-1, 1] and rounded to three decimals.
func Step(old, signal, rate float64) float64 {
	return round3(clamp(old+rate*(signal-old), -1, 1))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// ingredientNames returns the distinct, non-empty ingredient names of a recipe.
func ingredientNames(recipe *models.Recipe) []string {
	seen := make(map[string]struct{}, len(recipe.Ingredients))
	names := make([]string, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		if ing.Name == "" {
			continue
		}
		if _, ok := seen[ing.Name]; ok {
			continue
		}
		seen[ing.Name] = struct{}{}
		names = append(names, ing.Name)
	}
	return names
}
