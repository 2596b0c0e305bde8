// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// MealType identifies a slot within a day.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// mealTypeOrder is the order slots are filled within a day.
var mealTypeOrder = map[MealType]int{
	MealBreakfast: 0,
	MealLunch:     1,
	MealDinner:    2,
	MealSnack:     3,
}

// Valid reports whether m is a known meal type.
func (m MealType) Valid() bool {
	_, ok := mealTypeOrder[m]
	return ok
}

// Order returns the position of the meal type within a day, or -1 if unknown.
func (m MealType) Order() int {
	if o, ok := mealTypeOrder[m]; ok {
		return o
	}
	return -1
}

// MealPlan is a user's plan for the week starting on WeekStart (a Monday).
type MealPlan struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	WeekStart     time.Time  `json:"week_start"`
	IsAIGenerated bool       `json:"is_ai_generated"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Slots         []MealSlot `json:"slots"`
}

// MealSlot assigns one recipe to one (day, meal type) cell of a plan.
// DayOfWeek is 0 for Monday through 6 for Sunday.
type MealSlot struct {
	ID               uuid.UUID `json:"id"`
	PlanID           uuid.UUID `json:"plan_id"`
	RecipeID         int64     `json:"recipe_id"`
	DayOfWeek        int       `json:"day_of_week"`
	MealType         MealType  `json:"meal_type"`
	ServingsOverride *int      `json:"servings_override,omitempty"`
	IsCompleted      bool      `json:"is_completed"`
}

// IncompleteRecipeIDs returns the distinct recipe ids of slots not yet cooked.
func (p *MealPlan) IncompleteRecipeIDs() []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, s := range p.Slots {
		if s.IsCompleted {
			continue
		}
		if _, ok := seen[s.RecipeID]; ok {
			continue
		}
		seen[s.RecipeID] = struct{}{}
		ids = append(ids, s.RecipeID)
	}
	return ids
}

// WeekStartOf returns the Monday 00:00 UTC of the week containing t.
func WeekStartOf(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SortSlots orders slots by day, then by meal type within the day.
func SortSlots(slots []MealSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].DayOfWeek != slots[j].DayOfWeek {
			return slots[i].DayOfWeek < slots[j].DayOfWeek
		}
		return slots[i].MealType.Order() < slots[j].MealType.Order()
	})
}
