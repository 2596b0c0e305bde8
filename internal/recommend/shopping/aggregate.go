// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

// Package shopping turns the remaining meals of a plan into a shopping list.
package shopping

import (
	"sort"

	"github.com/tomtom215/pantryplan/internal/models"
)

// Input is everything Aggregate needs about one plan.
type Input struct {
	// Slots of the plan. Completed slots are ignored.
	Slots []models.MealSlot

	// Lines are the ingredient lines of the recipes referenced by Slots.
	// Lines without a gram quantity are ignored.
	Lines []models.RecipeIngredient

	// OnHand maps ingredient id to grams in the inventory.
	OnHand map[int64]float64

	// Names maps ingredient id to display name.
	Names map[int64]string
}

// Aggregate sums the grams needed by the incomplete slots of a plan, subtracts
// what is on hand and returns what is left to buy, sorted by ingredient name.
//
// Each distinct recipe counts once however many slots it fills, and quantities
// are taken as written in the recipe without scaling for servings.
func Aggregate(in Input) []models.ShoppingListEntry {
	pending := make(map[int64]struct{})
	for _, s := range in.Slots {
		if !s.IsCompleted {
			pending[s.RecipeID] = struct{}{}
		}
	}
	if len(pending) == 0 {
		return []models.ShoppingListEntry{}
	}

	needed := make(map[int64]float64)
	for _, line := range in.Lines {
		if _, ok := pending[line.RecipeID]; !ok || line.QuantityGrams == nil {
			continue
		}
		needed[line.IngredientID] += *line.QuantityGrams
	}

	entries := make([]models.ShoppingListEntry, 0, len(needed))
	for id, need := range needed {
		have := in.OnHand[id]
		if need <= have {
			continue
		}
		entries = append(entries, models.ShoppingListEntry{
			IngredientID: id,
			Name:         in.Names[id],
			NeededGrams:  need,
			HaveGrams:    have,
			ToBuyGrams:   need - have,
			InInventory:  have > 0,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].IngredientID < entries[j].IngredientID
	})
	return entries
}

// OnHand sums inventory grams per ingredient.
func OnHand(items []models.InventoryItem) map[int64]float64 {
	m := make(map[int64]float64, len(items))
	for _, it := range items {
		m[it.IngredientID] += it.QuantityGrams
	}
	return m
}
