// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tomtom215/pantryplan/internal/database"
	"github.com/tomtom215/pantryplan/internal/models"
	"github.com/tomtom215/pantryplan/internal/recommend/preference"
)

func addUserFlag(cmd *cobra.Command) {
	cmd.Flags().String("user", "", "user id (UUID)")
	_ = cmd.MarkFlagRequired("user")
}

func newImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load ingredients, recipes, pantry items and history from a JSON fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("file")
			f, err := os.Open(path) //nolint:gosec // path is operator supplied
			if err != nil {
				return fmt.Errorf("failed to open fixture: %w", err)
			}
			defer f.Close()

			fixture, err := database.DecodeFixture(f)
			if err != nil {
				return err
			}
			stats, err := a.db.Import(cmd.Context(), fixture)
			a.svc.InvalidateCatalog()
			if err != nil {
				return fmt.Errorf("import failed after %d recipes: %w", stats.Recipes, err)
			}
			return printJSON(cmd.OutOrStdout(), stats)
		},
	}
	cmd.Flags().String("file", "", "fixture file (JSON)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newPlanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate (or regenerate) the meal plan for a week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := uuidFlag(cmd, "user")
			if err != nil {
				return err
			}
			week, err := weekFlag(cmd, "week", time.Now())
			if err != nil {
				return err
			}
			household, _ := cmd.Flags().GetInt("household")

			plan, err := a.svc.GenerateWeekPlan(cmd.Context(), userID, household, week)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), plan)
		},
	}
	addUserFlag(cmd)
	cmd.Flags().Int("household", 2, "number of people to cook for")
	cmd.Flags().String("week", "", "week start, a Monday as YYYY-MM-DD (default: this week)")
	return cmd
}

func newCurrentPlanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "current-plan",
		Short: "Show the meal plan for this week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := uuidFlag(cmd, "user")
			if err != nil {
				return err
			}
			plan, err := a.svc.GetCurrentPlan(cmd.Context(), userID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), plan)
		},
	}
	addUserFlag(cmd)
	return cmd
}

// interactionResult is printed after a recorded interaction.
type interactionResult struct {
	UserID   uuid.UUID `json:"user_id"`
	RecipeID int64     `json:"recipe_id"`
	Signal   string    `json:"signal"`
}

func newInteractCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interact",
		Short: "Record a rating, cook, favourite or skip to train preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := uuidFlag(cmd, "user")
			if err != nil {
				return err
			}
			recipeID, _ := cmd.Flags().GetInt64("recipe")
			kind, _ := cmd.Flags().GetString("signal")
			rating, _ := cmd.Flags().GetInt("rating")

			sig, err := preference.ParseSignal(kind, rating)
			if err != nil {
				return err
			}
			if err := a.svc.RecordInteraction(cmd.Context(), userID, recipeID, sig); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), interactionResult{UserID: userID, RecipeID: recipeID, Signal: sig.String()})
		},
	}
	addUserFlag(cmd)
	cmd.Flags().Int64("recipe", 0, "recipe id")
	cmd.Flags().String("signal", "", "rated, cooked, favourited or skipped")
	cmd.Flags().Int("rating", 0, "star rating 1-5 (with --signal rated)")
	_ = cmd.MarkFlagRequired("recipe")
	_ = cmd.MarkFlagRequired("signal")
	return cmd
}

// scoreResult is printed by the score command.
type scoreResult struct {
	UserID   uuid.UUID `json:"user_id"`
	RecipeID int64     `json:"recipe_id"`
	Score    float64   `json:"score"`
}

func newScoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Show how well a recipe matches the learned preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := uuidFlag(cmd, "user")
			if err != nil {
				return err
			}
			recipeID, _ := cmd.Flags().GetInt64("recipe")

			score, err := a.svc.ScoreRecipeForUser(cmd.Context(), userID, recipeID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), scoreResult{UserID: userID, RecipeID: recipeID, Score: score})
		},
	}
	addUserFlag(cmd)
	cmd.Flags().Int64("recipe", 0, "recipe id")
	_ = cmd.MarkFlagRequired("recipe")
	return cmd
}

func newShoppingListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shopping-list",
		Short: "List what to buy for the uncooked meals of this week's plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := uuidFlag(cmd, "user")
			if err != nil {
				return err
			}
			entries, err := a.svc.GetShoppingList(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if entries == nil {
				entries = []models.ShoppingListEntry{}
			}
			return printJSON(cmd.OutOrStdout(), entries)
		},
	}
	addUserFlag(cmd)
	return cmd
}

// slotResult is printed after a slot is completed.
type slotResult struct {
	PlanID    uuid.UUID `json:"plan_id"`
	SlotID    uuid.UUID `json:"slot_id"`
	Completed bool      `json:"completed"`
}

func newCompleteSlotCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete-slot",
		Short: "Mark a planned meal as cooked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := uuidFlag(cmd, "user")
			if err != nil {
				return err
			}
			planID, err := uuidFlag(cmd, "plan")
			if err != nil {
				return err
			}
			slotID, err := uuidFlag(cmd, "slot")
			if err != nil {
				return err
			}
			if err := a.svc.MarkSlotComplete(cmd.Context(), userID, planID, slotID); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), slotResult{PlanID: planID, SlotID: slotID, Completed: true})
		},
	}
	addUserFlag(cmd)
	cmd.Flags().String("plan", "", "plan id (UUID)")
	cmd.Flags().String("slot", "", "slot id (UUID)")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("slot")
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective recommendation settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd.OutOrStdout(), a.svc.Config())
		},
	}
}
