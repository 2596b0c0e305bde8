// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package main

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pantryplan/internal/models"
)

const testUser = "7d9f2c1e-4b7a-4c3e-9b1a-2f6d8e0a5c11"

const testFixture = `{
  "ingredients": [
    {"id": 1, "name": "tomato"},
    {"id": 2, "name": "rice"},
    {"id": 3, "name": "chicken"}
  ],
  "recipes": [
    {"id": 10, "name": "Tomato Soup", "cuisine": "italian", "category": "main", "servings": 2,
     "ingredients": [{"ingredient_id": 1, "quantity_grams": 400}]},
    {"id": 20, "name": "Chicken Rice", "cuisine": "thai", "category": "main", "servings": 2,
     "ingredients": [{"ingredient_id": 2, "quantity_grams": 150}, {"ingredient_id": 3, "quantity_grams": 200}]}
  ],
  "inventory": [
    {"user_id": "` + testUser + `", "ingredient_id": 1, "quantity_grams": 100}
  ]
}`

// setupCLI writes a config file pointing at a fresh database file and a
// fixture, and returns their paths.
func setupCLI(t *testing.T) (cfgPath, fixturePath string) {
	t.Helper()
	dir := t.TempDir()

	cfgPath = filepath.Join(dir, "pantryplan.yaml")
	cfg := "database:\n  path: \"" + filepath.Join(dir, "pantry.duckdb") + "\"\n  threads: 1\n  max_memory: \"256MB\"\nlogging:\n  level: \"error\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fixturePath = filepath.Join(dir, "fixture.json")
	if err := os.WriteFile(fixturePath, []byte(testFixture), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return cfgPath, fixturePath
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), args, &out)
	return out.String(), err
}

func TestCLI_Workflow(t *testing.T) {
	cfgPath, fixturePath := setupCLI(t)

	if _, err := runCLI(t, "import", "--config", cfgPath, "--file", fixturePath); err != nil {
		t.Fatalf("import error = %v", err)
	}

	out, err := runCLI(t, "plan", "--config", cfgPath, "--user", testUser, "--household", "2")
	if err != nil {
		t.Fatalf("plan error = %v", err)
	}
	var plan models.MealPlan
	if err := json.Unmarshal([]byte(out), &plan); err != nil {
		t.Fatalf("decode plan: %v\n%s", err, out)
	}
	if len(plan.Slots) != 2 {
		t.Fatalf("plan has %d slots, want 2", len(plan.Slots))
	}

	out, err = runCLI(t, "shopping-list", "--config", cfgPath, "--user", testUser)
	if err != nil {
		t.Fatalf("shopping-list error = %v", err)
	}
	var entries []models.ShoppingListEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode shopping list: %v\n%s", err, out)
	}
	if len(entries) != 3 {
		t.Errorf("shopping list has %d entries, want 3: %s", len(entries), out)
	}

	if _, err := runCLI(t, "interact", "--config", cfgPath, "--user", testUser,
		"--recipe", "20", "--signal", "rated", "--rating", "5"); err != nil {
		t.Fatalf("interact error = %v", err)
	}

	out, err = runCLI(t, "score", "--config", cfgPath, "--user", testUser, "--recipe", "20")
	if err != nil {
		t.Fatalf("score error = %v", err)
	}
	var score scoreResult
	if err := json.Unmarshal([]byte(out), &score); err != nil {
		t.Fatalf("decode score: %v\n%s", err, out)
	}
	// One five star rating: cuisine weight 0.1 and ingredient weights 0.05.
	if math.Abs(score.Score-0.075) > 1e-9 {
		t.Errorf("score after a five star rating = %v, want 0.075", score.Score)
	}

	for _, slot := range plan.Slots {
		if _, err := runCLI(t, "complete-slot", "--config", cfgPath, "--user", testUser,
			"--plan", plan.ID.String(), "--slot", slot.ID.String()); err != nil {
			t.Fatalf("complete-slot error = %v", err)
		}
	}
	out, err = runCLI(t, "shopping-list", "--config", cfgPath, "--user", testUser)
	if err != nil {
		t.Fatalf("shopping-list error = %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("shopping list after cooking everything = %s, want []", out)
	}

	out, err = runCLI(t, "current-plan", "--config", cfgPath, "--user", testUser)
	if err != nil {
		t.Fatalf("current-plan error = %v", err)
	}
	var current models.MealPlan
	if err := json.Unmarshal([]byte(out), &current); err != nil {
		t.Fatalf("decode current plan: %v\n%s", err, out)
	}
	for _, s := range current.Slots {
		if !s.IsCompleted {
			t.Errorf("slot %s not completed", s.ID)
		}
	}
}

func TestCLI_Errors(t *testing.T) {
	cfgPath, _ := setupCLI(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad user id", []string{"plan", "--user", "not-a-uuid"}, "invalid --user"},
		{"bad week", []string{"plan", "--user", testUser, "--week", "12/10/2026"}, "YYYY-MM-DD"},
		{"week not monday", []string{"plan", "--user", testUser, "--week", "2026-10-14"}, "invalid input"},
		{"bad signal", []string{"interact", "--user", testUser, "--recipe", "1", "--signal", "loved"}, "unknown signal kind"},
		{"unknown recipe", []string{"score", "--user", testUser, "--recipe", "999"}, "not found"},
		{"missing flag", []string{"score", "--user", testUser}, "required flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "--config", cfgPath)
			_, err := runCLI(t, args...)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestCLI_Config(t *testing.T) {
	cfgPath, _ := setupCLI(t)

	out, err := runCLI(t, "config", "--config", cfgPath)
	if err != nil {
		t.Fatalf("config error = %v", err)
	}
	if !strings.Contains(out, "168h0m0s") {
		t.Errorf("config output = %s, want the default expiry horizon", out)
	}
}
