// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/pantryplan/internal/database/query"
	"github.com/tomtom215/pantryplan/internal/models"
)

const recipeColumns = `r.id, r.name, r.cuisine, r.category, r.difficulty, r.servings, r.total_time_min,
	n.calories, n.protein_g, n.carbs_g, n.fat_g, n.fiber_g`

// ListRecipes returns every recipe with its ingredient lines and nutrition,
// ordered by id.
func (db *DB) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	return db.queryRecipes(ctx, "list_recipes", query.NewWhereBuilder())
}

// GetRecipe returns one recipe with ingredients and nutrition.
func (db *DB) GetRecipe(ctx context.Context, id int64) (*models.Recipe, error) {
	recipes, err := db.queryRecipes(ctx, "get_recipe", query.NewWhereBuilder().AddClause("r.id = ?", id))
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, fmt.Errorf("recipe %d: %w", id, classify(sql.ErrNoRows))
	}
	return &recipes[0], nil
}

// RecipeIngredients returns the ingredient lines of the given recipes.
func (db *DB) RecipeIngredients(ctx context.Context, recipeIDs []int64) ([]models.RecipeIngredient, error) {
	if len(recipeIDs) == 0 {
		return []models.RecipeIngredient{}, nil
	}
	return db.queryIngredientLines(ctx, query.NewWhereBuilder().AddInt64In("ri.recipe_id", recipeIDs))
}

func (db *DB) queryRecipes(ctx context.Context, op string, wb *query.WhereBuilder) (recipes []models.Recipe, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { err = observe(op, "recipes", start, err) }()

	where, args := wb.BuildWithPrefix()
	rows, err := db.conn.QueryContext(ctx, `SELECT `+recipeColumns+`
		FROM recipes r
		LEFT JOIN recipe_nutrition n ON n.recipe_id = r.id
		`+where+`
		ORDER BY r.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer closeWithLog(rows, "rows")

	index := make(map[int64]int)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		index[r.ID] = len(recipes)
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}
	if len(recipes) == 0 {
		return []models.Recipe{}, nil
	}

	ids := make([]int64, len(recipes))
	for i := range recipes {
		ids[i] = recipes[i].ID
	}
	lines, err := db.queryIngredientLines(ctx, query.NewWhereBuilder().AddInt64In("ri.recipe_id", ids))
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		i := index[line.RecipeID]
		recipes[i].Ingredients = append(recipes[i].Ingredients, line)
	}

	return recipes, nil
}

func scanRecipe(rows *sql.Rows) (models.Recipe, error) {
	var (
		r                        models.Recipe
		cuisine, category, diff  sql.NullString
		totalTime                sql.NullInt64
		calories, protein, carbs sql.NullFloat64
		fat, fiber               sql.NullFloat64
	)
	if err := rows.Scan(&r.ID, &r.Name, &cuisine, &category, &diff, &r.Servings, &totalTime,
		&calories, &protein, &carbs, &fat, &fiber); err != nil {
		return r, fmt.Errorf("failed to scan recipe: %w", err)
	}

	r.Cuisine = cuisine.String
	r.Category = category.String
	r.Difficulty = diff.String
	if totalTime.Valid {
		t := int(totalTime.Int64)
		r.TotalTimeMin = &t
	}
	if calories.Valid {
		r.Nutrition = &models.Nutrition{
			Calories: calories.Float64,
			ProteinG: protein.Float64,
			CarbsG:   carbs.Float64,
			FatG:     fat.Float64,
			FiberG:   fiber.Float64,
		}
	}
	return r, nil
}

func (db *DB) queryIngredientLines(ctx context.Context, wb *query.WhereBuilder) (lines []models.RecipeIngredient, err error) {
	start := time.Now()
	defer func() { err = observe("recipe_ingredients", "recipe_ingredients", start, err) }()

	where, args := wb.BuildWithPrefix()
	rows, err := db.conn.QueryContext(ctx, `SELECT ri.recipe_id, ri.ingredient_id, COALESCE(i.name, ''), ri.quantity_grams
		FROM recipe_ingredients ri
		LEFT JOIN ingredients i ON i.id = ri.ingredient_id
		`+where+`
		ORDER BY ri.recipe_id, ri.ingredient_id`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipe ingredients: %w", err)
	}
	defer closeWithLog(rows, "rows")

	lines = []models.RecipeIngredient{}
	for rows.Next() {
		var (
			line models.RecipeIngredient
			qty  sql.NullFloat64
		)
		if err := rows.Scan(&line.RecipeID, &line.IngredientID, &line.Name, &qty); err != nil {
			return nil, fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		if qty.Valid {
			q := qty.Float64
			line.QuantityGrams = &q
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipe ingredients: %w", err)
	}
	return lines, nil
}

// UpsertIngredient inserts or renames a catalog ingredient.
func (db *DB) UpsertIngredient(ctx context.Context, ing *models.Ingredient) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { err = observe("upsert_ingredient", "ingredients", start, err) }()

	_, err = db.conn.ExecContext(ctx, `INSERT INTO ingredients (id, name, category) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, category = EXCLUDED.category`,
		ing.ID, ing.Name, nullString(ing.Category))
	if err != nil {
		return fmt.Errorf("failed to upsert ingredient %d: %w", ing.ID, err)
	}
	return nil
}

// SaveRecipe inserts or replaces a recipe together with its ingredient lines
// and nutrition in one transaction.
func (db *DB) SaveRecipe(ctx context.Context, r *models.Recipe) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { err = observe("save_recipe", "recipes", start, err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			db.rollback(tx, err)
		}
	}()

	var totalTime interface{}
	if r.TotalTimeMin != nil {
		totalTime = *r.TotalTimeMin
	}
	servings := r.Servings
	if servings < 1 {
		servings = 1
	}

	if _, err = tx.ExecContext(ctx, `INSERT INTO recipes (id, name, cuisine, category, difficulty, servings, total_time_min)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			cuisine = EXCLUDED.cuisine,
			category = EXCLUDED.category,
			difficulty = EXCLUDED.difficulty,
			servings = EXCLUDED.servings,
			total_time_min = EXCLUDED.total_time_min`,
		r.ID, r.Name, nullString(r.Cuisine), nullString(r.Category), nullString(r.Difficulty), servings, totalTime); err != nil {
		return fmt.Errorf("failed to save recipe %d: %w", r.ID, err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, r.ID); err != nil {
		return fmt.Errorf("failed to clear recipe ingredients: %w", err)
	}
	for _, line := range r.Ingredients {
		var qty interface{}
		if line.QuantityGrams != nil {
			qty = *line.QuantityGrams
		}
		if _, err = tx.ExecContext(ctx, `INSERT INTO recipe_ingredients (recipe_id, ingredient_id, quantity_grams) VALUES (?, ?, ?)`,
			r.ID, line.IngredientID, qty); err != nil {
			return fmt.Errorf("failed to insert recipe ingredient %d: %w", line.IngredientID, err)
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM recipe_nutrition WHERE recipe_id = ?`, r.ID); err != nil {
		return fmt.Errorf("failed to clear recipe nutrition: %w", err)
	}
	if n := r.Nutrition; n != nil {
		if _, err = tx.ExecContext(ctx, `INSERT INTO recipe_nutrition (recipe_id, calories, protein_g, carbs_g, fat_g, fiber_g)
			VALUES (?, ?, ?, ?, ?, ?)`, r.ID, n.Calories, n.ProteinG, n.CarbsG, n.FatG, n.FiberG); err != nil {
			return fmt.Errorf("failed to insert recipe nutrition: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recipe: %w", err)
	}
	return nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
