// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package recommend

import (
	"context"
	"strconv"
	"time"

	"github.com/tomtom215/pantryplan/internal/cache"
	"github.com/tomtom215/pantryplan/internal/metrics"
	"github.com/tomtom215/pantryplan/internal/models"
)

const allRecipesKey = "all"

// cachedCatalog is a read-through cache over a CatalogReader. Recipe lists
// and single recipes are cached; ingredient lines always go to the store.
// Expired entries are pruned whenever a fresh value is loaded.
// Callers must treat returned recipes as read-only.
type cachedCatalog struct {
	inner   CatalogReader
	lists   *cache.Cache[[]models.Recipe]
	recipes *cache.Cache[models.Recipe]
}

func newCachedCatalog(inner CatalogReader, ttl time.Duration) *cachedCatalog {
	return &cachedCatalog{
		inner:   inner,
		lists:   cache.New[[]models.Recipe](ttl),
		recipes: cache.New[models.Recipe](ttl),
	}
}

func (c *cachedCatalog) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	if rs, ok := c.lists.Get(allRecipesKey); ok {
		metrics.RecordCatalogCacheLookup(true)
		return rs, nil
	}
	metrics.RecordCatalogCacheLookup(false)

	rs, err := c.inner.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	c.lists.Prune()
	c.lists.Set(allRecipesKey, rs)
	publishStats("recipe_list", c.lists.GetStats())
	return rs, nil
}

func (c *cachedCatalog) GetRecipe(ctx context.Context, id int64) (*models.Recipe, error) {
	key := strconv.FormatInt(id, 10)
	if r, ok := c.recipes.Get(key); ok {
		metrics.RecordCatalogCacheLookup(true)
		return &r, nil
	}
	metrics.RecordCatalogCacheLookup(false)

	r, err := c.inner.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	c.recipes.Prune()
	c.recipes.Set(key, *r)
	publishStats("recipe", c.recipes.GetStats())
	return r, nil
}

func (c *cachedCatalog) RecipeIngredients(ctx context.Context, recipeIDs []int64) ([]models.RecipeIngredient, error) {
	return c.inner.RecipeIngredients(ctx, recipeIDs)
}

func (c *cachedCatalog) invalidate() {
	c.lists.Clear()
	c.recipes.Clear()
	publishStats("recipe_list", c.lists.GetStats())
	publishStats("recipe", c.recipes.GetStats())
}

func publishStats(name string, st cache.Stats) {
	metrics.RecordCatalogCacheStats(name, st.TotalKeys, st.HitRate())
}
