// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

/*
Package cache provides a thread-safe in-memory cache with TTL support.

It backs the read-through recipe catalog cache of the recommend package: the
catalog is shared by every user and changes only on import, while every plan
generation reads all of it.

# Overview

The cache provides:
  - Typed values through generics (Cache[V])
  - Thread-safe concurrent access (sync.RWMutex)
  - Lazy expiration checked on Get, plus Prune for explicit sweeps
  - Hit, miss and eviction counters for monitoring

There is no background goroutine; an expired entry is dropped the first time
it is read after its deadline.

# Usage Example

	recipes := cache.New[[]models.Recipe](5 * time.Minute)
	if rs, ok := recipes.Get("all"); ok {
	    return rs, nil
	}
	rs, err := store.ListRecipes(ctx)
	if err == nil {
	    recipes.Set("all", rs)
	}
*/
package cache
