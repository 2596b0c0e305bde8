// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets, // 0.005s, 0.01s, 0.025s, 0.05s, 0.1s, 0.25s, 0.5s, 1s, 2.5s, 5s, 10s
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBTransactionConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_transaction_conflicts_total",
			Help: "Total number of optimistic transaction conflicts",
		},
		[]string{"operation"},
	)

	// Plan Generation Metrics
	PlanGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pantryplan_plan_generation_duration_seconds",
			Help:    "Duration of weekly plan generation in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	PlanGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantryplan_plan_generations_total",
			Help: "Total number of weekly plan generations",
		},
		[]string{"status"}, // "success", "error"
	)

	PlanSlotsFilled = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pantryplan_plan_slots_filled",
			Help:    "Number of slots filled per generated plan",
			Buckets: []float64{0, 2, 4, 7, 10, 14, 21, 28},
		},
	)

	CandidatesScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pantryplan_candidates_scored_total",
			Help: "Total number of recipe candidates scored",
		},
	)

	// Preference Learning Metrics
	PreferenceUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantryplan_preference_updates_total",
			Help: "Total number of preference updates by signal kind",
		},
		[]string{"signal"},
	)

	PreferenceUpdateRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pantryplan_preference_update_retries_total",
			Help: "Total number of preference updates retried after a version conflict",
		},
	)

	// Cache Metrics
	CatalogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantryplan_catalog_cache_lookups_total",
			Help: "Total number of recipe catalog cache lookups",
		},
		[]string{"result"}, // "hit", "miss"
	)

	CatalogCacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pantryplan_catalog_cache_entries",
			Help: "Number of live entries in the recipe catalog cache",
		},
		[]string{"cache"}, // "recipe_list", "recipe"
	)

	CatalogCacheHitRate = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pantryplan_catalog_cache_hit_rate_percent",
			Help: "Hit rate of the recipe catalog cache since start",
		},
		[]string{"cache"},
	)

	// Shopping List Metrics
	ShoppingListEntries = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pantryplan_shopping_list_entries",
			Help:    "Number of entries per generated shopping list",
			Buckets: []float64{0, 1, 5, 10, 20, 40, 80},
		},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordTransactionConflict records an optimistic concurrency conflict
func RecordTransactionConflict(operation string) {
	DBTransactionConflicts.WithLabelValues(operation).Inc()
}

// RecordPlanGeneration records the outcome of one plan generation
func RecordPlanGeneration(duration time.Duration, candidates, slots int, err error) {
	PlanGenerationDuration.Observe(duration.Seconds())
	if err != nil {
		PlanGenerationsTotal.WithLabelValues("error").Inc()
		return
	}
	PlanGenerationsTotal.WithLabelValues("success").Inc()
	CandidatesScored.Add(float64(candidates))
	PlanSlotsFilled.Observe(float64(slots))
}

// RecordPreferenceUpdate records an applied preference update
func RecordPreferenceUpdate(signal string) {
	PreferenceUpdatesTotal.WithLabelValues(signal).Inc()
}

// RecordPreferenceRetry records a preference update retried after a conflict
func RecordPreferenceRetry() {
	PreferenceUpdateRetries.Inc()
}

// RecordShoppingList records the size of a generated shopping list
func RecordShoppingList(entries int) {
	ShoppingListEntries.Observe(float64(entries))
}

// RecordCatalogCacheLookup records a catalog cache hit or miss
func RecordCatalogCacheLookup(hit bool) {
	if hit {
		CatalogCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	CatalogCacheLookups.WithLabelValues("miss").Inc()
}

// RecordCatalogCacheStats publishes a snapshot of one catalog cache
func RecordCatalogCacheStats(cache string, entries int64, hitRate float64) {
	CatalogCacheEntries.WithLabelValues(cache).Set(float64(entries))
	CatalogCacheHitRate.WithLabelValues(cache).Set(hitRate)
}
