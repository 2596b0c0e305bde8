// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

/*
Package metrics provides Prometheus metrics collection for observability.

All collectors are registered with the default registry through promauto at
package initialisation. Callers use the Record* helpers rather than touching
the collectors directly.

# Available Metrics

Database:
  - duckdb_query_duration_seconds{operation,table}
  - duckdb_query_errors_total{operation,table,error_type}
  - duckdb_transaction_conflicts_total{operation}

Planning:
  - pantryplan_plan_generation_duration_seconds
  - pantryplan_plan_generations_total{status}
  - pantryplan_plan_slots_filled
  - pantryplan_candidates_scored_total

Preferences:
  - pantryplan_preference_updates_total{signal}
  - pantryplan_preference_update_retries_total

Shopping:
  - pantryplan_shopping_list_entries
*/
package metrics
