// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

/*
Package config loads Pantryplan configuration.

Configuration is layered with koanf:

 1. Struct defaults (defaultConfig)
 2. An optional YAML file, found via --config, CONFIG_PATH or DefaultConfigPaths
 3. Environment variables, mapped explicitly in envMappings

Only mapped environment variables are read. List-valued settings such as
RECOMMEND_MEAL_TYPES accept a comma-separated string.

Example file:

	database:
	  path: /data/pantryplan.duckdb
	logging:
	  level: debug
	  format: console
	recommend:
	  meal_types: [breakfast, lunch, dinner]
	  weights:
	    coverage: 0.35
	    expiry: 0.20

Validate performs coarse checks needed at startup. The recommend package
validates the full tuning (weight sums and similar) when the service is built.
*/
package config
