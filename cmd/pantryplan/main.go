// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

// Package main is the entry point for the pantryplan command line tool.
//
// pantryplan drives the recommendation service against a local DuckDB
// database: it imports a catalog and pantry fixture, generates weekly meal
// plans, records interactions that train the preference model, scores single
// recipes and prints the shopping list for the current week.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (DATABASE_PATH, LOG_LEVEL, RECOMMEND_*)
//   - Config file (--config, CONFIG_PATH, ./pantryplan.yaml, /etc/pantryplan/config.yaml)
//   - Built-in defaults
//
// # Example Usage
//
//	pantryplan import --file fixture.json
//	pantryplan plan --user 7d9f2c1e-4b7a-4c3e-9b1a-2f6d8e0a5c11 --household 2
//	pantryplan interact --user 7d9f... --recipe 10 --signal rated --rating 5
//	pantryplan shopping-list --user 7d9f...
//
// All results are written to stdout as JSON; logs go to stderr.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
