// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/pantryplan/internal/config"
	"github.com/tomtom215/pantryplan/internal/database"
	"github.com/tomtom215/pantryplan/internal/logging"
	"github.com/tomtom215/pantryplan/internal/recommend"
)

// app holds the resources shared by every subcommand. They are opened by the
// root command's pre-run hook and released by run.
type app struct {
	cfgFile string

	cfg    *config.Config
	db     *database.DB
	svc    *recommend.Service
	logger zerolog.Logger
}

// run executes the command line in args, writing results to out.
func run(ctx context.Context, args []string, out io.Writer) error {
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(out)
	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "pantryplan",
		Short: "Weekly meal planning from your pantry and your tastes",
		Long: `pantryplan generates weekly meal plans that use up what is in your pantry,
learns your preferences from ratings and cooking history, and builds the
shopping list for the rest.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			ctx := logging.ContextWithNewCorrelationID(cmd.Context())
			ctx = logging.ContextWithLogger(ctx, a.logger)
			cmd.SetContext(ctx)
			logging.Ctx(ctx).Debug().Str("command", cmd.Name()).Msg("Running command")
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $CONFIG_PATH, ./pantryplan.yaml, /etc/pantryplan/config.yaml)")

	root.AddCommand(
		newImportCmd(a),
		newPlanCmd(a),
		newCurrentPlanCmd(a),
		newInteractCmd(a),
		newScoreCmd(a),
		newShoppingListCmd(a),
		newCompleteSlotCmd(a),
		newConfigCmd(a),
	)
	return root
}

// open loads configuration, initializes logging and opens the database.
func (a *app) open(ctx context.Context) error {
	cfg, err := config.LoadWithKoanf(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	a.logger = logging.Logger()

	a.logger.Debug().
		Str("config_file", a.cfgFile).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	a.db = db

	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}
	a.logger.Debug().Str("db_path", db.GetDatabasePath()).Msg("Database ready")

	svc, err := newRecommendService(cfg, db, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create recommendation service: %w", err)
	}
	a.svc = svc
	return nil
}

func (a *app) close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Error closing database")
	}
	a.db = nil
}
