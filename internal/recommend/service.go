// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/pantryplan/internal/logging"
	"github.com/tomtom215/pantryplan/internal/metrics"
	"github.com/tomtom215/pantryplan/internal/models"
	"github.com/tomtom215/pantryplan/internal/recommend/preference"
	"github.com/tomtom215/pantryplan/internal/recommend/scoring"
	"github.com/tomtom215/pantryplan/internal/recommend/selection"
	"github.com/tomtom215/pantryplan/internal/recommend/shopping"
	"github.com/tomtom215/pantryplan/internal/validation"
)

// Service plans meals, learns preferences and builds shopping lists.
// It holds no per-user state and is safe for concurrent use.
type Service struct {
	cfg    *Config
	logger zerolog.Logger
	deps   Dependencies

	// catalog is nil when catalog caching is disabled.
	catalog *cachedCatalog

	model    *preference.Model
	scorer   *scoring.Scorer
	selector *selection.Selector

	now func() time.Time
}

// NewService creates a recommendation service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(cfg *Config, deps Dependencies, logger zerolog.Logger) (*Service, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := deps.validate(); err != nil {
		return nil, err
	}

	cfg = cfg.Clone()
	var catalog *cachedCatalog
	if cfg.CatalogCacheTTL > 0 {
		catalog = newCachedCatalog(deps.Catalog, cfg.CatalogCacheTTL)
		deps.Catalog = catalog
	}

	model := preference.NewModel(cfg.Preference)
	return &Service{
		cfg:      cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
		deps:     deps,
		catalog:  catalog,
		model:    model,
		scorer:   scoring.NewScorer(cfg.Scoring, model),
		selector: selection.NewSelector(cfg.Selection),
		now:      time.Now,
	}, nil
}

// InvalidateCatalog drops cached recipes. Call it after the catalog changes.
func (s *Service) InvalidateCatalog() {
	if s.catalog != nil {
		s.catalog.invalidate()
	}
}

// Config returns a copy of the service configuration.
func (s *Service) Config() *Config {
	return s.cfg.Clone()
}

type planRequest struct {
	UserID        uuid.UUID `validate:"user_id"`
	HouseholdSize int       `validate:"min=1,max=50"`
	WeekStart     time.Time `validate:"week_start"`
}

type interactionRequest struct {
	UserID   uuid.UUID `validate:"user_id"`
	RecipeID int64     `validate:"gt=0"`
}

type slotRequest struct {
	UserID uuid.UUID `validate:"user_id"`
	PlanID uuid.UUID `validate:"required"`
	SlotID uuid.UUID `validate:"required"`
}

type userRequest struct {
	UserID uuid.UUID `validate:"user_id"`
}

func validate(req interface{}) error {
	if verr := validation.ValidateStruct(req); verr != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, verr.Error())
	}
	return nil
}

// GenerateWeekPlan scores the whole catalog for a user, fills the week's
// slots greedily and stores the result, replacing any plan the user already
// has for that week. Slots the catalog cannot fill are left out.
func (s *Service) GenerateWeekPlan(ctx context.Context, userID uuid.UUID, householdSize int, weekStart time.Time) (plan *models.MealPlan, err error) {
	if err := validate(planRequest{UserID: userID, HouseholdSize: householdSize, WeekStart: weekStart}); err != nil {
		return nil, err
	}

	start := time.Now()
	candidates := 0
	defer func() {
		slots := 0
		if plan != nil {
			slots = len(plan.Slots)
		}
		metrics.RecordPlanGeneration(time.Since(start), candidates, slots, err)
	}()

	logger := s.requestLogger(ctx, "generate_week_plan", userID)
	now := s.now()

	var (
		recipes    []models.Recipe
		inventory  []models.InventoryItem
		recent     []int64
		favourites []int64
		prefs      *models.PreferenceVector
	)

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(fetchCtx)
	g.Go(func() error {
		var err error
		recipes, err = s.deps.Catalog.ListRecipes(gctx)
		return wrapFetch("list recipes", err)
	})
	g.Go(func() error {
		var err error
		inventory, err = s.deps.Inventory.ListInventory(gctx, userID)
		return wrapFetch("list inventory", err)
	})
	g.Go(func() error {
		var err error
		recent, err = s.deps.History.RecentlyCooked(gctx, userID, now.Add(-s.cfg.Windows.RecentWindow))
		return wrapFetch("recently cooked", err)
	})
	g.Go(func() error {
		var err error
		favourites, err = s.deps.History.Favourites(gctx, userID)
		return wrapFetch("favourites", err)
	})
	g.Go(func() error {
		var err error
		prefs, err = s.loadPreferences(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.storeError(logger, "generate week plan", err)
	}

	sc := scoring.NewContext(prefs, householdSize, inventory, now.Add(s.cfg.Windows.ExpiryHorizon), recent, favourites)
	ranked, err := s.scorer.ScoreAll(ctx, recipes, sc)
	if err != nil {
		return nil, fmt.Errorf("score recipes: %w", err)
	}
	candidates = len(ranked)

	plan = &models.MealPlan{
		ID:            uuid.New(),
		UserID:        userID,
		WeekStart:     weekStart.UTC(),
		IsAIGenerated: true,
		CreatedAt:     now,
		UpdatedAt:     now,
		Slots:         s.selector.Select(ranked, householdSize),
	}
	for i := range plan.Slots {
		plan.Slots[i].ID = uuid.New()
		plan.Slots[i].PlanID = plan.ID
	}

	if err := s.deps.Plans.ReplacePlan(ctx, plan); err != nil {
		return nil, s.storeError(logger, "replace plan", err)
	}

	logger.Info().
		Str("plan_id", plan.ID.String()).
		Time("week_start", plan.WeekStart).
		Int("recipes", len(recipes)).
		Int("candidates", candidates).
		Int("slots", len(plan.Slots)).
		Msg("Week plan generated")

	return plan, nil
}

// RecordInteraction folds one interaction into the user's preference vector.
// The read-modify-write is retried with a fresh read when another writer
// got there first; ErrConflict is returned once the attempts are used up.
func (s *Service) RecordInteraction(ctx context.Context, userID uuid.UUID, recipeID int64, signal preference.Signal) error {
	if err := validate(interactionRequest{UserID: userID, RecipeID: recipeID}); err != nil {
		return err
	}
	if err := signal.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	logger := s.requestLogger(ctx, "record_interaction", userID)

	recipe, err := s.deps.Catalog.GetRecipe(ctx, recipeID)
	if err != nil {
		return s.storeError(logger, "get recipe", err)
	}

	for attempt := 0; attempt < s.cfg.Retry.MaxAttempts; attempt++ {
		if attempt > 0 {
			metrics.RecordPreferenceRetry()
			delay := s.cfg.Retry.BaseDelay << (attempt - 1)
			logger.Debug().
				Int("attempt", attempt+1).
				Dur("backoff", delay).
				Msg("Retrying preference update after conflict")
			if err := sleep(ctx, delay); err != nil {
				return err
			}
		}

		err = s.updatePreferences(ctx, userID, recipe, signal)
		if err == nil {
			metrics.RecordPreferenceUpdate(string(signal.Kind))
			logger.Debug().
				Int64("recipe_id", recipeID).
				Str("signal", signal.String()).
				Msg("Preference vector updated")
			return nil
		}
		if !errors.Is(err, ErrConflict) {
			return s.storeError(logger, "update preferences", err)
		}
	}

	logger.Warn().
		Int64("recipe_id", recipeID).
		Int("attempts", s.cfg.Retry.MaxAttempts).
		Msg("Preference update gave up after repeated conflicts")
	return fmt.Errorf("record interaction: %w", ErrConflict)
}

func (s *Service) updatePreferences(ctx context.Context, userID uuid.UUID, recipe *models.Recipe, signal preference.Signal) error {
	prefs, err := s.loadPreferences(ctx, userID)
	if err != nil {
		return err
	}

	var expected int64
	if prefs == nil {
		prefs = preference.New(userID, s.cfg.Preference)
	} else {
		expected = prefs.Version
	}

	updated := s.model.Update(prefs, recipe, signal)
	updated.UpdatedAt = s.now()
	return s.deps.Preferences.SavePreferences(ctx, updated, expected)
}

// ScoreRecipeForUser returns the taste score of one recipe for a user.
// Users without stored preferences score 0.5; nothing is written.
func (s *Service) ScoreRecipeForUser(ctx context.Context, userID uuid.UUID, recipeID int64) (float64, error) {
	if err := validate(interactionRequest{UserID: userID, RecipeID: recipeID}); err != nil {
		return 0, err
	}

	logger := s.requestLogger(ctx, "score_recipe_for_user", userID)

	var (
		recipe *models.Recipe
		prefs  *models.PreferenceVector
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recipe, err = s.deps.Catalog.GetRecipe(gctx, recipeID)
		return wrapFetch("get recipe", err)
	})
	g.Go(func() error {
		var err error
		prefs, err = s.loadPreferences(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, s.storeError(logger, "score recipe", err)
	}

	return s.model.Score(prefs, recipe), nil
}

// GetShoppingList returns what still has to be bought for the incomplete
// slots of the current week's plan. A user without a plan gets an empty list.
func (s *Service) GetShoppingList(ctx context.Context, userID uuid.UUID) ([]models.ShoppingListEntry, error) {
	if err := validate(userRequest{UserID: userID}); err != nil {
		return nil, err
	}

	logger := s.requestLogger(ctx, "get_shopping_list", userID)

	plan, err := s.deps.Plans.GetPlan(ctx, userID, models.WeekStartOf(s.now()))
	if errors.Is(err, ErrNotFound) {
		return []models.ShoppingListEntry{}, nil
	}
	if err != nil {
		return nil, s.storeError(logger, "get plan", err)
	}

	recipeIDs := plan.IncompleteRecipeIDs()
	if len(recipeIDs) == 0 {
		return []models.ShoppingListEntry{}, nil
	}

	var (
		lines     []models.RecipeIngredient
		inventory []models.InventoryItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lines, err = s.deps.Catalog.RecipeIngredients(gctx, recipeIDs)
		return wrapFetch("recipe ingredients", err)
	})
	g.Go(func() error {
		var err error
		inventory, err = s.deps.Inventory.ListInventory(gctx, userID)
		return wrapFetch("list inventory", err)
	})
	if err := g.Wait(); err != nil {
		return nil, s.storeError(logger, "shopping list", err)
	}

	names := make(map[int64]string, len(lines))
	for _, item := range inventory {
		if item.Name != "" {
			names[item.IngredientID] = item.Name
		}
	}
	for _, line := range lines {
		if line.Name != "" {
			names[line.IngredientID] = line.Name
		}
	}

	entries := shopping.Aggregate(shopping.Input{
		Slots:  plan.Slots,
		Lines:  lines,
		OnHand: shopping.OnHand(inventory),
		Names:  names,
	})
	metrics.RecordShoppingList(len(entries))

	logger.Debug().
		Str("plan_id", plan.ID.String()).
		Int("recipes", len(recipeIDs)).
		Int("entries", len(entries)).
		Msg("Shopping list built")

	return entries, nil
}

// GetCurrentPlan returns the user's plan for the week containing now.
func (s *Service) GetCurrentPlan(ctx context.Context, userID uuid.UUID) (*models.MealPlan, error) {
	if err := validate(userRequest{UserID: userID}); err != nil {
		return nil, err
	}

	plan, err := s.deps.Plans.GetPlan(ctx, userID, models.WeekStartOf(s.now()))
	if err != nil {
		return nil, s.storeError(s.requestLogger(ctx, "get_current_plan", userID), "get plan", err)
	}
	return plan, nil
}

// MarkSlotComplete marks one slot of the user's plan as cooked, which drops
// its recipe from the shopping list. Plans of other users are reported as
// not found.
func (s *Service) MarkSlotComplete(ctx context.Context, userID, planID, slotID uuid.UUID) error {
	if err := validate(slotRequest{UserID: userID, PlanID: planID, SlotID: slotID}); err != nil {
		return err
	}

	logger := s.requestLogger(ctx, "mark_slot_complete", userID)

	plan, err := s.deps.Plans.GetPlanByID(ctx, planID)
	if err != nil {
		return s.storeError(logger, "get plan", err)
	}
	if plan.UserID != userID {
		return fmt.Errorf("plan %s: %w", planID, ErrNotFound)
	}

	found := false
	for i := range plan.Slots {
		if plan.Slots[i].ID == slotID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("slot %s: %w", slotID, ErrNotFound)
	}

	if err := s.deps.Plans.CompleteSlot(ctx, planID, slotID); err != nil {
		return s.storeError(logger, "complete slot", err)
	}

	logger.Debug().
		Str("plan_id", planID.String()).
		Str("slot_id", slotID.String()).
		Msg("Slot marked complete")
	return nil
}

// loadPreferences returns nil, nil for a user without a stored vector.
func (s *Service) loadPreferences(ctx context.Context, userID uuid.UUID) (*models.PreferenceVector, error) {
	prefs, err := s.deps.Preferences.GetPreferences(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return prefs, nil
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func (s *Service) requestLogger(ctx context.Context, op string, userID uuid.UUID) zerolog.Logger {
	ctx = logging.ContextWithUserID(ctx, userID)
	return logging.Fields(ctx, s.logger.With()).
		Str("operation", op).
		Logger()
}

// storeError passes through errors callers can act on and hides the rest
// behind ErrInternal after logging them.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func (s *Service) storeError(logger zerolog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict), errors.Is(err, ErrInvalidInput):
		return fmt.Errorf("%s: %w", op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	}
	logger.Error().Err(err).Str("step", op).Msg("Store operation failed")
	return fmt.Errorf("%s: %w", op, ErrInternal)
}

func wrapFetch(op string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
