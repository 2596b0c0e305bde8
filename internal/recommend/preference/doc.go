// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

/*
Package preference implements the online taste model that learns what each
user likes from their interactions with recipes.

Every interaction produces a scalar signal in [-1, 1]. The signal nudges each
weight the recipe touches toward itself with an exponential moving average:

	w' = clamp(w + rate*(signal - w), -1, 1)

rounded to three decimals. Cuisine and difficulty weights move with the full
signal, ingredient weights (keyed by name) with a damped signal, and the macro
bias toward the recipe's calorie split. Positive signals also pull the
preferred cooking time toward the recipe's time as a running mean.

Everything in this package is a pure function of its inputs. Loading and
persisting the vector is the caller's job; see the recommend package.

Usage:

	m := preference.NewModel(preference.DefaultConfig())
	prefs := preference.New(userID, m.Config())
	prefs = m.Update(prefs, recipe, preference.Rated(5))
	score := m.Score(prefs, recipe) // 0.0 - 1.0
*/
package preference
