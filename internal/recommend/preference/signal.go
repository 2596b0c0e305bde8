// Pantryplan - Weekly Meal Planning and Preference Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pantryplan

package preference

import "fmt"

// SignalKind identifies the interaction that produced a signal.
type SignalKind string

const (
	KindRated      SignalKind = "rated"
	KindCooked     SignalKind = "cooked"
	KindFavourited SignalKind = "favourited"
	KindSkipped    SignalKind = "skipped"
)

// Signal is one user interaction with a recipe.
// Rating is only meaningful for KindRated and must be 1-5.
type Signal struct {
	Kind   SignalKind `json:"kind"`
	Rating int        `json:"rating,omitempty"`
}

// Rated returns a star-rating signal.
func Rated(stars int) Signal { return Signal{Kind: KindRated, Rating: stars} }

// Cooked returns the signal for a completed cook.
func Cooked() Signal { return Signal{Kind: KindCooked} }

// Favourited returns the signal for adding a recipe to favourites.
func Favourited() Signal { return Signal{Kind: KindFavourited} }

// Skipped returns the signal for a dismissed suggestion.
func Skipped() Signal { return Signal{Kind: KindSkipped} }

// ratingValues maps star ratings to signal magnitudes.
var ratingValues = map[int]float64{
	5: 1.0,
	4: 0.6,
	3: 0.2,
	2: -0.2,
	1: -0.6,
}

// Value returns the signal magnitude in [-1, 1].
// A rating outside 1-5 maps to 0, which leaves weights decaying toward zero.
func (s Signal) Value() float64 {
	switch s.Kind {
	case KindRated:
		return ratingValues[s.Rating]
	case KindCooked:
		return 0.5
	case KindFavourited:
		return 0.8
	case KindSkipped:
		return -0.3
	default:
		return 0
	}
}

// Validate reports whether the signal is well formed.
func (s Signal) Validate() error {
	switch s.Kind {
	case KindRated:
		if s.Rating < 1 || s.Rating > 5 {
			return fmt.Errorf("rating must be between 1 and 5, got %d", s.Rating)
		}
	case KindCooked, KindFavourited, KindSkipped:
	default:
		return fmt.Errorf("unknown signal kind %q", s.Kind)
	}
	return nil
}

// String implements fmt.Stringer.
func (s Signal) String() string {
	if s.Kind == KindRated {
		return fmt.Sprintf("rated(%d)", s.Rating)
	}
	return string(s.Kind)
}

// ParseSignal builds a signal from its kind name and optional rating.
func ParseSignal(kind string, rating int) (Signal, error) {
	s := Signal{Kind: SignalKind(kind)}
	if s.Kind == KindRated {
		s.Rating = rating
	}
	if err := s.Validate(); err != nil {
		return Signal{}, err
	}
	return s, nil
}
