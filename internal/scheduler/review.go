package scheduler

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/benrueckert/koda-flashcard-app/internal/models"
)

// Quality bounds for the canonical 0-5 rating scale.
const (
	MinQuality = 0
	MaxQuality = 5
)

// ErrInvalidQuality is returned when an outcome's quality is outside the
// canonical 0-5 scale. Invalid outcomes are rejected, never clamped.
var ErrInvalidQuality = errors.New("quality out of range")

// Outcome is one review event. WasCorrect decides the success/failure
// branch; Quality grades how easy the recall was within that branch.
type Outcome struct {
	CardID       int64
	Quality      int
	ResponseTime time.Duration
	WasCorrect   bool
}

// Validate checks the outcome against the canonical quality scale.
func (o Outcome) Validate() error {
	if o.Quality < MinQuality || o.Quality > MaxQuality {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidQuality, o.Quality, MinQuality, MaxQuality)
	}
	return nil
}

// Apply computes the card memory state after one review. It is a pure
// function and is not idempotent: applying the same outcome twice compounds
// ease and interval changes, so callers must apply each outcome at most once.
func Apply(state models.CardMemoryState, outcome Outcome, now time.Time) (models.CardMemoryState, error) {
	if err := outcome.Validate(); err != nil {
		return models.CardMemoryState{}, err
	}

	next := state
	if outcome.WasCorrect {
		applySuccess(&next, state, outcome.Quality)
	} else {
		applyFailure(&next, state)
	}

	next.EaseFactor = ClampEase(next.EaseFactor)
	next.Interval = ClampInterval(next.Interval)
	next.NextReviewAt = now.Add(next.Interval)
	next.ReviewCount++
	return next, nil
}

func applySuccess(next *models.CardMemoryState, state models.CardMemoryState, quality int) {
	next.ConsecutiveCorrect = state.ConsecutiveCorrect + 1

	switch state.Stage {
	case models.StageNew:
		next.Stage = models.StageLearning
		if quality >= 4 {
			next.Interval = models.Days(2)
		} else {
			next.Interval = models.Days(1)
		}

	case models.StageLearning:
		if next.ConsecutiveCorrect >= 2 && quality >= 3 {
			next.Stage = models.StageReview
			if quality >= 4 {
				next.Interval = models.Days(5)
			} else {
				next.Interval = models.Days(4)
			}
		} else {
			next.Interval = grow(state.Interval, 1.3, 1)
		}

	case models.StageReview:
		if (next.ConsecutiveCorrect >= 3 && quality >= 4) ||
			(next.ConsecutiveCorrect >= 4 && quality >= 3) {
			next.Stage = models.StageMastered
		}
		// Interval always grows by the ease factor, whether or not the
		// card graduates this step.
		next.Interval = grow(state.Interval, state.EaseFactor, 1)

	case models.StageMastered:
		next.Interval = grow(state.Interval, state.EaseFactor, 7)
	}

	// Ease adjustment happens after the stage/interval logic, so the
	// interval above was computed with the pre-review ease factor.
	switch {
	case quality >= 4:
		next.EaseFactor = state.EaseFactor + 0.1
	case quality == 3:
		next.EaseFactor = state.EaseFactor + 0.05
	default:
		next.EaseFactor = state.EaseFactor - 0.1
	}
}

func applyFailure(next *models.CardMemoryState, state models.CardMemoryState) {
	next.ConsecutiveCorrect = 0
	next.EaseFactor = state.EaseFactor - 0.2

	switch state.Stage {
	case models.StageMastered, models.StageReview:
		next.Stage = models.StageLearning
		next.Interval = models.Days(1)
	case models.StageLearning:
		next.Stage = models.StageNew
		next.Interval = models.Days(0.5)
	default:
		// Already new: shrink to the 6-hour floor and try again soon.
		next.Interval = models.Days(0.25)
	}
}

// grow multiplies an interval by factor, rounding to whole days with the
// given floor. Growth always lands on whole days; fractional intervals only
// come from the failure branch.
func grow(interval time.Duration, factor, floorDays float64) time.Duration {
	days := math.Round(models.InDays(interval) * factor)
	if days < floorDays {
		days = floorDays
	}
	return models.Days(days)
}
