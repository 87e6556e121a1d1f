// Package scheduler implements the spaced-repetition core: the pure review
// state transition, due-card selection, and the in-session study queue.
// It performs no I/O; callers persist the states it computes.
package scheduler

import (
	"time"

	"github.com/benrueckert/koda-flashcard-app/internal/models"
)

// Ease factor and interval bounds. Every state leaving Apply satisfies them.
const (
	MinEase = 1.3
	MaxEase = 2.8

	DefaultEase = 2.5

	MinInterval = 6 * time.Hour        // 0.25 days
	MaxInterval = 365 * 24 * time.Hour // 365 days
)

// ClampEase clamps an ease factor to [MinEase, MaxEase].
func ClampEase(ease float64) float64 {
	if ease < MinEase {
		return MinEase
	}
	if ease > MaxEase {
		return MaxEase
	}
	return ease
}

// ClampInterval clamps an interval to [MinInterval, MaxInterval].
func ClampInterval(interval time.Duration) time.Duration {
	if interval < MinInterval {
		return MinInterval
	}
	if interval > MaxInterval {
		return MaxInterval
	}
	return interval
}

// NewCardState returns the memory state of a freshly created card,
// immediately due for its first review.
func NewCardState(now time.Time) models.CardMemoryState {
	return models.CardMemoryState{
		Stage:              models.StageNew,
		Interval:           models.Day,
		EaseFactor:         DefaultEase,
		ConsecutiveCorrect: 0,
		ReviewCount:        0,
		NextReviewAt:       now,
	}
}
