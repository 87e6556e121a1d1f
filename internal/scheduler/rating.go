package scheduler

import (
	"errors"
	"fmt"
	"time"
)

// PawRating is the four-button rating scale shown in the UI. The canonical
// scale everywhere else in the system is the 0-5 quality scale; paw ratings
// are converted at the boundary and never reach the processor directly.
type PawRating int

const (
	PawWrong PawRating = 1
	PawHard  PawRating = 2
	PawGood  PawRating = 3
	PawEasy  PawRating = 4
)

// ErrInvalidPawRating is returned when a rating is outside the 1-4 scale.
var ErrInvalidPawRating = errors.New("paw rating out of range")

// Valid reports whether r is on the 1-4 scale.
func (r PawRating) Valid() bool {
	return r >= PawWrong && r <= PawEasy
}

// Quality maps a paw rating onto the canonical quality scale:
// wrong=1, hard=3, good=4, easy=5.
func (r PawRating) Quality() int {
	switch r {
	case PawWrong:
		return 1
	case PawHard:
		return 3
	case PawGood:
		return 4
	default:
		return 5
	}
}

// Correct reports whether the rating counts as a successful recall. Only
// PawWrong is a failure; a hard recall is still a recall.
func (r PawRating) Correct() bool {
	return r >= PawHard
}

// Outcome converts the rating into a canonical review outcome for the card.
func (r PawRating) Outcome(cardID int64, responseTime time.Duration) (Outcome, error) {
	if !r.Valid() {
		return Outcome{}, fmt.Errorf("%w: %d (must be 1-4)", ErrInvalidPawRating, r)
	}
	return Outcome{
		CardID:       cardID,
		Quality:      r.Quality(),
		ResponseTime: responseTime,
		WasCorrect:   r.Correct(),
	}, nil
}
