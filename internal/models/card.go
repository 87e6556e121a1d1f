package models

import "time"

// Stage is the coarse bucket of a card's learning progress.
type Stage string

const (
	StageNew      Stage = "new"
	StageLearning Stage = "learning"
	StageReview   Stage = "review"
	StageMastered Stage = "mastered"
)

// Valid reports whether s is one of the defined stages.
func (s Stage) Valid() bool {
	switch s {
	case StageNew, StageLearning, StageReview, StageMastered:
		return true
	}
	return false
}

// Day is the unit all scheduling intervals are expressed in at API and
// storage boundaries. Internally intervals are plain time.Duration values
// so fractional days (6h, 12h) never go through float day arithmetic.
const Day = 24 * time.Hour

// Days converts a day count (possibly fractional) to a duration.
func Days(d float64) time.Duration {
	return time.Duration(d * float64(Day))
}

// InDays converts a duration to a day count.
func InDays(d time.Duration) float64 {
	return float64(d) / float64(Day)
}

// CardMemoryState is the mutable scheduling-relevant subset of a card.
type CardMemoryState struct {
	Stage              Stage         `json:"stage"`
	Interval           time.Duration `json:"-"`
	EaseFactor         float64       `json:"ease_factor"`
	ConsecutiveCorrect int           `json:"consecutive_correct"`
	ReviewCount        int           `json:"review_count"`
	NextReviewAt       time.Time     `json:"next_review_at"`
}

// IntervalDays returns the current interval in days.
func (s CardMemoryState) IntervalDays() float64 {
	return InDays(s.Interval)
}

type Card struct {
	ID     int64  `json:"id"`
	DeckID int64  `json:"deck_id"`
	Front  string `json:"front"`
	Back   string `json:"back"`
	CardMemoryState
	CreatedAt time.Time `json:"created_at"`
}

// IsDue reports whether the card is eligible for study at the given time.
// New cards are always due; others are due once their scheduled time passes.
func (c *Card) IsDue(now time.Time) bool {
	if c.Stage == StageNew {
		return true
	}
	return !c.NextReviewAt.After(now)
}

// CardFilter narrows card list queries.
type CardFilter struct {
	DeckID    int64
	Stage     Stage
	DueBefore *time.Time
	Limit     int
	Offset    int
}
