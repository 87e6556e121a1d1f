package models

import "time"

// Session types
const (
	SessionTypeReview = "review"
	SessionTypeCram   = "cram"
)

// StudySession is the coarse aggregate for one study attempt. It is created
// once at session start and mutated only by the completion event; per-review
// state lives on the cards and in the in-memory session queue.
type StudySession struct {
	ID           string        `json:"id"`
	DeckID       int64         `json:"deck_id"`
	SessionType  string        `json:"session_type"`
	CardsStudied int           `json:"cards_studied"`
	CardsCorrect int           `json:"cards_correct"`
	TotalTime    time.Duration `json:"-"`
	StartedAt    time.Time     `json:"started_at"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`
}

// SessionResult holds the finalized aggregates written at completion.
type SessionResult struct {
	CardsStudied int
	CardsCorrect int
	TotalTime    time.Duration
}
