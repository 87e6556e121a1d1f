package models

import "time"

// ReviewRecord is one append-only review-history entry. Records are written
// best-effort after a card update and never mutated.
type ReviewRecord struct {
	ID             int64         `json:"id"`
	CardID         int64         `json:"card_id"`
	SessionID      string        `json:"session_id,omitempty"`
	Quality        int           `json:"quality"`
	ResponseTime   time.Duration `json:"-"`
	WasCorrect     bool          `json:"was_correct"`
	IntervalBefore time.Duration `json:"-"`
	IntervalAfter  time.Duration `json:"-"`
	ReviewedAt     time.Time     `json:"reviewed_at"`
}
