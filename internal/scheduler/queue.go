package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/benrueckert/koda-flashcard-app/internal/models"
)

var (
	// ErrQueueEmpty is returned when a review is submitted to a completed
	// session.
	ErrQueueEmpty = errors.New("session queue is empty")
	// ErrCardMismatch is returned when an outcome references a card other
	// than the one currently presented.
	ErrCardMismatch = errors.New("outcome card does not match current card")
)

// Entry is one card's slot in an active session queue.
type Entry struct {
	Card             models.Card
	ReviewsInSession int
	// Synced is false when the latest local state transition could not be
	// persisted and awaits reconciliation.
	Synced bool
}

// SessionQueue is the mutable working set of one study session. It is
// seeded once from a due-set snapshot and owned by a single session; it is
// not safe for concurrent use.
type SessionQueue struct {
	entries []*Entry
	pos     int
}

// NewSessionQueue builds a queue from a due-card snapshot.
func NewSessionQueue(cards []models.Card) *SessionQueue {
	entries := make([]*Entry, len(cards))
	for i := range cards {
		entries[i] = &Entry{Card: cards[i], Synced: true}
	}
	return &SessionQueue{entries: entries}
}

// Len returns the number of cards still in the queue.
func (q *SessionQueue) Len() int {
	return len(q.entries)
}

// Done reports whether the session is complete.
func (q *SessionQueue) Done() bool {
	return len(q.entries) == 0
}

// Current returns the entry at the queue pointer, or nil when the queue is
// empty.
func (q *SessionQueue) Current() *Entry {
	if len(q.entries) == 0 {
		return nil
	}
	return q.entries[q.pos]
}

// Entries returns the live entries, current-first order not guaranteed.
func (q *SessionQueue) Entries() []*Entry {
	return q.entries
}

// Unsynced returns the entries whose latest state has not been persisted.
func (q *SessionQueue) Unsynced() []*Entry {
	var out []*Entry
	for _, e := range q.entries {
		if !e.Synced {
			out = append(out, e)
		}
	}
	return out
}

// SubmitResult describes what happened to the current entry after a review.
type SubmitResult struct {
	Entry   *Entry
	Before  models.CardMemoryState
	Removed bool
	Done    bool
}

// SubmitReview applies one review outcome to the current card. Reaching
// mastered is the only removal trigger; any other result keeps the card in
// the queue and rotates the pointer so it resurfaces later in the sitting.
func (q *SessionQueue) SubmitReview(outcome Outcome, now time.Time) (SubmitResult, error) {
	entry := q.Current()
	if entry == nil {
		return SubmitResult{}, ErrQueueEmpty
	}
	if outcome.CardID != 0 && outcome.CardID != entry.Card.ID {
		return SubmitResult{}, fmt.Errorf("%w: got %d, current is %d", ErrCardMismatch, outcome.CardID, entry.Card.ID)
	}

	before := entry.Card.CardMemoryState
	next, err := Apply(before, outcome, now)
	if err != nil {
		return SubmitResult{}, err
	}

	entry.Card.CardMemoryState = next
	entry.ReviewsInSession++
	entry.Synced = true

	removed := next.Stage == models.StageMastered
	if removed {
		q.entries = append(q.entries[:q.pos], q.entries[q.pos+1:]...)
		if q.pos >= len(q.entries) {
			q.pos = 0
		}
	} else if len(q.entries) > 0 {
		q.pos = (q.pos + 1) % len(q.entries)
	}

	return SubmitResult{
		Entry:   entry,
		Before:  before,
		Removed: removed,
		Done:    len(q.entries) == 0,
	}, nil
}
