package repository

import (
	"context"
	"time"

	"github.com/benrueckert/koda-flashcard-app/internal/models"
)

// DeckRepository handles deck data access
type DeckRepository interface {
	Insert(ctx context.Context, deck models.Deck) (int64, error)
	Get(ctx context.Context, id int64) (*models.Deck, error)
	List(ctx context.Context) ([]models.Deck, error)
	Delete(ctx context.Context, id int64) error
}

// CardRepository handles card data access, including the scheduling state
type CardRepository interface {
	Insert(ctx context.Context, card models.Card) (int64, error)
	Get(ctx context.Context, id int64) (*models.Card, error)
	Update(ctx context.Context, card models.Card) error
	List(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	Delete(ctx context.Context, id int64) error
}

// ReviewHistoryRepository is the append-only review audit log
type ReviewHistoryRepository interface {
	Append(ctx context.Context, record models.ReviewRecord) (int64, error)
	ListForCard(ctx context.Context, cardID int64, limit int) ([]models.ReviewRecord, error)
}

// SessionRepository handles study session aggregates
type SessionRepository interface {
	Create(ctx context.Context, session models.StudySession) error
	Get(ctx context.Context, id string) (*models.StudySession, error)
	Complete(ctx context.Context, id string, result models.SessionResult, completedAt time.Time) error
}

// StatsRepository handles deck-level statistics
type StatsRepository interface {
	DeckStats(ctx context.Context, deckID int64, now time.Time) (*models.DeckStat, error)
}
