package services

import (
	"context"
	"strings"

	"github.com/benrueckert/koda-flashcard-app/internal/errors"
	"github.com/benrueckert/koda-flashcard-app/internal/logger"
	"github.com/benrueckert/koda-flashcard-app/internal/models"
	"github.com/benrueckert/koda-flashcard-app/internal/repository"
	"github.com/benrueckert/koda-flashcard-app/internal/scheduler"
)

// CardService handles card-related business logic
type CardService interface {
	CreateCard(ctx context.Context, deckID int64, front, back string) (*models.Card, error)
	GetCard(ctx context.Context, id int64) (*models.Card, error)
	ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	DeleteCard(ctx context.Context, id int64) error
	CardHistory(ctx context.Context, cardID int64, limit int) ([]models.ReviewRecord, error)
}

type cardService struct {
	cards   repository.CardRepository
	decks   repository.DeckRepository
	history repository.ReviewHistoryRepository
	now     Clock
}

// NewCardService creates a new CardService
func NewCardService(cards repository.CardRepository, decks repository.DeckRepository, history repository.ReviewHistoryRepository, now Clock) CardService {
	return &cardService{cards: cards, decks: decks, history: history, now: orSystemClock(now)}
}

func (s *cardService) CreateCard(ctx context.Context, deckID int64, front, back string) (*models.Card, error) {
	log := logger.FromContext(ctx)

	front = strings.TrimSpace(front)
	back = strings.TrimSpace(back)
	if front == "" {
		return nil, errors.NewValidationError("front", "must not be empty")
	}
	if back == "" {
		return nil, errors.NewValidationError("back", "must not be empty")
	}

	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	now := s.now()
	card := models.Card{
		DeckID:          deckID,
		Front:           front,
		Back:            back,
		CardMemoryState: scheduler.NewCardState(now),
		CreatedAt:       now,
	}
	id, err := s.cards.Insert(ctx, card)
	if err != nil {
		log.Error("failed to create card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	card.ID = id

	log.Info("card created: id=%d, deck_id=%d", id, deckID)
	return &card, nil
}

func (s *cardService) GetCard(ctx context.Context, id int64) (*models.Card, error) {
	card, err := s.cards.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", id)
	}
	return card, nil
}

func (s *cardService) ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	if filter.Stage != "" && !filter.Stage.Valid() {
		return nil, errors.NewValidationError("stage", "unknown stage")
	}
	cards, err := s.cards.List(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *cardService) DeleteCard(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	card, err := s.cards.Get(ctx, id)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if card == nil {
		return errors.NewNotFoundError("card", id)
	}

	if err := s.cards.Delete(ctx, id); err != nil {
		log.Error("failed to delete card: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("card deleted: id=%d", id)
	return nil
}

func (s *cardService) CardHistory(ctx context.Context, cardID int64, limit int) ([]models.ReviewRecord, error) {
	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}

	records, err := s.history.ListForCard(ctx, cardID, limit)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return records, nil
}
