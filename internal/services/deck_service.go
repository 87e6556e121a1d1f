package services

import (
	"context"
	"strings"

	"github.com/benrueckert/koda-flashcard-app/internal/errors"
	"github.com/benrueckert/koda-flashcard-app/internal/logger"
	"github.com/benrueckert/koda-flashcard-app/internal/models"
	"github.com/benrueckert/koda-flashcard-app/internal/repository"
)

// DeckService handles deck-related business logic
type DeckService interface {
	CreateDeck(ctx context.Context, name, description string) (*models.Deck, error)
	GetDeck(ctx context.Context, id int64) (*models.Deck, error)
	ListDecks(ctx context.Context) ([]models.Deck, error)
	DeleteDeck(ctx context.Context, id int64) error
	DeckStats(ctx context.Context, id int64) (*models.DeckStat, error)
}

type deckService struct {
	decks repository.DeckRepository
	stats repository.StatsRepository
	now   Clock
}

// NewDeckService creates a new DeckService
func NewDeckService(decks repository.DeckRepository, stats repository.StatsRepository, now Clock) DeckService {
	return &deckService{decks: decks, stats: stats, now: orSystemClock(now)}
}

func (s *deckService) CreateDeck(ctx context.Context, name, description string) (*models.Deck, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "must not be empty")
	}

	deck := models.Deck{Name: name, Description: strings.TrimSpace(description), CreatedAt: s.now()}
	id, err := s.decks.Insert(ctx, deck)
	if err != nil {
		log.Error("failed to create deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	deck.ID = id

	log.Info("deck created: id=%d, name=%s", id, name)
	return &deck, nil
}

func (s *deckService) GetDeck(ctx context.Context, id int64) (*models.Deck, error) {
	deck, err := s.decks.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}
	return deck, nil
}

func (s *deckService) ListDecks(ctx context.Context) ([]models.Deck, error) {
	decks, err := s.decks.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

func (s *deckService) DeleteDeck(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	deck, err := s.decks.Get(ctx, id)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if deck == nil {
		return errors.NewNotFoundError("deck", id)
	}

	if err := s.decks.Delete(ctx, id); err != nil {
		log.Error("failed to delete deck: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("deck deleted: id=%d", id)
	return nil
}

func (s *deckService) DeckStats(ctx context.Context, id int64) (*models.DeckStat, error) {
	deck, err := s.decks.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}

	stat, err := s.stats.DeckStats(ctx, id, s.now())
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return stat, nil
}
