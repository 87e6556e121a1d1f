package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/benrueckert/koda-flashcard-app/internal/errors"
	"github.com/benrueckert/koda-flashcard-app/internal/models"
	"github.com/benrueckert/koda-flashcard-app/internal/services"
	"github.com/benrueckert/koda-flashcard-app/internal/testutil/mocks"
)

func TestCreateDeck(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	svc := services.NewDeckService(decks, new(mocks.MockStatsRepository), fixedClock)

	decks.On("Insert", mock.Anything, mock.AnythingOfType("models.Deck")).Return(int64(7), nil).Once()

	deck, err := svc.CreateDeck(context.Background(), "  Spanish Vocab  ", "basics")
	require.NoError(t, err)
	assert.Equal(t, int64(7), deck.ID)
	assert.Equal(t, "Spanish Vocab", deck.Name)
	assert.Equal(t, testNow, deck.CreatedAt)
}

func TestCreateDeck_EmptyName(t *testing.T) {
	svc := services.NewDeckService(new(mocks.MockDeckRepository), new(mocks.MockStatsRepository), fixedClock)

	_, err := svc.CreateDeck(context.Background(), "   ", "")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestGetDeck_NotFound(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	svc := services.NewDeckService(decks, new(mocks.MockStatsRepository), fixedClock)

	decks.On("Get", mock.Anything, int64(42)).Return(nil, nil).Once()

	_, err := svc.GetDeck(context.Background(), 42)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
	assert.Equal(t, 404, appErr.Status)
}

func TestDeleteDeck(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	svc := services.NewDeckService(decks, new(mocks.MockStatsRepository), fixedClock)

	decks.On("Get", mock.Anything, int64(1)).Return(&models.Deck{ID: 1, Name: "d"}, nil).Once()
	decks.On("Delete", mock.Anything, int64(1)).Return(nil).Once()

	require.NoError(t, svc.DeleteDeck(context.Background(), 1))
	decks.AssertExpectations(t)
}

func TestDeckStats(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	stats := new(mocks.MockStatsRepository)
	svc := services.NewDeckService(decks, stats, fixedClock)

	decks.On("Get", mock.Anything, int64(1)).Return(&models.Deck{ID: 1, Name: "d"}, nil).Once()
	stats.On("DeckStats", mock.Anything, int64(1), testNow).
		Return(&models.DeckStat{DeckID: 1, TotalCards: 10, CardsDue: 3}, nil).Once()

	stat, err := svc.DeckStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 10, stat.TotalCards)
	assert.Equal(t, 3, stat.CardsDue)
}

func TestListDecks_StoreError(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	svc := services.NewDeckService(decks, new(mocks.MockStatsRepository), fixedClock)

	decks.On("List", mock.Anything).Return(nil, errors.New("boom")).Once()

	_, err := svc.ListDecks(context.Background())
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInternal, appErr.Code)
}
