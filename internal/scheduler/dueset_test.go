package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benrueckert/koda-flashcard-app/internal/models"
	"github.com/benrueckert/koda-flashcard-app/internal/scheduler"
)

func reviewCard(id int64, nextReviewAt, createdAt time.Time) models.Card {
	return models.Card{
		ID: id,
		CardMemoryState: models.CardMemoryState{
			Stage:        models.StageReview,
			NextReviewAt: nextReviewAt,
		},
		CreatedAt: createdAt,
	}
}

func TestSelectDue_FiltersAndOrders(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cards := []models.Card{
		reviewCard(1, now.Add(models.Day), now),
		reviewCard(2, now.Add(-models.Day), now),
		reviewCard(3, now.Add(-2*models.Day), now),
	}

	due := scheduler.SelectDue(cards, 0, now)

	require.Len(t, due, 2, "future cards are not due")
	assert.Equal(t, int64(3), due[0].ID, "most overdue card comes first")
	assert.Equal(t, int64(2), due[1].ID)
}

func TestSelectDue_ExactlyAtDueTime(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cards := []models.Card{reviewCard(1, now, now.Add(-time.Hour))}

	due := scheduler.SelectDue(cards, 0, now)

	assert.Len(t, due, 1, "a card scheduled for exactly now is due")
}

func TestSelectDue_NewCardsAlwaysDue(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	card := reviewCard(1, now.Add(models.Day), now)
	card.Stage = models.StageNew

	due := scheduler.SelectDue([]models.Card{card}, 0, now)

	assert.Len(t, due, 1, "new cards are due regardless of schedule")
}

func TestSelectDue_TieBreakByCreation(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	at := now.Add(-time.Hour)
	cards := []models.Card{
		reviewCard(1, at, now.Add(-time.Minute)),
		reviewCard(2, at, now.Add(-time.Hour)),
		reviewCard(3, at, now.Add(-2*time.Hour)),
	}

	due := scheduler.SelectDue(cards, 0, now)

	require.Len(t, due, 3)
	assert.Equal(t, int64(3), due[0].ID, "equal due times sort by creation order")
	assert.Equal(t, int64(2), due[1].ID)
	assert.Equal(t, int64(1), due[2].ID)
}

func TestSelectDue_Limit(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	var cards []models.Card
	for i := int64(1); i <= 10; i++ {
		cards = append(cards, reviewCard(i, now.Add(-time.Duration(i)*time.Hour), now))
	}

	due := scheduler.SelectDue(cards, 3, now)

	require.Len(t, due, 3)
	assert.Equal(t, int64(10), due[0].ID, "limit keeps the most overdue cards")
}

func TestSelectDue_DoesNotMutateInput(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cards := []models.Card{
		reviewCard(1, now.Add(-time.Hour), now),
		reviewCard(2, now.Add(-2*time.Hour), now),
	}

	_ = scheduler.SelectDue(cards, 0, now)

	assert.Equal(t, int64(1), cards[0].ID, "input order is preserved")
	assert.Equal(t, int64(2), cards[1].ID)
}
