package scheduler

import (
	"sort"
	"time"

	"github.com/benrueckert/koda-flashcard-app/internal/models"
)

// SelectDue returns the cards eligible for study at the given time, ordered
// for presentation: nextReviewAt ascending, creation time as tie-break so
// new cards surface in the order they were added. A limit <= 0 means no
// limit. The input slice is not mutated.
func SelectDue(cards []models.Card, limit int, now time.Time) []models.Card {
	due := make([]models.Card, 0, len(cards))
	for i := range cards {
		if cards[i].IsDue(now) {
			due = append(due, cards[i])
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		if !due[i].NextReviewAt.Equal(due[j].NextReviewAt) {
			return due[i].NextReviewAt.Before(due[j].NextReviewAt)
		}
		return due[i].CreatedAt.Before(due[j].CreatedAt)
	})

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due
}
