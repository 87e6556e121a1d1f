package jobs

import (
	"github.com/benrueckert/koda-flashcard-app/internal/models"
)

// JobQueue provides an abstraction for enqueueing background sync work
type JobQueue interface {
	EnqueueReviewSync(card models.Card, record models.ReviewRecord, onSynced func(cardID int64)) error
}
