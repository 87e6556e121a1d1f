package jobs

import (
	"time"

	"github.com/benrueckert/koda-flashcard-app/internal/models"
	"github.com/benrueckert/koda-flashcard-app/internal/repository"
	"github.com/benrueckert/koda-flashcard-app/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool       *worker.Pool
	cards      repository.CardRepository
	history    repository.ReviewHistoryRepository
	maxRetries int
	baseDelay  time.Duration
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(
	pool *worker.Pool,
	cards repository.CardRepository,
	history repository.ReviewHistoryRepository,
	maxRetries int,
	baseDelay time.Duration,
) *WorkerQueue {
	return &WorkerQueue{
		pool:       pool,
		cards:      cards,
		history:    history,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}
}

func (q *WorkerQueue) EnqueueReviewSync(card models.Card, record models.ReviewRecord, onSynced func(cardID int64)) error {
	return q.pool.Submit(&worker.SyncReviewJob{
		Cards:      q.cards,
		History:    q.history,
		Card:       card,
		Record:     record,
		MaxRetries: q.maxRetries,
		BaseDelay:  q.baseDelay,
		OnSynced:   onSynced,
	})
}
