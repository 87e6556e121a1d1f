package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/benrueckert/koda-flashcard-app/internal/logger"
	"github.com/benrueckert/koda-flashcard-app/internal/models"
	"github.com/benrueckert/koda-flashcard-app/internal/repository"
)

// SyncReviewJob retries persisting one locally applied review: the card's
// new memory state plus its append-only history record. It backs off
// exponentially so a recovering store is not hammered.
type SyncReviewJob struct {
	Cards      repository.CardRepository
	History    repository.ReviewHistoryRepository
	Card       models.Card
	Record     models.ReviewRecord
	MaxRetries int
	BaseDelay  time.Duration

	// OnSynced is called once the card state is durably stored, so the
	// owning session can clear the entry's unsynced flag.
	OnSynced func(cardID int64)
}

func (j *SyncReviewJob) Name() string {
	return fmt.Sprintf("sync-review-card-%d", j.Card.ID)
}

func (j *SyncReviewJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	retries := j.MaxRetries
	if retries <= 0 {
		retries = 5
	}
	delay := j.BaseDelay
	if delay <= 0 {
		delay = time.Second
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		if err := j.Cards.Update(ctx, j.Card); err != nil {
			lastErr = err
			log.Warn("card sync attempt %d/%d failed: %v", attempt, retries, err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
			continue
		}

		if j.OnSynced != nil {
			j.OnSynced(j.Card.ID)
		}

		// History is best-effort: a failure here never invalidates the
		// card update.
		if _, err := j.History.Append(ctx, j.Record); err != nil {
			log.Warn("review record append failed after card sync: %v", err)
		}
		log.Info("review synced: card_id=%d, attempt=%d", j.Card.ID, attempt)
		return nil
	}
	return fmt.Errorf("sync review for card %d: retries exhausted: %w", j.Card.ID, lastErr)
}
