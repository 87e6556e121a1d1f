package sqlite

import (
	"context"
	"database/sql"

	"github.com/benrueckert/koda-flashcard-app/internal/logger"
	"github.com/benrueckert/koda-flashcard-app/internal/models"
	"github.com/benrueckert/koda-flashcard-app/internal/repository"
)

type reviewHistoryRepository struct {
	db *sql.DB
}

// NewReviewHistoryRepository creates a new ReviewHistoryRepository implementation
func NewReviewHistoryRepository(db *sql.DB) repository.ReviewHistoryRepository {
	return &reviewHistoryRepository{db: db}
}

func (r *reviewHistoryRepository) Append(ctx context.Context, rec models.ReviewRecord) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("appending review record: card_id=%d, quality=%d, correct=%t", rec.CardID, rec.Quality, rec.WasCorrect)

	var sessionID any
	if rec.SessionID != "" {
		sessionID = rec.SessionID
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO review_history (card_id, session_id, quality, response_time_ms, was_correct, interval_before_ms, interval_after_ms, reviewed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, rec.CardID, sessionID, rec.Quality, durationToMs(rec.ResponseTime), rec.WasCorrect,
		durationToMs(rec.IntervalBefore), durationToMs(rec.IntervalAfter), rec.ReviewedAt)
	if err != nil {
		log.Error("failed to append review record: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get review record id: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *reviewHistoryRepository) ListForCard(ctx context.Context, cardID int64, limit int) ([]models.ReviewRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("listing review records: card_id=%d, limit=%d", cardID, limit)

	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, card_id, COALESCE(session_id, ''), quality, response_time_ms, was_correct, interval_before_ms, interval_after_ms, reviewed_at
FROM review_history
WHERE card_id = ?
ORDER BY reviewed_at DESC, id DESC
LIMIT ?
`, cardID, limit)
	if err != nil {
		log.Error("failed to query review records: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.ReviewRecord
	for rows.Next() {
		var rec models.ReviewRecord
		var responseMs, beforeMs, afterMs int64
		if err := rows.Scan(&rec.ID, &rec.CardID, &rec.SessionID, &rec.Quality, &responseMs,
			&rec.WasCorrect, &beforeMs, &afterMs, &rec.ReviewedAt); err != nil {
			log.Error("failed to scan review record row: %v", err)
			return nil, err
		}
		rec.ResponseTime = msToDuration(responseMs)
		rec.IntervalBefore = msToDuration(beforeMs)
		rec.IntervalAfter = msToDuration(afterMs)
		records = append(records, rec)
	}
	log.Debug("found %d review records", len(records))
	return records, rows.Err()
}
