package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/benrueckert/koda-flashcard-app/internal/logger"
	"github.com/benrueckert/koda-flashcard-app/internal/models"
	"github.com/benrueckert/koda-flashcard-app/internal/repository"
)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, s models.StudySession) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("creating session: id=%s, deck_id=%d, type=%s", s.ID, s.DeckID, s.SessionType)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO study_sessions (id, deck_id, session_type, started_at)
VALUES (?, ?, ?, ?)
`, s.ID, s.DeckID, s.SessionType, s.StartedAt)
	if err != nil {
		log.Error("failed to create session: %v", err)
	}
	return err
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*models.StudySession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("getting session: id=%s", id)

	var s models.StudySession
	var totalMs int64
	var completedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT id, deck_id, session_type, cards_studied, cards_correct, total_time_ms, started_at, completed_at
FROM study_sessions
WHERE id = ?
`, id).Scan(&s.ID, &s.DeckID, &s.SessionType, &s.CardsStudied, &s.CardsCorrect, &totalMs, &s.StartedAt, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("session not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	s.TotalTime = msToDuration(totalMs)
	if completedAt.Valid {
		s.CompletedAt = &completedAt.Time
	}
	return &s, nil
}

func (r *sessionRepository) Complete(ctx context.Context, id string, result models.SessionResult, completedAt time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("completing session: id=%s, studied=%d, correct=%d", id, result.CardsStudied, result.CardsCorrect)

	res, err := r.db.ExecContext(ctx, `
UPDATE study_sessions
SET cards_studied = ?, cards_correct = ?, total_time_ms = ?, completed_at = ?
WHERE id = ? AND completed_at IS NULL
`, result.CardsStudied, result.CardsCorrect, durationToMs(result.TotalTime), completedAt, id)
	if err != nil {
		log.Error("failed to complete session: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Warn("complete session affected no rows: id=%s", id)
		return sql.ErrNoRows
	}
	return nil
}
