package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/benrueckert/koda-flashcard-app/internal/logger"
	"github.com/benrueckert/koda-flashcard-app/internal/models"
	"github.com/benrueckert/koda-flashcard-app/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) DeckStats(ctx context.Context, deckID int64, now time.Time) (*models.DeckStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("computing deck stats: deck_id=%d", deckID)

	stat := &models.DeckStat{DeckID: deckID}

	query := sqlBuilder.Select(
		"COUNT(*)",
		"COALESCE(SUM(CASE WHEN stage = 'new' THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN stage = 'learning' THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN stage = 'review' THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN stage = 'mastered' THEN 1 ELSE 0 END), 0)",
	).
		Column(squirrel.Expr("COALESCE(SUM(CASE WHEN stage = 'new' OR next_review_at <= ? THEN 1 ELSE 0 END), 0)", now)).
		Columns(
			"COALESCE(SUM(review_count), 0)",
			"COALESCE(AVG(ease_factor), 0)",
			"COALESCE(AVG(interval_ms), 0)",
		).
		From("cards").Where(squirrel.Eq{"deck_id": deckID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build stats query: %v", err)
		return nil, err
	}

	var avgIntervalMs float64
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(
		&stat.TotalCards, &stat.NewCards, &stat.LearningCards, &stat.ReviewCards,
		&stat.MasteredCards, &stat.CardsDue, &stat.TotalReviews,
		&stat.AvgEaseFactor, &avgIntervalMs,
	)
	if err != nil {
		log.Error("failed to compute deck stats: %v", err)
		return nil, err
	}
	stat.AvgIntervalDays = avgIntervalMs / float64(models.Day.Milliseconds())

	err = r.db.QueryRowContext(ctx, `
SELECT COALESCE(AVG(CASE WHEN was_correct THEN 1.0 ELSE 0.0 END), 0)
FROM review_history rh
JOIN cards c ON c.id = rh.card_id
WHERE c.deck_id = ?
`, deckID).Scan(&stat.OverallAccuracy)
	if err != nil {
		log.Error("failed to compute deck accuracy: %v", err)
		return nil, err
	}

	log.Debug("deck stats computed: total=%d, due=%d", stat.TotalCards, stat.CardsDue)
	return stat, nil
}
