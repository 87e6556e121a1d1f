package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/benrueckert/koda-flashcard-app/internal/logger"
	"github.com/benrueckert/koda-flashcard-app/internal/models"
	"github.com/benrueckert/koda-flashcard-app/internal/repository"
)

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

const cardColumns = `id, deck_id, front, back, stage, interval_ms, ease_factor, consecutive_correct, review_count, next_review_at, created_at`

func scanCard(scan func(dest ...any) error) (models.Card, error) {
	var c models.Card
	var intervalMs int64
	var stage string
	err := scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &stage, &intervalMs,
		&c.EaseFactor, &c.ConsecutiveCorrect, &c.ReviewCount, &c.NextReviewAt, &c.CreatedAt)
	if err != nil {
		return models.Card{}, err
	}
	c.Stage = models.Stage(stage)
	c.Interval = msToDuration(intervalMs)
	return c, nil
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: deck_id=%d", c.DeckID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cards (deck_id, front, back, stage, interval_ms, ease_factor, consecutive_correct, review_count, next_review_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, c.DeckID, c.Front, c.Back, string(c.Stage), durationToMs(c.Interval),
		c.EaseFactor, c.ConsecutiveCorrect, c.ReviewCount, c.NextReviewAt)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return 0, err
	}
	log.Debug("card inserted: id=%d", id)
	return id, nil
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%d", id)

	row := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	c, err := scanCard(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) Update(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card: id=%d, stage=%s, interval_days=%.2f, ease=%.2f",
		c.ID, c.Stage, c.IntervalDays(), c.EaseFactor)

	_, err := r.db.ExecContext(ctx, `
UPDATE cards
SET front = ?, back = ?, stage = ?, interval_ms = ?, ease_factor = ?,
    consecutive_correct = ?, review_count = ?, next_review_at = ?
WHERE id = ?
`, c.Front, c.Back, string(c.Stage), durationToMs(c.Interval), c.EaseFactor,
		c.ConsecutiveCorrect, c.ReviewCount, c.NextReviewAt, c.ID)
	if err != nil {
		log.Error("failed to update card: %v", err)
	}
	return err
}

func (r *cardRepository) List(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: deck_id=%d, stage=%s", filter.DeckID, filter.Stage)

	query := sqlBuilder.Select(
		"id", "deck_id", "front", "back", "stage", "interval_ms", "ease_factor",
		"consecutive_correct", "review_count", "next_review_at", "created_at",
	).From("cards")

	// Dynamic WHERE clauses
	if filter.DeckID != 0 {
		query = query.Where(squirrel.Eq{"deck_id": filter.DeckID})
	}
	if filter.Stage != "" {
		query = query.Where(squirrel.Eq{"stage": string(filter.Stage)})
	}
	if filter.DueBefore != nil {
		query = query.Where(squirrel.Or{
			squirrel.Eq{"stage": string(models.StageNew)},
			squirrel.LtOrEq{"next_review_at": *filter.DueBefore},
		})
	}

	query = query.OrderBy("next_review_at ASC", "created_at ASC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build card query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows.Scan)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete card: %v", err)
	}
	return err
}
