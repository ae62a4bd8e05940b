package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/shortlink/internal/entity"
)

type dailyCountDB struct {
	Day   time.Time `db:"day"`
	Count int64     `db:"count"`
}

func toDailyCounts(recs []dailyCountDB) []entity.DailyCount {
	counts := make([]entity.DailyCount, 0, len(recs))
	for _, rec := range recs {
		counts = append(counts, entity.DailyCount{
			Date:  entity.Day(rec.Day),
			Count: rec.Count,
		})
	}
	return counts
}

// ClickRepository is the append-only click log. Recording a click also bumps
// the counter of its URL within the same transaction.
type ClickRepository struct {
	db *sqlx.DB
}

func NewClickRepository(db *sqlx.DB) *ClickRepository {
	return &ClickRepository{db: db}
}

// Record increments the click counter of the URL and appends a click row in one
// transaction. It returns the URL with the incremented counter.
func (r *ClickRepository) Record(ctx context.Context, shortCode string, clickedAt time.Time) (*entity.URL, error) {
	const op = "adapter.repository.postgres.ClickRepository.Record"
	const updateQuery = `UPDATE urls SET click_count = click_count + 1 WHERE short_code = $1 RETURNING *`
	const insertQuery = `INSERT INTO clicks(url_id, clicked_at) VALUES ($1, $2)`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storageError(op, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	var rec urlDB

	if err := tx.GetContext(ctx, &rec, updateQuery, shortCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
		}

		return nil, storageError(op, "failed to update urls table row", err)
	}

	if _, err := tx.ExecContext(ctx, insertQuery, rec.ID, clickedAt.UTC()); err != nil {
		return nil, storageError(op, "failed to insert into clicks table", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageError(op, "failed to commit transaction", err)
	}

	return rec.toEntity(), nil
}

// CountDailyByShortCode buckets the clicks of one URL by UTC day for days in [from, to].
func (r *ClickRepository) CountDailyByShortCode(ctx context.Context, shortCode string, from, to time.Time) ([]entity.DailyCount, error) {
	const op = "adapter.repository.postgres.ClickRepository.CountDailyByShortCode"
	const query = `SELECT (c.clicked_at AT TIME ZONE 'UTC')::date AS day, COUNT(*) AS count
		FROM clicks c
		JOIN urls u ON u.id = c.url_id
		WHERE u.short_code = $1 AND c.clicked_at >= $2 AND c.clicked_at < $3
		GROUP BY day
		ORDER BY day`

	var recs []dailyCountDB

	start, end := bounds(from, to)
	if err := r.db.SelectContext(ctx, &recs, query, shortCode, start, end); err != nil {
		return nil, storageError(op, "failed to count clicks", err)
	}

	return toDailyCounts(recs), nil
}

// CountDailyByOwner buckets the clicks of all URLs of the owner by UTC day for days in [from, to].
func (r *ClickRepository) CountDailyByOwner(ctx context.Context, ownerID string, from, to time.Time) ([]entity.DailyCount, error) {
	const op = "adapter.repository.postgres.ClickRepository.CountDailyByOwner"
	const query = `SELECT (c.clicked_at AT TIME ZONE 'UTC')::date AS day, COUNT(*) AS count
		FROM clicks c
		JOIN urls u ON u.id = c.url_id
		WHERE u.owner_id = $1 AND c.clicked_at >= $2 AND c.clicked_at < $3
		GROUP BY day
		ORDER BY day`

	var recs []dailyCountDB

	start, end := bounds(from, to)
	if err := r.db.SelectContext(ctx, &recs, query, ownerID, start, end); err != nil {
		return nil, storageError(op, "failed to count clicks", err)
	}

	return toDailyCounts(recs), nil
}

// bounds turns an inclusive day range into a half-open instant range.
func bounds(from, to time.Time) (time.Time, time.Time) {
	return entity.Day(from), entity.Day(to).AddDate(0, 0, 1)
}
