package sqlite

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
	Day   string `db:"day"`
	Count int64  `db:"count"`
}

func toDailyCounts(recs []dailyCountDB) ([]entity.DailyCount, error) {
	counts := make([]entity.DailyCount, 0, len(recs))
	for _, rec := range recs {
		day, err := time.Parse(dateLayout, rec.Day)
		if err != nil {
			return nil, fmt.Errorf("malformed click date %q: %w", rec.Day, err)
		}

		counts = append(counts, entity.DailyCount{
			Date:  day,
			Count: rec.Count,
		})
	}
	return counts, nil
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
	const op = "adapter.repository.sqlite.ClickRepository.Record"
	const updateQuery = `UPDATE urls SET click_count = click_count + 1 WHERE short_code = ? RETURNING ` + urlColumns
	const insertQuery = `INSERT INTO clicks(url_id, clicked_at, click_date) VALUES (?, ?, ?)`

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

	clickedAt = clickedAt.UTC()
	if _, err := tx.ExecContext(ctx, insertQuery, rec.ID, clickedAt.UnixNano(), clickedAt.Format(dateLayout)); err != nil {
		return nil, storageError(op, "failed to insert into clicks table", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageError(op, "failed to commit transaction", err)
	}

	return rec.toEntity(), nil
}

// CountDailyByShortCode buckets the clicks of one URL by UTC day for days in [from, to].
func (r *ClickRepository) CountDailyByShortCode(ctx context.Context, shortCode string, from, to time.Time) ([]entity.DailyCount, error) {
	const op = "adapter.repository.sqlite.ClickRepository.CountDailyByShortCode"
	const query = `SELECT c.click_date AS day, COUNT(*) AS count
		FROM clicks c
		JOIN urls u ON u.id = c.url_id
		WHERE u.short_code = ? AND c.click_date BETWEEN ? AND ?
		GROUP BY c.click_date
		ORDER BY c.click_date`

	return r.countDaily(ctx, op, query, shortCode, from, to)
}

// CountDailyByOwner buckets the clicks of all URLs of the owner by UTC day for days in [from, to].
func (r *ClickRepository) CountDailyByOwner(ctx context.Context, ownerID string, from, to time.Time) ([]entity.DailyCount, error) {
	const op = "adapter.repository.sqlite.ClickRepository.CountDailyByOwner"
	const query = `SELECT c.click_date AS day, COUNT(*) AS count
		FROM clicks c
		JOIN urls u ON u.id = c.url_id
		WHERE u.owner_id = ? AND c.click_date BETWEEN ? AND ?
		GROUP BY c.click_date
		ORDER BY c.click_date`

	return r.countDaily(ctx, op, query, ownerID, from, to)
}

func (r *ClickRepository) countDaily(ctx context.Context, op, query, key string, from, to time.Time) ([]entity.DailyCount, error) {
	var recs []dailyCountDB

	start := entity.Day(from).Format(dateLayout)
	end := entity.Day(to).Format(dateLayout)
	if err := r.db.SelectContext(ctx, &recs, query, key, start, end); err != nil {
		return nil, storageError(op, "failed to count clicks", err)
	}

	counts, err := toDailyCounts(recs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return counts, nil
}
