// Package sqlite implements the URL and click repositories on top of an embedded
// SQLite database. Timestamps are stored as Unix nanoseconds and every click
// carries its UTC calendar day so daily buckets need no date parsing in SQL.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/vadimbarashkov/shortlink/internal/entity"
)

const dateLayout = time.DateOnly

func isUniqueViolationError(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func storageError(op, msg string, err error) error {
	return fmt.Errorf("%s: %s: %w: %w", op, msg, entity.ErrStorageUnavailable, err)
}

const urlColumns = `id, short_code, original_url, owner_id, click_count, created_at`

type urlDB struct {
	ID          int64  `db:"id"`
	ShortCode   string `db:"short_code"`
	OriginalURL string `db:"original_url"`
	OwnerID     string `db:"owner_id"`
	ClickCount  int64  `db:"click_count"`
	CreatedAt   int64  `db:"created_at"`
}

func (u *urlDB) toEntity() *entity.URL {
	return &entity.URL{
		ID:          u.ID,
		ShortCode:   u.ShortCode,
		OriginalURL: u.OriginalURL,
		OwnerID:     u.OwnerID,
		URLStats: entity.URLStats{
			ClickCount: u.ClickCount,
		},
		CreatedAt: time.Unix(0, u.CreatedAt).UTC(),
	}
}

type URLRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewURLRepository(db *sqlx.DB) *URLRepository {
	return &URLRepository{
		db:  db,
		now: time.Now,
	}
}

// Save inserts the URL unless its short code is taken, in which case
// entity.ErrShortCodeExists is returned and nothing is written.
func (r *URLRepository) Save(ctx context.Context, url *entity.URL) (*entity.URL, error) {
	const op = "adapter.repository.sqlite.URLRepository.Save"
	const query = `INSERT INTO urls(short_code, original_url, owner_id, created_at) VALUES (?, ?, ?, ?) RETURNING ` + urlColumns

	var rec urlDB

	createdAt := r.now().UTC().UnixNano()
	if err := r.db.GetContext(ctx, &rec, query, url.ShortCode, url.OriginalURL, url.OwnerID, createdAt); err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrShortCodeExists)
		}

		return nil, storageError(op, "failed to insert into urls table", err)
	}

	return rec.toEntity(), nil
}

func (r *URLRepository) RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "adapter.repository.sqlite.URLRepository.RetrieveByShortCode"
	const query = `SELECT ` + urlColumns + ` FROM urls WHERE short_code = ?`

	var rec urlDB

	if err := r.db.GetContext(ctx, &rec, query, shortCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
		}

		return nil, storageError(op, "failed to get row from urls table", err)
	}

	return rec.toEntity(), nil
}

// RetrieveByOwner returns the owner's URLs, newest first.
func (r *URLRepository) RetrieveByOwner(ctx context.Context, ownerID string) ([]*entity.URL, error) {
	const op = "adapter.repository.sqlite.URLRepository.RetrieveByOwner"
	const query = `SELECT ` + urlColumns + ` FROM urls WHERE owner_id = ? ORDER BY created_at DESC, id DESC`

	var recs []urlDB

	if err := r.db.SelectContext(ctx, &recs, query, ownerID); err != nil {
		return nil, storageError(op, "failed to select rows from urls table", err)
	}

	urls := make([]*entity.URL, 0, len(recs))
	for i := range recs {
		urls = append(urls, recs[i].toEntity())
	}

	return urls, nil
}
