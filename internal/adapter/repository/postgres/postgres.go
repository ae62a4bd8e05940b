// Package postgres implements the URL and click repositories on top of PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/shortlink/internal/entity"
)

const uniqueViolationErrCode = "23505"

func isUniqueViolationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == uniqueViolationErrCode
}

func storageError(op, msg string, err error) error {
	return fmt.Errorf("%s: %s: %w: %w", op, msg, entity.ErrStorageUnavailable, err)
}

type urlDB struct {
	ID          int64     `db:"id"`
	ShortCode   string    `db:"short_code"`
	OriginalURL string    `db:"original_url"`
	OwnerID     string    `db:"owner_id"`
	ClickCount  int64     `db:"click_count"`
	CreatedAt   time.Time `db:"created_at"`
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
		CreatedAt: u.CreatedAt.UTC(),
	}
}

type URLRepository struct {
	db *sqlx.DB
}

func NewURLRepository(db *sqlx.DB) *URLRepository {
	return &URLRepository{db: db}
}

// Save inserts the URL unless its short code is taken, in which case
// entity.ErrShortCodeExists is returned and nothing is written.
func (r *URLRepository) Save(ctx context.Context, url *entity.URL) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.Save"
	const query = `INSERT INTO urls(short_code, original_url, owner_id) VALUES ($1, $2, $3) RETURNING *`

	var rec urlDB

	if err := r.db.GetContext(ctx, &rec, query, url.ShortCode, url.OriginalURL, url.OwnerID); err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrShortCodeExists)
		}

		return nil, storageError(op, "failed to insert into urls table", err)
	}

	return rec.toEntity(), nil
}

func (r *URLRepository) RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.RetrieveByShortCode"
	const query = `SELECT * FROM urls WHERE short_code = $1`

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
	const op = "adapter.repository.postgres.URLRepository.RetrieveByOwner"
	const query = `SELECT * FROM urls WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`

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
