// Package sqlite opens embedded SQLite databases and migrates them.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/mattn/go-sqlite3"
)

const params = "_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on&_txlock=immediate"

// DSN returns the data source name used for the database file at path.
func DSN(path string) string {
	return fmt.Sprintf("file:%s?%s", path, params)
}

// New opens the database file at path. SQLite allows a single writer, so the
// pool is limited to one connection and every transaction starts as IMMEDIATE.
func New(ctx context.Context, path string) (*sqlx.DB, error) {
	const op = "sqlite.New"

	db, err := sqlx.ConnectContext(ctx, "sqlite3", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open database: %w", op, err)
	}

	db.SetMaxOpenConns(1)

	return db, nil
}

// RunMigrations applies the migrations found in dir of fsys to the database file at path.
func RunMigrations(fsys fs.FS, dir, path string) error {
	const op = "sqlite.RunMigrations"

	src, err := iofs.New(fsys, dir)
	if err != nil {
		return fmt.Errorf("%s: failed to open migrations source: %w", op, err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite3://"+path+"?"+params)
	if err != nil {
		return fmt.Errorf("%s: failed to initialize migrations: %w", op, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	return nil
}
