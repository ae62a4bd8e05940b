// Package app wires configuration, storage, use cases and the HTTP server
// together and runs them until the context is cancelled.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/shortlink/internal/adapter/cache"
	"github.com/vadimbarashkov/shortlink/internal/adapter/identity"
	"github.com/vadimbarashkov/shortlink/internal/config"
	"github.com/vadimbarashkov/shortlink/internal/entity"
	"github.com/vadimbarashkov/shortlink/internal/usecase"
	"github.com/vadimbarashkov/shortlink/migrations"
	"github.com/vadimbarashkov/shortlink/pkg/postgres"
	"github.com/vadimbarashkov/shortlink/pkg/sqlite"
	"golang.org/x/sync/errgroup"

	delivery "github.com/vadimbarashkov/shortlink/internal/adapter/delivery/http"
	pgrepo "github.com/vadimbarashkov/shortlink/internal/adapter/repository/postgres"
	sqliterepo "github.com/vadimbarashkov/shortlink/internal/adapter/repository/sqlite"
)

type urlRepository interface {
	Save(ctx context.Context, url *entity.URL) (*entity.URL, error)
	RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error)
	RetrieveByOwner(ctx context.Context, ownerID string) ([]*entity.URL, error)
}

type clickRepository interface {
	Record(ctx context.Context, shortCode string, clickedAt time.Time) (*entity.URL, error)
	CountDailyByShortCode(ctx context.Context, shortCode string, from, to time.Time) ([]entity.DailyCount, error)
	CountDailyByOwner(ctx context.Context, ownerID string, from, to time.Time) ([]entity.DailyCount, error)
}

type storage struct {
	db     *sqlx.DB
	urls   urlRepository
	clicks clickRepository
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	const op = "app.openStorage"

	switch cfg.Storage.Driver {
	case config.StorageDriverSQLite:
		if err := sqlite.RunMigrations(migrations.FS, "sqlite", cfg.SQLite.Path); err != nil {
			return nil, fmt.Errorf("%s: failed to run migrations: %w", op, err)
		}

		db, err := sqlite.New(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to open database: %w", op, err)
		}

		return &storage{
			db:     db,
			urls:   sqliterepo.NewURLRepository(db),
			clicks: sqliterepo.NewClickRepository(db),
		}, nil
	default:
		db, err := postgres.New(
			ctx,
			cfg.Postgres.DSN(),
			postgres.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
			postgres.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
			postgres.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
			postgres.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
			postgres.WithConnectAttempts(cfg.Postgres.ConnectAttempts),
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to connect to database: %w", op, err)
		}

		if err := postgres.RunMigrations(migrations.FS, "postgres", cfg.Postgres.DSN()); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: failed to run migrations: %w", op, err)
		}

		return &storage{
			db:     db,
			urls:   pgrepo.NewURLRepository(db),
			clicks: pgrepo.NewClickRepository(db),
		}, nil
	}
}

// NewLogger returns the request logger for env. Production logs are JSON.
func NewLogger(env string) *httplog.Logger {
	return httplog.NewLogger("url-shortener", httplog.Options{
		JSON:     env == config.EnvProd,
		LogLevel: slog.LevelInfo,
		Concise:  env != config.EnvProd,
	})
}

func Run(ctx context.Context, cfg *config.Config, logger *httplog.Logger) error {
	const op = "app.Run"

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer store.db.Close()

	logger.Info("storage ready", slog.String("driver", cfg.Storage.Driver))

	owners, err := cache.NewOwnerCache(cfg.Cache)
	if err != nil {
		return fmt.Errorf("%s: failed to create owner cache: %w", op, err)
	}
	defer owners.Close()

	urlUseCase := usecase.NewURLUseCase(store.urls, store.clicks, logger.Logger, cfg.Allocation.MaxRetries)
	analyticsUseCase := usecase.NewAnalyticsUseCase(store.urls, store.clicks, owners, cfg.Auth.AdminIDs)

	router := delivery.NewRouter(delivery.RouterConfig{
		Logger:           logger,
		RequestTimeout:   cfg.HTTPServer.RequestTimeout,
		Tokens:           identity.NewJWT(cfg.Auth.Secret, cfg.Auth.TokenTTL),
		URLUseCase:       urlUseCase,
		AnalyticsUseCase: analyticsUseCase,
	})

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        router,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", slog.String("addr", server.Addr), slog.String("env", cfg.Env))

		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		logger.Info("shutting down server")

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}
