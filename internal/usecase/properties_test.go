package usecase

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadimbarashkov/shortlink/internal/adapter/cache"
	"github.com/vadimbarashkov/shortlink/internal/adapter/repository/sqlite"
	"github.com/vadimbarashkov/shortlink/internal/config"
	"github.com/vadimbarashkov/shortlink/internal/entity"
	"github.com/vadimbarashkov/shortlink/internal/shortcode"
	"github.com/vadimbarashkov/shortlink/migrations"

	sqlitedb "github.com/vadimbarashkov/shortlink/pkg/sqlite"
)

type env struct {
	db        *sqlx.DB
	urls      *URLUseCase
	analytics *AnalyticsUseCase
}

func setupEnv(t *testing.T) *env {
	t.Helper()

	path := filepath.Join(t.TempDir(), "shortlink.db")
	require.NoError(t, sqlitedb.RunMigrations(migrations.FS, "sqlite", path))

	db, err := sqlitedb.New(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	owners, err := cache.NewOwnerCache(config.Cache{NumCounters: 1000, MaxCost: 100, TTL: time.Minute})
	require.NoError(t, err)
	t.Cleanup(owners.Close)

	urlRepo := sqlite.NewURLRepository(db)
	clickRepo := sqlite.NewClickRepository(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &env{
		db:        db,
		urls:      NewURLUseCase(urlRepo, clickRepo, logger, 5),
		analytics: NewAnalyticsUseCase(urlRepo, clickRepo, owners, nil),
	}
}

func (e *env) clicks(t *testing.T) int64 {
	t.Helper()

	var n int64
	require.NoError(t, e.db.Get(&n, `SELECT COUNT(*) FROM clicks`))
	return n
}

func sum(counts []entity.DailyCount) int64 {
	var total int64
	for _, c := range counts {
		total += c.Count
	}
	return total
}

func TestConcurrentShortenURLYieldsDistinctCodes(t *testing.T) {
	e := setupEnv(t)

	const n = 1000

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		codes = make(map[string]struct{}, n)
		errs  = make(chan error, n)
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			url, err := e.urls.ShortenURL(context.Background(), "https://example.com/page", "owner-1")
			if err != nil {
				errs <- err
				return
			}

			mu.Lock()
			codes[url.ShortCode] = struct{}{}
			mu.Unlock()
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("ShortenURL failed: %v", err)
	}

	assert.Len(t, codes, n)
	for code := range codes {
		assert.True(t, shortcode.Valid(code), code)
	}
}

func TestResolveShortCode(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()

	const originalURL = "https://example.com/a/b?c=d&e=f#frag"

	created, err := e.urls.ShortenURL(ctx, originalURL, "owner-1")
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		url, err := e.urls.ResolveShortCode(ctx, created.ShortCode)

		require.NoError(t, err)
		assert.Equal(t, originalURL, url.OriginalURL)
	})

	t.Run("unknown code records nothing", func(t *testing.T) {
		before := e.clicks(t)

		url, err := e.urls.ResolveShortCode(ctx, "zzzzzzzz")

		assert.ErrorIs(t, err, entity.ErrURLNotFound)
		assert.Nil(t, url)
		assert.Equal(t, before, e.clicks(t))
	})

	t.Run("invalid url creates nothing", func(t *testing.T) {
		url, err := e.urls.ShortenURL(ctx, "not a url", "owner-1")

		assert.ErrorIs(t, err, entity.ErrInvalidURL)
		assert.Nil(t, url)

		urls, err := e.urls.ListOwnerURLs(ctx, "owner-1")
		require.NoError(t, err)
		assert.Len(t, urls, 1)
	})
}

func TestConcurrentResolveCountsEveryClick(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()

	created, err := e.urls.ShortenURL(ctx, "https://example.com", "owner-1")
	require.NoError(t, err)

	const k = 100

	var wg sync.WaitGroup
	errs := make(chan error, k)

	for i := 0; i < k; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if _, err := e.urls.ResolveShortCode(ctx, created.ShortCode); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("ResolveShortCode failed: %v", err)
	}

	url, err := e.analytics.GetURLStats(ctx, "owner-1", created.ShortCode)
	require.NoError(t, err)

	assert.EqualValues(t, k, url.ClickCount)
	assert.EqualValues(t, k, e.clicks(t))

	today := time.Now().UTC()
	counts, err := e.analytics.GetDailyClicks(ctx, "owner-1", created.ShortCode, today.AddDate(0, 0, -1), today.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, url.ClickCount, sum(counts))
}

func TestDailyAnalytics(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()

	day1 := time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC)

	clickAt := func(shortCode string, at time.Time) {
		t.Helper()

		e.urls.now = func() time.Time { return at }
		_, err := e.urls.ResolveShortCode(ctx, shortCode)
		require.NoError(t, err)
	}

	x, err := e.urls.ShortenURL(ctx, "https://example.com/x", "owner-1")
	require.NoError(t, err)

	clickAt(x.ShortCode, day1.Add(10*time.Hour))
	clickAt(x.ShortCode, day1.Add(15*time.Hour))
	clickAt(x.ShortCode, day2.Add(9*time.Hour))

	t.Run("per url buckets", func(t *testing.T) {
		counts, err := e.analytics.GetDailyClicks(ctx, "owner-1", x.ShortCode, day1, day2)

		require.NoError(t, err)
		assert.Equal(t, []entity.DailyCount{
			{Date: day1, Count: 2},
			{Date: day2, Count: 1},
		}, counts)
	})

	t.Run("single day range", func(t *testing.T) {
		counts, err := e.analytics.GetDailyClicks(ctx, "owner-1", x.ShortCode, day2, day2)

		require.NoError(t, err)
		assert.Equal(t, []entity.DailyCount{{Date: day2, Count: 1}}, counts)
	})

	t.Run("range without clicks", func(t *testing.T) {
		counts, err := e.analytics.GetDailyClicks(ctx, "owner-1", x.ShortCode, day2.AddDate(0, 0, 1), day2.AddDate(0, 0, 7))

		require.NoError(t, err)
		assert.Empty(t, counts)
	})

	t.Run("inverted range", func(t *testing.T) {
		counts, err := e.analytics.GetDailyClicks(ctx, "owner-1", x.ShortCode, day2, day1)

		assert.ErrorIs(t, err, entity.ErrInvalidRange)
		assert.Nil(t, counts)
	})

	t.Run("non owner", func(t *testing.T) {
		counts, err := e.analytics.GetDailyClicks(ctx, "owner-2", x.ShortCode, day1, day2)

		assert.ErrorIs(t, err, entity.ErrUnauthorized)
		assert.Nil(t, counts)
	})

	t.Run("buckets sum to counter", func(t *testing.T) {
		url, err := e.analytics.GetURLStats(ctx, "owner-1", x.ShortCode)
		require.NoError(t, err)

		counts, err := e.analytics.GetDailyClicks(ctx, "owner-1", x.ShortCode, day1, day2)
		require.NoError(t, err)

		assert.Equal(t, url.ClickCount, sum(counts))
	})
}

func TestOwnerTotals(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()

	day := time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)
	e.urls.now = func() time.Time { return day.Add(12 * time.Hour) }

	a, err := e.urls.ShortenURL(ctx, "https://example.com/a", "owner-1")
	require.NoError(t, err)
	b, err := e.urls.ShortenURL(ctx, "https://example.com/b", "owner-1")
	require.NoError(t, err)
	other, err := e.urls.ShortenURL(ctx, "https://example.com/c", "owner-2")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := e.urls.ResolveShortCode(ctx, a.ShortCode)
		require.NoError(t, err)
	}
	for i := 0; i < 5; i++ {
		_, err := e.urls.ResolveShortCode(ctx, b.ShortCode)
		require.NoError(t, err)
	}
	_, err = e.urls.ResolveShortCode(ctx, other.ShortCode)
	require.NoError(t, err)

	counts, err := e.analytics.GetOwnerTotals(ctx, "owner-1", "owner-1", day, day)
	require.NoError(t, err)
	assert.Equal(t, []entity.DailyCount{{Date: day, Count: 8}}, counts)

	counts, err = e.analytics.GetOwnerTotals(ctx, "owner-2", "owner-1", day, day)
	assert.ErrorIs(t, err, entity.ErrUnauthorized)
	assert.Nil(t, counts)
}
