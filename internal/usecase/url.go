package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/vadimbarashkov/shortlink/internal/entity"
	"github.com/vadimbarashkov/shortlink/internal/metrics"
	"github.com/vadimbarashkov/shortlink/internal/shortcode"
)

const defaultMaxRetries = 5

type urlRepository interface {
	Save(ctx context.Context, url *entity.URL) (*entity.URL, error)
	RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error)
	RetrieveByOwner(ctx context.Context, ownerID string) ([]*entity.URL, error)
}

type clickRecorder interface {
	Record(ctx context.Context, shortCode string, clickedAt time.Time) (*entity.URL, error)
}

type URLUseCase struct {
	maxRetries int
	urlRepo    urlRepository
	clickRepo  clickRecorder
	logger     *slog.Logger
	generate   func() (string, error)
	now        func() time.Time
}

func NewURLUseCase(urlRepo urlRepository, clickRepo clickRecorder, logger *slog.Logger, maxRetries int) *URLUseCase {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &URLUseCase{
		maxRetries: maxRetries,
		urlRepo:    urlRepo,
		clickRepo:  clickRepo,
		logger:     logger,
		generate:   shortcode.Generate,
		now:        time.Now,
	}
}

func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return entity.ErrInvalidURL
	}

	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return entity.ErrInvalidURL
	}

	return nil
}

// ShortenURL allocates a new short code for originalURL owned by ownerID.
// Codes that are already taken are replaced by fresh ones until the retry
// budget runs out, which yields entity.ErrAllocationExhausted.
func (uc *URLUseCase) ShortenURL(ctx context.Context, originalURL, ownerID string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ShortenURL"

	if ownerID == "" {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrUnauthorized)
	}

	if err := validateURL(originalURL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := 0; i < uc.maxRetries; i++ {
		shortCode, err := uc.generate()
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate short code: %w", op, err)
		}

		url, err := uc.urlRepo.Save(ctx, &entity.URL{
			ShortCode:   shortCode,
			OriginalURL: originalURL,
			OwnerID:     ownerID,
		})
		if err != nil {
			if errors.Is(err, entity.ErrShortCodeExists) {
				metrics.AllocationCollisions.Inc()
				continue
			}

			return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
		}

		metrics.Shortens.Inc()

		return url, nil
	}

	metrics.AllocationsExhausted.Inc()
	uc.logger.Warn("short code allocation exhausted",
		slog.String("op", op),
		slog.Int("attempts", uc.maxRetries),
	)

	return nil, fmt.Errorf("%s: %w", op, entity.ErrAllocationExhausted)
}

// ResolveShortCode returns the URL behind shortCode and records the click.
// The click is recorded before the URL is returned; a storage failure fails
// the whole resolution.
func (uc *URLUseCase) ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ResolveShortCode"

	if !shortcode.Valid(shortCode) {
		metrics.Redirects.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}

	url, err := uc.clickRepo.Record(ctx, shortCode, uc.now().UTC())
	if err != nil {
		if errors.Is(err, entity.ErrURLNotFound) {
			metrics.Redirects.WithLabelValues("not_found").Inc()
		} else {
			metrics.Redirects.WithLabelValues("error").Inc()
		}

		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	metrics.Redirects.WithLabelValues("found").Inc()

	return url, nil
}

// ListOwnerURLs returns every URL created by ownerID, newest first.
func (uc *URLUseCase) ListOwnerURLs(ctx context.Context, ownerID string) ([]*entity.URL, error) {
	const op = "usecase.URLUseCase.ListOwnerURLs"

	if ownerID == "" {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrUnauthorized)
	}

	urls, err := uc.urlRepo.RetrieveByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list urls: %w", op, err)
	}

	return urls, nil
}
