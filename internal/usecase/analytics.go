package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/vadimbarashkov/shortlink/internal/entity"
)

type urlReader interface {
	RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error)
}

type clickCounter interface {
	CountDailyByShortCode(ctx context.Context, shortCode string, from, to time.Time) ([]entity.DailyCount, error)
	CountDailyByOwner(ctx context.Context, ownerID string, from, to time.Time) ([]entity.DailyCount, error)
}

type ownerCache interface {
	Owner(shortCode string) (string, bool)
	SetOwner(shortCode, ownerID string)
}

// AnalyticsUseCase answers read-only questions about clicks. Data of a URL is
// visible to its owner and to the configured admins only.
type AnalyticsUseCase struct {
	urlRepo   urlReader
	clickRepo clickCounter
	owners    ownerCache
	admins    map[string]struct{}
}

func NewAnalyticsUseCase(urlRepo urlReader, clickRepo clickCounter, owners ownerCache, adminIDs []string) *AnalyticsUseCase {
	admins := make(map[string]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	return &AnalyticsUseCase{
		urlRepo:   urlRepo,
		clickRepo: clickRepo,
		owners:    owners,
		admins:    admins,
	}
}

func (uc *AnalyticsUseCase) isAdmin(callerID string) bool {
	_, ok := uc.admins[callerID]
	return callerID != "" && ok
}

func (uc *AnalyticsUseCase) canRead(callerID, ownerID string) bool {
	return uc.isAdmin(callerID) || (callerID != "" && callerID == ownerID)
}

func checkRange(start, end time.Time) error {
	if entity.Day(start).After(entity.Day(end)) {
		return entity.ErrInvalidRange
	}
	return nil
}

func (uc *AnalyticsUseCase) ownerOf(ctx context.Context, shortCode string) (string, error) {
	if ownerID, ok := uc.owners.Owner(shortCode); ok {
		return ownerID, nil
	}

	url, err := uc.urlRepo.RetrieveByShortCode(ctx, shortCode)
	if err != nil {
		return "", err
	}

	uc.owners.SetOwner(shortCode, url.OwnerID)

	return url.OwnerID, nil
}

// GetURLStats returns the URL with its current click counter.
func (uc *AnalyticsUseCase) GetURLStats(ctx context.Context, callerID, shortCode string) (*entity.URL, error) {
	const op = "usecase.AnalyticsUseCase.GetURLStats"

	url, err := uc.urlRepo.RetrieveByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url stats: %w", op, err)
	}

	if !url.OwnedBy(callerID) && !uc.isAdmin(callerID) {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrUnauthorized)
	}

	return url, nil
}

// GetDailyClicks returns the clicks of shortCode per UTC day between start and
// end inclusive, ascending by date. Days without clicks are omitted.
func (uc *AnalyticsUseCase) GetDailyClicks(ctx context.Context, callerID, shortCode string, start, end time.Time) ([]entity.DailyCount, error) {
	const op = "usecase.AnalyticsUseCase.GetDailyClicks"

	if err := checkRange(start, end); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if callerID == "" {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrUnauthorized)
	}

	ownerID, err := uc.ownerOf(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url owner: %w", op, err)
	}

	if !uc.canRead(callerID, ownerID) {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrUnauthorized)
	}

	counts, err := uc.clickRepo.CountDailyByShortCode(ctx, shortCode, entity.Day(start), entity.Day(end))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to count clicks: %w", op, err)
	}

	return counts, nil
}

// GetOwnerTotals returns the clicks of all URLs of ownerID per UTC day between
// start and end inclusive, ascending by date. Days without clicks are omitted.
func (uc *AnalyticsUseCase) GetOwnerTotals(ctx context.Context, callerID, ownerID string, start, end time.Time) ([]entity.DailyCount, error) {
	const op = "usecase.AnalyticsUseCase.GetOwnerTotals"

	if err := checkRange(start, end); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if ownerID == "" || !uc.canRead(callerID, ownerID) {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrUnauthorized)
	}

	counts, err := uc.clickRepo.CountDailyByOwner(ctx, ownerID, entity.Day(start), entity.Day(end))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to count clicks: %w", op, err)
	}

	return counts, nil
}
