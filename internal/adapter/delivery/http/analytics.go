package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortlink/internal/entity"
)

type analyticsUseCase interface {
	GetURLStats(ctx context.Context, callerID, shortCode string) (*entity.URL, error)
	GetDailyClicks(ctx context.Context, callerID, shortCode string, start, end time.Time) ([]entity.DailyCount, error)
	GetOwnerTotals(ctx context.Context, callerID, ownerID string, start, end time.Time) ([]entity.DailyCount, error)
}

// dateRangeQuery holds the inclusive range of an analytics request.
type dateRangeQuery struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end" validate:"required,datetime=2006-01-02"`
}

type analyticsHandler struct {
	useCase  analyticsUseCase
	validate *validator.Validate
}

func newAnalyticsHandler(useCase analyticsUseCase, validate *validator.Validate) *analyticsHandler {
	return &analyticsHandler{
		useCase:  useCase,
		validate: validate,
	}
}

// parseRange reads start and end from the query string. On failure it writes
// the response itself and reports false.
func (h *analyticsHandler) parseRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	q := dateRangeQuery{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}

	if err := h.validate.Struct(q); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
		return time.Time{}, time.Time{}, false
	}

	// Both values passed the datetime check above.
	start, _ := time.Parse(dateLayout, q.Start)
	end, _ := time.Parse(dateLayout, q.End)

	return start, end, true
}

func (h *analyticsHandler) getURLStats(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")

	url, err := h.useCase.GetURLStats(r.Context(), ownerFromContext(r.Context()), shortCode)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toURLStatsResponse(url))
}

func (h *analyticsHandler) getURLAnalytics(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.parseRange(w, r)
	if !ok {
		return
	}

	shortCode := chi.URLParam(r, "shortCode")

	counts, err := h.useCase.GetDailyClicks(r.Context(), ownerFromContext(r.Context()), shortCode, start, end)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toURLAnalyticsResponse(shortCode, start, end, counts))
}

func (h *analyticsHandler) getOwnerTotals(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.parseRange(w, r)
	if !ok {
		return
	}

	callerID := ownerFromContext(r.Context())

	ownerID := r.URL.Query().Get("owner")
	if ownerID == "" {
		ownerID = callerID
	}

	counts, err := h.useCase.GetOwnerTotals(r.Context(), callerID, ownerID, start, end)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toOwnerTotalsResponse(ownerID, start, end, counts))
}
