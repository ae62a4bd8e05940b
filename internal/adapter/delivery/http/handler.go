package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/vadimbarashkov/shortlink/internal/entity"
)

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}

// respondError maps use case errors onto HTTP statuses. Server side failures
// are attached to the request log entry.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		status int
		resp   errorResponse
	)

	switch {
	case errors.Is(err, entity.ErrInvalidURL):
		status, resp = http.StatusBadRequest, invalidURLResponse
	case errors.Is(err, entity.ErrInvalidRange):
		status, resp = http.StatusBadRequest, invalidRangeResponse
	case errors.Is(err, entity.ErrUnauthorized):
		status, resp = http.StatusForbidden, forbiddenResponse
	case errors.Is(err, entity.ErrURLNotFound):
		status, resp = http.StatusNotFound, urlNotFoundResponse
	case errors.Is(err, entity.ErrAllocationExhausted):
		status, resp = http.StatusServiceUnavailable, exhaustedResponse
	case errors.Is(err, entity.ErrStorageUnavailable):
		status, resp = http.StatusServiceUnavailable, unavailableResponse
	default:
		status, resp = http.StatusInternalServerError, serverErrorResponse
	}

	if status >= http.StatusInternalServerError {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}

type ownerKey struct{}

func withOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerKey{}, ownerID)
}

// ownerFromContext returns the authenticated owner id, or an empty string for
// anonymous requests.
func ownerFromContext(ctx context.Context) string {
	ownerID, _ := ctx.Value(ownerKey{}).(string)
	return ownerID
}

type tokenVerifier interface {
	Verify(token string) (string, error)
}

// authenticate rejects requests without a valid bearer token and stores the
// owner id carried by the token in the request context.
func authenticate(tokens tokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, unauthenticatedResponse)
				return
			}

			ownerID, err := tokens.Verify(token)
			if err != nil {
				httplog.LogEntrySetField(r.Context(), "auth_err", slog.StringValue(err.Error()))

				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, unauthenticatedResponse)
				return
			}

			httplog.LogEntrySetField(r.Context(), "owner_id", slog.StringValue(ownerID))
			next.ServeHTTP(w, r.WithContext(withOwner(r.Context(), ownerID)))
		}

		return http.HandlerFunc(fn)
	}
}
