// Package recoverer turns handler panics into JSON 500 responses.
package recoverer

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

var serverErrorResponse = errorResponse{
	Status:  "error",
	Message: "server error occurred",
}

// New returns a middleware that logs recovered panics with their stack and
// answers with a JSON 500. http.ErrAbortHandler is re-panicked so the server
// can abort the connection.
func New(logger *slog.Logger) func(http.Handler) http.Handler {
	const op = "middleware.recoverer"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}

				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.Error("panic recovered",
					slog.String("op", op),
					slog.Any("panic", rvr),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("stack", string(debug.Stack())),
				)

				if r.Header.Get("Connection") != "Upgrade" {
					render.Status(r, http.StatusInternalServerError)
					render.JSON(w, r, serverErrorResponse)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
