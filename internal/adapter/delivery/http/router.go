// Package http provides the HTTP delivery layer for the URL shortener service.
// This package contains the HTTP handlers and related types used for processing
// incoming requests, validating input, and formatting responses.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/vadimbarashkov/shortlink/internal/metrics"
	"github.com/vadimbarashkov/shortlink/pkg/middleware/recoverer"
)

// RouterConfig holds the collaborators of the router.
type RouterConfig struct {
	Logger           *httplog.Logger
	RequestTimeout   time.Duration
	Tokens           tokenVerifier
	URLUseCase       urlUseCase
	AnalyticsUseCase analyticsUseCase
}

// NewRouter initializes and returns a new Chi router configured with middleware and routes for the URL shortener API.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"POST", "GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(cfg.Logger))
	r.Use(recoverer.New(cfg.Logger.Logger))
	r.Use(metrics.Middleware)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.yml")
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	validate := newValidator()
	urls := newURLHandler(cfg.URLUseCase, validate)
	analytics := newAnalyticsHandler(cfg.AnalyticsUseCase, validate)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", handlePing)

		r.Group(func(r chi.Router) {
			r.Use(authenticate(cfg.Tokens))

			r.Post("/shorten", urls.shortenURL)
			r.Get("/urls", urls.listURLs)
			r.Get("/urls/{shortCode}", analytics.getURLStats)
			r.Get("/urls/{shortCode}/analytics", analytics.getURLAnalytics)
			r.Get("/analytics", analytics.getOwnerTotals)
		})
	})

	r.Get("/{shortCode}", urls.redirect)

	return r
}
