// Package metrics exposes the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Shortens = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shortlink_shorten_total",
		Help: "Short links created.",
	})
	AllocationCollisions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shortlink_allocation_collisions_total",
		Help: "Generated short codes that were already taken.",
	})
	AllocationsExhausted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shortlink_allocation_exhausted_total",
		Help: "Allocations that ran out of retries.",
	})
	Redirects = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shortlink_redirects_total",
		Help: "Short code resolutions by outcome.",
	}, []string{"outcome"})
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shortlink_http_request_duration_seconds",
		Help:    "HTTP request duration by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(Shortens, AllocationCollisions, AllocationsExhausted, Redirects, RequestDuration)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware observes the duration of every request, labelled by its chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		RequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}
