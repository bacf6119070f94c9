/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. RealIP:     Client address from X-Forwarded-For / X-Real-IP
  3. Logger:     Request logging
  4. Recoverer:  Panic recovery (500 instead of crash)
  5. CORS:       Cross-origin requests, origins from configuration
  6. httprate:   Per-IP rate limit on /api (disabled when the limit is 0)

ROUTE GROUPS:
  /healthz               Liveness and store reachability
  /api/units/*           Codec
  /api/granularity/*     Comparator
  /api/series/*          Ledger

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// RouterOptions tunes the middleware stack.
type RouterOptions struct {
	AllowedOrigins []string
	RateLimit      int
	RateWindow     time.Duration
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.Healthz)

	// API routes
	r.Route("/api", func(r chi.Router) {
		if opts.RateLimit > 0 {
			window := opts.RateWindow
			if window <= 0 {
				window = time.Minute
			}
			r.Use(httprate.Limit(
				opts.RateLimit,
				window,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, http.StatusTooManyRequests, ErrorResponse{
						Error: http.StatusText(http.StatusTooManyRequests),
						Code:  "rate_limited",
					})
				}),
			))
		}

		// Unit routes
		r.Route("/units", func(r chi.Router) {
			r.Post("/", h.EncodeUnit)
			r.Get("/{key}", h.DecodeUnit)
		})

		// Granularity routes
		r.Get("/granularity/compare", h.CompareGranularity)

		// Series routes
		r.Route("/series", func(r chi.Router) {
			r.Get("/", h.ListSeries)
			r.Route("/{series}", func(r chi.Router) {
				r.Get("/entries", h.ListEntries)
				r.Post("/entries", h.RecordEntry)
				r.Post("/entries/batch", h.RecordBatch)
				r.Get("/balance", h.GetBalance)
				r.Get("/rollup", h.GetRollup)
			})
		})
	})

	return r
}
