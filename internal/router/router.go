package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/actuallystonmai/cineai/internal/handler"
	"github.com/actuallystonmai/cineai/internal/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	// Limiter guards the recommendations API when set.
	Limiter ratelimit.Limiter
	// Pinger is checked by /health when set.
	Pinger Pinger
	Logger *slog.Logger
}

func Setup(h *handler.Handler, opts Options) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Routes
	r.Get("/", h.GetPage)
	r.Post("/", h.PostPage)
	r.Get("/health", healthCheck(opts.Pinger))

	r.Route("/api", func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(ratelimit.Middleware(opts.Limiter, opts.Logger))
		}
		r.Post("/recommendations", h.PostRecommendations)
	})

	return r
}

func healthCheck(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if p != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"degraded"}`))
				return
			}
		}
		w.Write([]byte(`{"status":"ok"}`))
	}
}
