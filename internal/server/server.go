package server

import (
	"context"
	"net/http"
	"time"

	"sportstracker/internal/config"
	"sportstracker/internal/tracker"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// BoardSource serves tracker definitions and their latest boards
type BoardSource interface {
	Trackers() []config.Tracker
	Board(ctx context.Context, key string) (tracker.Board, bool, error)
	Store() *tracker.Store
}

// Options configures the router
type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// NewRouter builds the board API
func NewRouter(boards BoardSource, opts Options) http.Handler {
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	h := &Handler{boards: boards}
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(opts.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/trackers", h.ListTrackers)

		r.Route("/trackers/{key}", func(r chi.Router) {
			r.Get("/", h.GetBoard)
			r.Get("/schedule", h.GetSchedule)
			r.Get("/odds", h.GetOdds)
			r.Get("/news", h.GetNews)
		})
	})

	return r
}
