// internal/api/handler.go
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github-issue-tracker/internal/database"
	"github-issue-tracker/internal/syncer"
)

// IssueSyncer is the part of the syncer the API triggers.
type IssueSyncer interface {
	SyncAll(ctx context.Context) (syncer.Result, error)
	SyncUser(ctx context.Context, username string) (syncer.Result, error)
	Repositories() []string
}

// Options configures the router.
type Options struct {
	ServiceOptions []string
	RequestTimeout time.Duration
	SyncTimeout    time.Duration
}

// Handler is the container for API dependencies.
type Handler struct {
	db             database.Querier
	syncer         IssueSyncer
	serviceOptions []string
	logger         *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(db database.Querier, s IssueSyncer, opts Options, logger *slog.Logger) http.Handler {
	h := &Handler{
		db:             db,
		syncer:         s,
		serviceOptions: opts.ServiceOptions,
		logger:         logger,
	}
	if h.serviceOptions == nil {
		h.serviceOptions = []string{}
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", h.healthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if opts.RequestTimeout > 0 {
				r.Use(middleware.Timeout(opts.RequestTimeout))
			}
			r.Get("/issues", h.listIssues)
			r.Get("/issues/{id}", h.getIssue)
			r.Post("/issues/{id}/start", h.startIssue)
			r.Get("/contexts", h.listContexts)
			r.Get("/repositories", h.listRepositories)
		})

		// Syncs walk whole repositories and get their own, longer deadline.
		r.Group(func(r chi.Router) {
			if opts.SyncTimeout > 0 {
				r.Use(middleware.Timeout(opts.SyncTimeout))
			}
			r.Post("/sync-issues", h.syncIssues)
			r.Post("/sync-issues-by-user", h.syncIssuesByUser)
		})
	})

	return r
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
