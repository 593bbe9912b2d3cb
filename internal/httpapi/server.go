// Package httpapi maps HTTP verbs/paths onto the job store, patch engine,
// query engine, and log store. It holds no domain state of its own; it is
// a thin adapter over jobstore.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"bisectbroker/internal/jobstore"
	"bisectbroker/internal/ratelimit"
	"bisectbroker/internal/telemetry"
)

// Server wires HTTP handlers over the in-memory job store.
type Server struct {
	store            *jobstore.Store
	limiter          *ratelimit.TokenBucket
	log              *logrus.Logger
	maxLogChunkBytes int
}

// New constructs the HTTP surface. maxLogChunkBytes caps the size of a
// single PUT .../log body; a value of 0 means no cap.
func New(store *jobstore.Store, limiter *ratelimit.TokenBucket, log *logrus.Logger, maxLogChunkBytes int) *Server {
	return &Server{store: store, limiter: limiter, log: log, maxLogChunkBytes: maxLogChunkBytes}
}

// Router builds the broker's HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealthz)
	r.Mount("/metrics", telemetry.Handler())

	r.Route("/api/jobs", func(r chi.Router) {
		r.Post("/", s.handleCreateJob)
		r.Get("/", s.handleListJobs)
		r.Get("/{id}", s.handleGetJob)
		r.Patch("/{id}", s.handlePatchJob)
		r.Put("/{id}/log", s.handleAppendLog)
	})
	r.Get("/log/{id}", s.handleReadLog)

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
