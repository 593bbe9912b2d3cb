package httpapi

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"bisectbroker/internal/jobschema"
	"bisectbroker/internal/jobstore"
	"bisectbroker/internal/telemetry"
)

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	if s.limiter != nil {
		if allowed, _ := s.limiter.Allow(clientKey(r)); !allowed {
			writeError(w, http.StatusTooManyRequests, errRateLimited)
			return
		}
	}

	var input map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		telemetry.ValidationFailures.Inc()
		writeError(w, http.StatusUnprocessableEntity, jobschema.NewValidationError("body", "invalid JSON: %v", err))
		return
	}

	job, err := jobschema.ValidateCreate(input)
	if err != nil {
		telemetry.ValidationFailures.Inc()
		writeError(w, statusForCreateError(err), err)
		return
	}

	id := s.store.Create(job)
	telemetry.JobsCreated.Inc()
	telemetry.JobsGauge.Inc()
	writeText(w, http.StatusCreated, id)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	clauses := jobstore.ParseFilters(r.URL.Query())
	ids, err := s.store.Filter(clauses)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	telemetry.QueryRequests.Inc()
	sort.Strings(ids)
	writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, etag, err := s.store.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.Header().Set("ETag", etag)
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handlePatchJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ifMatch := r.Header.Get("If-Match")

	var ops []jobstore.PatchOp
	if err := json.NewDecoder(r.Body).Decode(&ops); err != nil {
		writeError(w, http.StatusBadRequest, jobschema.NewBadRequestError("invalid patch body: %v", err))
		return
	}

	etag, err := s.store.Apply(id, ifMatch, ops)
	if err != nil {
		if _, ok := err.(*jobschema.PreconditionFailedError); ok {
			telemetry.PatchPreconditionFailed.Inc()
		} else {
			telemetry.ValidationFailures.Inc()
		}
		writeError(w, statusForPatchError(err), err)
		return
	}

	telemetry.JobsPatched.Inc()
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
}

func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return r.RemoteAddr
}

var errRateLimited = jobschema.NewBadRequestError("rate limit exceeded")
