package httpapi

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bisectbroker/internal/telemetry"
)

func (s *Server) handleAppendLog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	body := r.Body
	if s.maxLogChunkBytes > 0 {
		body = http.MaxBytesReader(w, body, int64(s.maxLogChunkBytes))
	}
	chunk, err := io.ReadAll(body)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	if err := s.store.AppendLog(id, chunk); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	telemetry.LogAppends.Inc()
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleReadLog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	text, err := s.store.ReadLog(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeText(w, http.StatusOK, text)
}
