package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/quadplan/quadplan/pkg/pipeline"
	"github.com/quadplan/quadplan/pkg/plan"
	"github.com/quadplan/quadplan/pkg/store"
)

// maxBodySize bounds plan uploads.
const maxBodySize = 1 << 20

var artifactContentTypes = map[string]string{
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// handleCreate accepts a TOML plan definition, builds it and stores the
// resulting snapshot under a fresh id.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	def, snap, ok := s.readDefinition(w, r)
	if !ok {
		return
	}
	rec := store.New(def.Name, snap)
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleUpdate rebuilds a stored plan from a new TOML definition, keeping
// its id and creation stamp.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	def, snap, ok := s.readDefinition(w, r)
	if !ok {
		return
	}
	rec.Name = def.Name
	rec.Snapshot = snap
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := s.store.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrBadID):
		writeError(w, http.StatusNotFound, "plan not found")
	case err != nil:
		s.serverError(w, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleGraph renders one adjacency graph artifact for a stored plan.
// Query parameters: level (int), threshold (float), detailed (bool).
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}

	format := chi.URLParam(r, "format")
	opts := pipeline.Options{Formats: []string{format}}

	q := r.URL.Query()
	if v := q.Get("level"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid level")
			return
		}
		opts.Level = n
	}
	if v := q.Get("threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid threshold")
			return
		}
		opts.Threshold = f
	}
	opts.Detailed = q.Get("detailed") == "true"

	res, err := s.runner.ExecuteSnapshot(r.Context(), rec.Snapshot, opts)
	switch {
	case errors.Is(err, pipeline.ErrBadFormat):
		writeError(w, http.StatusBadRequest, "unknown format "+format)
		return
	case errors.Is(err, pipeline.ErrBadLevel):
		writeError(w, http.StatusBadRequest, "no such storey")
		return
	case err != nil:
		s.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", artifactContentTypes[format])
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[format])
}

// lookup fetches the record named by the id URL parameter, writing the
// error response itself on failure.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*store.Record, bool) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrBadID):
		writeError(w, http.StatusNotFound, "plan not found")
		return nil, false
	case err != nil:
		s.serverError(w, err)
		return nil, false
	}
	return rec, true
}

// readDefinition parses and builds the TOML definition in the request
// body, writing the error response itself on failure.
func (s *Server) readDefinition(w http.ResponseWriter, r *http.Request) (*plan.Definition, *plan.Snapshot, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return nil, nil, false
	}
	def, err := plan.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan: "+err.Error())
		return nil, nil, false
	}
	root, err := def.Build()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "plan does not build: "+err.Error())
		return nil, nil, false
	}
	return def, plan.Capture(root), true
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", "err", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
