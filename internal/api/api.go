// Package api implements the planhaus HTTP API.
//
// The API exposes layout generation over HTTP: clients POST a space request,
// the server runs the planning pipeline (reusing the shared cache), persists
// the resulting layout document in the configured store, and returns the
// record. Stored layouts can then be listed, fetched, and deleted by id.
package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/planhaus/planhaus/pkg/errors"
	"github.com/planhaus/planhaus/pkg/pipeline"
	"github.com/planhaus/planhaus/pkg/plan"
	"github.com/planhaus/planhaus/pkg/store"
)

// maxBodyBytes caps request bodies; space requests are small.
const maxBodyBytes = 1 << 20

// Server handles API requests.
type Server struct {
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates the API handler.
func New(st store.Store, runner *pipeline.Runner, logger *log.Logger) http.Handler {
	s := &Server{store: st, runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1/layouts", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Post("/validate", s.handleValidate)
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleGet)
		r.Delete("/{id}", s.handleDelete)
	})

	return r
}

// =============================================================================
// Request / Response Shapes
// =============================================================================

// CreateRequest is the body for POST /api/v1/layouts.
type CreateRequest struct {
	Name    string           `json:"name,omitempty"`
	Space   plan.SpaceFile   `json:"space"`
	Options pipeline.Options `json:"options,omitempty"`
}

// CreateResponse is the body returned for a generated layout.
type CreateResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name,omitempty"`
	Document  plan.Document `json:"document"`
	SpaceHash string        `json:"space_hash"`
	Cached    bool          `json:"cached"`
}

// ValidateRequest is the body for POST /api/v1/layouts/validate.
type ValidateRequest struct {
	Space    plan.SpaceFile `json:"space"`
	Document plan.Document  `json:"document"`
	Strict   bool           `json:"strict,omitempty"`
}

// ValidateResponse reports the outcome of a validation run.
type ValidateResponse struct {
	IsValid    bool     `json:"is_valid"`
	Violations []string `json:"violations"`
}

// errorResponse is the JSON shape for all error replies.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	space, err := req.Space.ToSpace()
	if err != nil {
		s.writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	opts := req.Options
	opts.Logger = s.logger
	result, err := s.runner.Execute(r.Context(), space, opts)
	if err != nil {
		s.writeError(w, r, statusForError(err), err)
		return
	}

	rec := store.NewRecord(req.Name, result.Document, result.SpaceHash)
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info("layout created",
		"id", rec.ID,
		"rooms", result.Stats.RoomCount,
		"placed", result.Stats.PlacedCount,
		"cached", result.CacheInfo.PlanHit)

	writeJSON(w, http.StatusCreated, CreateResponse{
		ID:        rec.ID,
		Name:      rec.Name,
		Document:  rec.Document,
		SpaceHash: rec.SpaceHash,
		Cached:    result.CacheInfo.PlanHit,
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	space, err := req.Space.ToSpace()
	if err != nil {
		s.writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	validator := plan.NewValidator(space)
	if req.Strict {
		validator = plan.NewStrictValidator(space)
	}
	violations := validator.Validate(req.Document.RoomModels())
	if violations == nil {
		violations = []string{}
	}

	writeJSON(w, http.StatusOK, ValidateResponse{
		IsValid:    len(violations) == 0,
		Violations: violations,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, http.StatusBadRequest,
				errors.New(errors.ErrCodeInvalidInput, "invalid limit: %s", v))
			return
		}
		limit = n
	}

	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if recs == nil {
		recs = []*store.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, statusForError(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Helpers
// =============================================================================

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  errors.GetCode(err),
	})
}

// statusForError maps domain errors to HTTP status codes.
func statusForError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if stderrors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	code := errors.GetCode(err)
	switch {
	case code == errors.ErrCodeNotFound || code == errors.ErrCodeLayoutNotFound:
		return http.StatusNotFound
	case strings.HasPrefix(string(code), "INVALID_"):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
