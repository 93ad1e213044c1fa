package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/hexsim"
	"github.com/aretw0/hexsim/internal/dto"
	"github.com/aretw0/hexsim/internal/logging"
	"github.com/aretw0/hexsim/pkg/domain"
	"github.com/aretw0/hexsim/pkg/program"
	"github.com/aretw0/hexsim/pkg/registry"
	"github.com/aretw0/hexsim/pkg/session"
)

// ApplyRequest is the body of POST /sessions/{id}/apply.
type ApplyRequest struct {
	Actions []string `json:"actions"`
}

// ActionsResponse is the body of GET /actions.
type ActionsResponse struct {
	Actions []string `json:"actions"`
}

// SessionsResponse is the body of GET /sessions.
type SessionsResponse struct {
	Sessions []string `json:"sessions"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server exposes simulations over a JSON API.
type Server struct {
	Registry  *registry.Registry
	Sessions  *session.Manager
	StackOpts []hexsim.Option

	logger  *slog.Logger
	metrics http.Handler
}

// Option configures the Server.
type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithStackOptions sets the options used for one-shot simulations.
func WithStackOptions(opts ...hexsim.Option) Option {
	return func(s *Server) {
		s.StackOpts = append(s.StackOpts, opts...)
	}
}

// WithMetricsHandler mounts h at GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler creates a new HTTP handler.
func NewHandler(reg *registry.Registry, sessions *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		Registry: reg,
		Sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/actions", s.ListActions)
	r.Post("/simulate", s.Simulate)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.CreateSession)
		r.Get("/{id}", s.GetSession)
		r.Delete("/{id}", s.DeleteSession)
		r.Post("/{id}/apply", s.ApplySession)
	})

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"name": "hexsim", "version": hexsim.Version})
}

// ListActions handles GET /actions.
func (s *Server) ListActions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, ActionsResponse{Actions: s.Registry.Names()})
}

// Simulate handles POST /simulate. The body is a program document.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	raw, ok := s.decodeBody(w, r)
	if !ok {
		return
	}

	prog, err := program.Decode(raw)
	if err != nil {
		s.writeError(w, err)
		return
	}
	state, err := prog.State()
	if err != nil {
		s.writeError(w, err)
		return
	}
	actions, err := prog.Resolve(s.Registry)
	if err != nil {
		s.writeError(w, err)
		return
	}

	mgr := hexsim.Start(state, s.StackOpts...)
	if err := mgr.Run(r.Context(), actions...); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dto.FromHolder(mgr.Holder(), mgr.Steps()))
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, SessionsResponse{Sessions: ids})
}

// CreateSession handles POST /sessions. The body is a program document
// with an additional "id"; its actions, if any, are applied right away.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	raw, ok := s.decodeBody(w, r)
	if !ok {
		return
	}
	id, _ := raw["id"].(string)
	delete(raw, "id")
	if id == "" {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing session id"})
		return
	}

	prog, err := program.Decode(raw)
	if err != nil {
		s.writeError(w, err)
		return
	}
	state, err := prog.State()
	if err != nil {
		s.writeError(w, err)
		return
	}
	actions, err := prog.Resolve(s.Registry)
	if err != nil {
		s.writeError(w, err)
		return
	}

	snap, err := s.Sessions.Create(r.Context(), id, state)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if len(actions) > 0 {
		if snap, err = s.Sessions.Apply(r.Context(), id, actions...); err != nil {
			s.writeError(w, err)
			return
		}
	}
	s.logger.Info("session created", "session_id", id, "steps", snap.Steps)
	s.writeJSON(w, http.StatusCreated, fromSnapshot(snap))
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, fromSnapshot(snap))
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplySession handles POST /sessions/{id}/apply.
func (s *Server) ApplySession(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}
	var body ApplyRequest
	if err := json.Unmarshal(data, &body); err != nil {
		s.logger.Warn("Apply: Invalid request body", "error", err)
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	actions, err := s.Registry.Resolve(body.Actions)
	if err != nil {
		s.writeError(w, err)
		return
	}
	snap, err := s.Sessions.Apply(r.Context(), chi.URLParam(r, "id"), actions...)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, fromSnapshot(snap))
}

// readBody applies the program size and encoding policy to the request body.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	limit := program.MaxSize()
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(limit)))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("%w: limit=%d", program.ErrTooLarge, limit)
		}
		s.logger.Warn("Request body rejected", "path", r.URL.Path, "error", err)
		s.writeError(w, err)
		return nil, false
	}
	clean, err := program.Sanitize(string(data))
	if err != nil {
		s.logger.Warn("Request body rejected", "path", r.URL.Path, "error", err, "size", len(data))
		s.writeError(w, err)
		return nil, false
	}
	return []byte(clean), true
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	data, ok := s.readBody(w, r)
	if !ok {
		return nil, false
	}
	raw := map[string]interface{}{}
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "error", err)
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return nil, false
	}
	return raw, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var decodeErr *program.DecodeError
	var entityErr *domain.EntityConstraintError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSessionExists):
		return http.StatusConflict
	case errors.Is(err, program.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrUnknownAction),
		errors.Is(err, program.ErrInvalidUTF8),
		errors.As(err, &decodeErr),
		errors.As(err, &entityErr):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func fromSnapshot(snap *session.Snapshot) dto.Holder {
	h := dto.FromHolder(snap.Holder, snap.Steps)
	h.ID = snap.ID
	return h
}
