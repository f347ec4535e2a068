// Package api exposes the intake conversation over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	errx "github.com/wardline/server/internal/core/error"
	"github.com/wardline/server/internal/intake/engine"
	"github.com/wardline/server/internal/intake/model"
	"github.com/wardline/server/internal/middleware"
	logx "github.com/wardline/server/pkg/logger"
)

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// ChatResponse carries the single agent reply produced during the turn.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Server bundles the dependencies required by the HTTP handlers.
type Server struct {
	runner  engine.Runner
	origins []string
}

func NewServer(runner engine.Runner, allowedOrigins []string) *Server {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return &Server{runner: runner, origins: allowedOrigins}
}

// Router assembles the route tree with global middleware.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(s.origins))

	r.Get("/", s.handleRoot)
	r.Post("/chat", s.handleChat)
	r.Post("/api/sessions", s.handleCreateSession)

	return r
}

// handleRoot is the liveness endpoint.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Hospital Receptionist AI Backend is running",
	})
}

// handleChat validates the request shape and runs one conversation turn.
// Input-shape validation lives here; the engine assumes well-formed input.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message must not be empty")
		return
	}

	reply, err := s.runner.Invoke(r.Context(), model.TurnInput{
		SessionID: req.SessionID,
		Message:   req.Message,
	})
	if err != nil {
		logx.Error().Err(err).Str("session_id", req.SessionID).Msg("turn failed")
		var appErr *errx.AppError
		if errors.As(err, &appErr) {
			writeError(w, appErr.Status, appErr.Message)
			return
		}
		writeError(w, http.StatusInternalServerError, errx.SystemErrorMessage)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{Reply: reply})
}

// handleCreateSession mints a session identifier for clients that do not
// generate their own.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, map[string]string{
		"session_id": uuid.NewString(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
