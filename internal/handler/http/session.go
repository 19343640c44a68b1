package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/state"
	"github.com/utafrali/storefront/pkg/httputil"
)

// SessionHandler handles sign-in, sign-up and the current session.
type SessionHandler struct {
	sessions Sessions
	logger   *slog.Logger
}

// NewSessionHandler creates a new session HTTP handler.
func NewSessionHandler(sessions Sessions, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// Login handles POST /api/v1/session/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.Credentials
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	user, err := h.sessions.Authenticate(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: user})
}

// Register handles POST /api/v1/session/register
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.Registration
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	user, err := h.sessions.Register(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: user})
}

// Logout handles POST /api/v1/session/logout. It succeeds without a session.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/v1/session
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.sessions.Current()})
}

// Restore handles POST /api/v1/session/restore and rebuilds the session from
// the cached token.
func (h *SessionHandler) Restore(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Restore(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if !s.IsAuthenticated {
		s = state.Session{}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: s})
}
