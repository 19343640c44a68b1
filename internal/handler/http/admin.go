package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/analytics"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/httputil"
)

// AdminHandler handles the administrator console.
type AdminHandler struct {
	admin    Admin
	sessions Sessions
	logger   *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(admin Admin, sessions Sessions, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		admin:    admin,
		sessions: sessions,
		logger:   logger,
	}
}

// Summary handles GET /api/v1/admin/summary
func (h *AdminHandler) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.admin.AdminSummary(r.Context())
	writeResource(w, r, s, err)
}

// Dashboard handles GET /api/v1/admin/dashboard?top=N
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	topN, err := topParam(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	raw, err := h.admin.AdminDashboard(r.Context())
	var report analytics.Report
	if err == nil {
		report = analytics.Build(raw, topN)
	}
	writeResource(w, r, report, err)
}

// ListUsers handles GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.Users(r.Context())
	writeResource(w, r, users, err)
}

// SetRole handles PUT /api/v1/admin/users/{id}/role. Changing the signed-in
// administrator's own role also patches the local session.
func (h *AdminHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := httputil.PathParam(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	var req domain.RoleUpdate
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	account, err := h.admin.SetUserRole(r.Context(), userID, req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if s := h.sessions.Current(); s.User != nil && s.User.ID == userID {
		if err := h.sessions.UpdateRole(r.Context(), req.Role); err != nil {
			h.logger.WarnContext(r.Context(), "failed to persist role change", slog.String("error", err.Error()))
		}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: account})
}

// ToggleUser handles PATCH /api/v1/admin/users/{id}/toggle
func (h *AdminHandler) ToggleUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := httputil.PathParam(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	account, err := h.admin.ToggleUser(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: account})
}
