package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"proinc-backend/internal/admin"
	"proinc-backend/internal/models"

	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	console *admin.Console
}

func NewAdminHandler(console *admin.Console) *AdminHandler {
	return &AdminHandler{
		console: console,
	}
}

type DirectoryResponse struct {
	Users []models.User `json:"users"`
	Stats admin.Stats   `json:"stats"`
}

// --- GET /admin/users?q=&tab= ---

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.console.List(r.Context())
	if err != nil {
		log.Printf("Error listing users: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.respondDirectory(w, r, users)
}

// --- POST /admin/users/{id}/approve ---

type ApproveRequest struct {
	Approved bool `json:"approved"`
}

func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	users, err := h.console.SetApproval(r.Context(), id, req.Approved)
	if err != nil {
		h.moderationError(w, id, err)
		return
	}
	h.respondDirectory(w, r, users)
}

// --- POST /admin/users/{id}/role ---

func (h *AdminHandler) ToggleRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	users, err := h.console.ToggleRole(r.Context(), id)
	if err != nil {
		h.moderationError(w, id, err)
		return
	}
	h.respondDirectory(w, r, users)
}

// --- POST /admin/users/{id}/decline ---

type DeclineRequest struct {
	Reason string `json:"reason"`
}

func (h *AdminHandler) Decline(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req DeclineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	users, err := h.console.Decline(r.Context(), id, req.Reason)
	if err != nil {
		h.moderationError(w, id, err)
		return
	}
	h.respondDirectory(w, r, users)
}

// --- Helpers ---

// respondDirectory applies search and tab filtering to the visible set; the
// stats always cover the full set.
func (h *AdminHandler) respondDirectory(w http.ResponseWriter, r *http.Request, users []models.User) {
	stats := admin.Counts(users)

	visible := admin.Search(users, r.URL.Query().Get("q"))
	if tab := r.URL.Query().Get("tab"); tab != "" {
		visible = admin.Partition(visible, admin.Tab(tab))
	}

	writeJSON(w, http.StatusOK, DirectoryResponse{
		Users: visible,
		Stats: stats,
	})
}

func (h *AdminHandler) moderationError(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, admin.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, admin.ErrReasonRequired):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		log.Printf("Error moderating user %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update user"})
	}
}
