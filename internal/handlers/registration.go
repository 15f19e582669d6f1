package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"proinc-backend/internal/form"
	"proinc-backend/internal/identity"
	"proinc-backend/internal/middleware"
	"proinc-backend/internal/models"

	"github.com/go-chi/chi/v5"
)

type RegistrationHandler struct {
	controller *form.Controller
	provider   *identity.Provider
}

func NewRegistrationHandler(controller *form.Controller, provider *identity.Provider) *RegistrationHandler {
	return &RegistrationHandler{
		controller: controller,
		provider:   provider,
	}
}

// ownerFor builds the draft owner from the session, prefilling email and
// first name the way the stepper does on first render.
func (h *RegistrationHandler) ownerFor(r *http.Request) (form.Owner, error) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		return form.Owner{}, errors.New("unauthorized")
	}

	owner := form.Owner{ID: userID, Email: middleware.GetEmail(r.Context())}
	if session, err := h.provider.Reload(r.Context(), userID); err == nil {
		owner.Email = session.Email
		if parts := strings.Fields(session.DisplayName); len(parts) > 0 {
			owner.FirstName = parts[0]
		}
	}
	return owner, nil
}

// --- GET /registration/draft ---

func (h *RegistrationHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	owner, err := h.ownerFor(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, h.controller.Snapshot(owner))
}

type UpdateFieldRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// --- PUT /registration/draft ---

func (h *RegistrationHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	owner, err := h.ownerFor(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req UpdateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.controller.UpdateField(owner, req.Key, req.Value); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "field updated"})
}

// --- POST /registration/advance ---

func (h *RegistrationHandler) Advance(w http.ResponseWriter, r *http.Request) {
	owner, err := h.ownerFor(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	step, verr := h.controller.Advance(owner)
	if verr != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  verr.Error(),
			"fields": verr.Fields,
			"step":   step,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"step": step})
}

// --- POST /registration/retreat ---

func (h *RegistrationHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	owner, err := h.ownerFor(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"step": h.controller.Retreat(owner)})
}

type AddFilesRequest struct {
	DocType string           `json:"doc_type"`
	Files   []form.FileInput `json:"files"`
}

// --- POST /registration/files ---

func (h *RegistrationHandler) AddFiles(w http.ResponseWriter, r *http.Request) {
	owner, err := h.ownerFor(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req AddFilesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	accepted, rejected := h.controller.AddFiles(owner, models.DocumentType(req.DocType), req.Files)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"accepted": accepted,
		"rejected": rejected,
	})
}

type ProgressRequest struct {
	Name    string `json:"name"`
	Percent int    `json:"percent"`
}

// --- POST /registration/files/progress ---

func (h *RegistrationHandler) SetProgress(w http.ResponseWriter, r *http.Request) {
	owner, err := h.ownerFor(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req ProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	// tracking == false tells the uploader the file was removed and its
	// progress updates should stop
	tracking := h.controller.SetProgress(owner, req.Name, req.Percent)
	writeJSON(w, http.StatusOK, map[string]bool{"tracking": tracking})
}

// --- DELETE /registration/files/{name} ---

func (h *RegistrationHandler) RemoveFile(w http.ResponseWriter, r *http.Request) {
	owner, err := h.ownerFor(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	name := chi.URLParam(r, "name")
	h.controller.RemoveFile(owner, name)
	writeJSON(w, http.StatusOK, map[string]string{"message": "file removed"})
}

// --- POST /registration/submit ---

func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	owner, err := h.ownerFor(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	err = h.controller.Submit(r.Context(), owner)
	if err == nil {
		writeJSON(w, http.StatusOK, map[string]string{"message": "registration completed"})
		return
	}

	var verr *form.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  verr.Error(),
			"fields": verr.Fields,
		})
	case errors.Is(err, form.ErrNotFinalStep), errors.Is(err, form.ErrNoDraft):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		// Partial failure is overall failure: earlier records may have
		// persisted, but the registration is reported incomplete.
		log.Printf("Error submitting registration for %s: %v", owner.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "submission failed"})
	}
}
