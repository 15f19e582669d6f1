package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"proinc-backend/internal/identity"
	"proinc-backend/internal/middleware"
	"proinc-backend/internal/onboarding"
	"proinc-backend/internal/repository"
	"proinc-backend/internal/watch"
)

// longPollTimeout caps how long an await request stays open before the
// client has to re-poll. Closing the connection cancels the underlying
// watcher either way.
const longPollTimeout = 55 * time.Second

type OnboardingHandler struct {
	provider   *identity.Provider
	userRepo   *repository.UserRepo
	poller     *watch.VerificationPoller
	subscriber *watch.ApprovalSubscriber
}

func NewOnboardingHandler(provider *identity.Provider, userRepo *repository.UserRepo, poller *watch.VerificationPoller, subscriber *watch.ApprovalSubscriber) *OnboardingHandler {
	return &OnboardingHandler{
		provider:   provider,
		userRepo:   userRepo,
		poller:     poller,
		subscriber: subscriber,
	}
}

type StateResponse struct {
	Gate          string `json:"gate"`
	EmailVerified bool   `json:"email_verified"`
	Submitted     bool   `json:"submitted"`
	Approved      bool   `json:"approved"`
}

// --- GET /onboarding/state ---

func (h *OnboardingHandler) State(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	session, err := h.provider.Reload(r.Context(), userID)
	if err != nil {
		if errors.Is(err, identity.ErrAccountNotFound) {
			// The account behind a valid token vanished; treat as signed out.
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		log.Printf("Error reloading session %s: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil {
		log.Printf("Error finding user %s: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	inputs := onboarding.Inputs{
		Authenticated: true,
		EmailVerified: session.EmailVerified,
	}
	if user != nil {
		inputs.Submitted = user.ProfileCompleted
		inputs.Approved = user.IsApproved
	}

	writeJSON(w, http.StatusOK, StateResponse{
		Gate:          onboarding.Resolve(inputs).String(),
		EmailVerified: inputs.EmailVerified,
		Submitted:     inputs.Submitted,
		Approved:      inputs.Approved,
	})
}

// --- GET /onboarding/await-verification ---
// Long-polls until the email is verified or the request times out. The
// poller is torn down with the request context, so a dropped connection
// leaves no timer behind.

func (h *OnboardingHandler) AwaitVerification(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	session, err := h.provider.Reload(r.Context(), userID)
	if err != nil {
		log.Printf("Error reloading session %s: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if session.EmailVerified {
		writeJSON(w, http.StatusOK, map[string]bool{"verified": true})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), longPollTimeout)
	defer cancel()

	select {
	case <-h.poller.Await(ctx, userID):
		writeJSON(w, http.StatusOK, map[string]bool{"verified": true})
	case <-ctx.Done():
		writeJSON(w, http.StatusOK, map[string]bool{"verified": false})
	}
}

// --- GET /onboarding/await-approval ---
// Long-polls until an admin approves the record. Only meaningful once the
// profile has been submitted.

func (h *OnboardingHandler) AwaitApproval(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil {
		log.Printf("Error finding user %s: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if user == nil || !user.ProfileCompleted {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "profile has not been submitted"})
		return
	}
	if user.IsApproved {
		writeJSON(w, http.StatusOK, map[string]bool{"approved": true})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), longPollTimeout)
	defer cancel()

	approved, err := h.subscriber.Await(ctx, userID)
	if err != nil {
		log.Printf("Error subscribing to user %s: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	select {
	case <-approved:
		writeJSON(w, http.StatusOK, map[string]bool{"approved": true})
	case <-ctx.Done():
		writeJSON(w, http.StatusOK, map[string]bool{"approved": false})
	}
}
