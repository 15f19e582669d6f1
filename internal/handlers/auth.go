package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"proinc-backend/internal/identity"
	"proinc-backend/internal/middleware"
)

type AuthHandler struct {
	provider *identity.Provider
}

func NewAuthHandler(provider *identity.Provider) *AuthHandler {
	return &AuthHandler{
		provider: provider,
	}
}

// --- Request / Response types ---

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type FederatedRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type SessionResponse struct {
	Token   string           `json:"token"`
	Session identity.Session `json:"session"`
}

// --- POST /auth/signup ---

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name, email and password are required"})
		return
	}

	session, err := h.provider.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("Error signing up %s: %v", req.Email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.respondWithToken(w, session)
}

// --- POST /auth/signin ---

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email and password are required"})
		return
	}

	session, err := h.provider.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("Error signing in %s: %v", req.Email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.respondWithToken(w, session)
}

// --- POST /auth/federated ---
// Completes a sign-in coming back from the federated provider. The address
// arrives already verified.

func (h *AuthHandler) Federated(w http.ResponseWriter, r *http.Request) {
	var req FederatedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	session, err := h.provider.FederatedSignIn(r.Context(), req.Email, req.Name)
	if err != nil {
		log.Printf("Error in federated sign-in for %s: %v", req.Email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.respondWithToken(w, session)
}

// --- GET /auth/session ---
// Reloads the session from the account record, picking up a verification
// change.

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	session, err := h.provider.Reload(r.Context(), userID)
	if err != nil {
		if errors.Is(err, identity.ErrAccountNotFound) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		log.Printf("Error reloading session %s: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// --- POST /auth/signout ---
// Sessions are stateless JWTs; sign-out is a client-side token discard.

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "signed out"})
}

// --- POST /auth/resend-verification ---

func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
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

	if err := h.provider.IssueVerificationEmail(r.Context(), session); err != nil {
		if errors.Is(err, identity.ErrTooManyRequests) {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("Error issuing verification email for %s: %v", session.Email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to send verification email"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "verification email sent"})
}

// --- GET /auth/verify ---
// This endpoint is clicked from the email, so it answers with a small HTML
// page rather than JSON.

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusBadRequest)
		return
	}

	err := h.provider.VerifyEmail(r.Context(), token)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	switch {
	case err == nil:
		verifyPage(w, "Email verified", "Your email address has been verified. You can return to the app and continue setting up your profile.")
	case errors.Is(err, identity.ErrTokenExpired):
		w.WriteHeader(http.StatusGone)
		verifyPage(w, "Link expired", "This verification link has expired. Request a new one from the app.")
	case errors.Is(err, identity.ErrTokenUsed):
		verifyPage(w, "Already verified", "This link was already used. If your email shows as verified in the app, you are all set.")
	case errors.Is(err, identity.ErrTokenInvalid):
		w.WriteHeader(http.StatusUnauthorized)
		verifyPage(w, "Invalid link", "This verification link is not valid. Request a new one from the app.")
	default:
		log.Printf("Error verifying email token: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		verifyPage(w, "Something went wrong", "We could not verify your email right now. Please try the link again in a moment.")
	}
}

// --- Helpers ---

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, session identity.Session) {
	token, err := h.provider.SignedToken(session)
	if err != nil {
		log.Printf("Error signing JWT: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{
		Token:   token,
		Session: session,
	})
}

func verifyPage(w http.ResponseWriter, title, message string) {
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<title>%s</title>
	<style>
		body { font-family: -apple-system, sans-serif; display: flex; justify-content: center; align-items: center; min-height: 100vh; margin: 0; background: #f5f3ff; }
		.card { text-align: center; padding: 40px; background: white; border-radius: 16px; box-shadow: 0 4px 24px rgba(0,0,0,0.1); max-width: 400px; }
		h1 { color: #333; font-size: 24px; }
		p { color: #666; font-size: 16px; line-height: 1.5; }
	</style>
</head>
<body>
	<div class="card">
		<h1>%s</h1>
		<p>%s</p>
	</div>
</body>
</html>`, title, title, message)
}
