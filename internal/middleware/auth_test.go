package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return s
}

func authedRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestJWTAuth_ValidToken(t *testing.T) {
	t.Parallel()

	var gotID, gotEmail string
	handler := JWTAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetUserID(r.Context())
		gotEmail = GetEmail(r.Context())
	}))

	token := signedToken(t, testSecret, jwt.MapClaims{
		"user_id": "u1",
		"email":   "a@x.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(token))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != "u1" || gotEmail != "a@x.com" {
		t.Fatalf("claims not propagated: id=%q email=%q", gotID, gotEmail)
	}
}

func TestJWTAuth_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{name: "missing header", token: ""},
		{name: "garbage token", token: "not-a-jwt"},
		{
			name: "wrong secret",
			token: signedToken(t, "other-secret", jwt.MapClaims{
				"user_id": "u1",
				"exp":     time.Now().Add(time.Hour).Unix(),
			}),
		},
		{
			name: "expired",
			token: signedToken(t, testSecret, jwt.MapClaims{
				"user_id": "u1",
				"exp":     time.Now().Add(-time.Hour).Unix(),
			}),
		},
		{
			name: "no user_id claim",
			token: signedToken(t, testSecret, jwt.MapClaims{
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := JWTAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, authedRequest(tt.token))

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if called {
				t.Fatal("next handler must not run")
			}
		})
	}
}

func TestGetUserID_Unauthenticated(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetUserID(req.Context()); got != "" {
		t.Fatalf("expected empty user id, got %q", got)
	}
}
