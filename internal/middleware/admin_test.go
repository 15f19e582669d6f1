package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"proinc-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type fakeRoleLookup struct {
	user *models.User
}

func (f *fakeRoleLookup) FindByID(ctx context.Context, id string) (*models.User, error) {
	return f.user, nil
}

func adminChain(t *testing.T, lookup RoleLookup) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return JWTAuth(testSecret)(AdminOnly(lookup)(next))
}

func adminRequest(t *testing.T) *http.Request {
	t.Helper()
	token := signedToken(t, testSecret, jwt.MapClaims{
		"user_id": "u1",
		"email":   "a@x.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	return authedRequest(token)
}

func TestAdminOnly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user *models.User
		want int
	}{
		{name: "admin passes", user: &models.User{ID: "u1", Role: models.RoleAdmin}, want: http.StatusOK},
		{name: "plain user denied", user: &models.User{ID: "u1", Role: models.RoleUser}, want: http.StatusForbidden},
		{name: "business role denied", user: &models.User{ID: "u1", Role: models.RoleSupplier}, want: http.StatusForbidden},
		{name: "missing record denied", user: nil, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := adminChain(t, &fakeRoleLookup{user: tt.user})
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, adminRequest(t))
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}
