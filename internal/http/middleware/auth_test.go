package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/roamstack/tourism-api/internal/domain"
	"github.com/roamstack/tourism-api/internal/platform/auth"
)

const testSecret = "test-secret"

type mockUsersRepo struct {
	users map[string]*domain.User
}

func (m *mockUsersRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return m.users[strings.ToLower(email)], nil
}

func (m *mockUsersRepo) Insert(context.Context, *domain.UserCreateReq) (int64, error) { return 0, nil }
func (m *mockUsersRepo) List(context.Context, string, string) ([]domain.User, error) {
	return nil, nil
}
func (m *mockUsersRepo) DeleteByID(context.Context, int64) (int64, error) { return 0, nil }
func (m *mockUsersRepo) UpdateProfile(context.Context, string, string, string) (int64, error) {
	return 0, nil
}
func (m *mockUsersRepo) SetRoleByID(context.Context, int64, domain.Role) (int64, error) {
	return 0, nil
}
func (m *mockUsersRepo) SetRoleByEmail(context.Context, string, domain.Role) (int64, error) {
	return 0, nil
}

func okHandler(t *testing.T, wantEmail string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := Claims(r)
		if claims == nil {
			t.Error("claims missing from context")
		} else if wantEmail != "" && claims.Email != wantEmail {
			t.Errorf("claims email = %q, want %q", claims.Email, wantEmail)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthMissingHeader(t *testing.T) {
	h := RequireAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without a credential")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthBadToken(t *testing.T) {
	h := RequireAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run with an invalid credential")
	}))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	token, err := auth.NewAccessToken("a@x.com", "", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	h := RequireAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run with an expired credential")
	}))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	token, err := auth.NewAccessToken("a@x.com", "Ana", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	h := RequireAuth(testSecret)(okHandler(t, "a@x.com"))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	users := &mockUsersRepo{users: map[string]*domain.User{
		"admin@x.com": {Email: "admin@x.com", Role: domain.RoleAdmin},
		"user@x.com":  {Email: "user@x.com", Role: domain.RoleUser},
	}}

	tests := []struct {
		name     string
		email    string
		role     domain.Role
		wantCode int
	}{
		{"admin passes admin gate", "admin@x.com", domain.RoleAdmin, http.StatusOK},
		{"plain user fails admin gate", "user@x.com", domain.RoleAdmin, http.StatusForbidden},
		{"unknown user fails admin gate", "ghost@x.com", domain.RoleAdmin, http.StatusForbidden},
		{"admin fails guide gate", "admin@x.com", domain.RoleGuide, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := auth.NewAccessToken(tt.email, "", testSecret, time.Hour)
			if err != nil {
				t.Fatalf("NewAccessToken: %v", err)
			}

			h := RequireAuth(testSecret)(RequireRole(users, tt.role)(okHandler(t, "")))

			req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}
