package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/roamstack/tourism-api/internal/domain"
	mw "github.com/roamstack/tourism-api/internal/http/middleware"
	"github.com/roamstack/tourism-api/internal/platform/auth"
)

const testSecret = "test-secret"

func TestIssueToken(t *testing.T) {
	h := NewAuthHandler(&mockUsersRepo{users: map[string]*domain.User{}}, testSecret, 3*time.Hour)

	body := strings.NewReader(`{"email":"Ana@X.com","name":"Ana"}`)
	req := httptest.NewRequest(http.MethodPost, "/jwt", body)
	rec := httptest.NewRecorder()
	h.IssueToken(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	claims, err := auth.Parse(out.Token, testSecret)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Email != "ana@x.com" {
		t.Errorf("claims email = %q, want lowercased %q", claims.Email, "ana@x.com")
	}
}

func TestIssueTokenMissingEmail(t *testing.T) {
	h := NewAuthHandler(&mockUsersRepo{users: map[string]*domain.User{}}, testSecret, 3*time.Hour)

	body := strings.NewReader(`{"name":"No Email"}`)
	req := httptest.NewRequest(http.MethodPost, "/jwt", body)
	rec := httptest.NewRecorder()
	h.IssueToken(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// adminCheckRouter wires AdminCheck behind the access verifier the way the
// server does, so claims reach the handler through the request context.
func adminCheckRouter(h *AuthHandler) http.Handler {
	r := chi.NewRouter()
	r.With(mw.RequireAuth(testSecret)).Get("/users/admin/{email}", h.AdminCheck)
	return r
}

func TestAdminCheck(t *testing.T) {
	users := &mockUsersRepo{users: map[string]*domain.User{
		"admin@x.com": {Email: "admin@x.com", Role: domain.RoleAdmin},
		"user@x.com":  {Email: "user@x.com", Role: domain.RoleUser},
	}}
	h := NewAuthHandler(users, testSecret, 3*time.Hour)
	router := adminCheckRouter(h)

	tests := []struct {
		name       string
		tokenEmail string
		pathEmail  string
		wantCode   int
		wantAdmin  bool
	}{
		{"admin asks about self", "admin@x.com", "admin@x.com", http.StatusOK, true},
		{"plain user asks about self", "user@x.com", "user@x.com", http.StatusOK, false},
		{"asking about someone else is forbidden", "user@x.com", "admin@x.com", http.StatusForbidden, false},
		{"case-insensitive identity match", "admin@x.com", "Admin@X.com", http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := auth.NewAccessToken(tt.tokenEmail, "", testSecret, time.Hour)
			if err != nil {
				t.Fatalf("NewAccessToken: %v", err)
			}

			req := httptest.NewRequest(http.MethodGet, "/users/admin/"+tt.pathEmail, nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode != http.StatusOK {
				return
			}

			var out struct {
				Admin bool `json:"admin"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if out.Admin != tt.wantAdmin {
				t.Errorf("admin = %v, want %v", out.Admin, tt.wantAdmin)
			}
		})
	}
}

func TestAdminCheckWithoutToken(t *testing.T) {
	h := NewAuthHandler(&mockUsersRepo{users: map[string]*domain.User{}}, testSecret, 3*time.Hour)
	router := adminCheckRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/users/admin/a@x.com", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
