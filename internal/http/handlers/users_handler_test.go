package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/roamstack/tourism-api/internal/domain"
)

type mockUsersRepo struct {
	users    map[string]*domain.User
	nextID   int64
	inserted []domain.UserCreateReq
}

func (m *mockUsersRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return m.users[strings.ToLower(email)], nil
}

func (m *mockUsersRepo) Insert(_ context.Context, req *domain.UserCreateReq) (int64, error) {
	if _, exists := m.users[strings.ToLower(req.Email)]; exists {
		return 0, nil
	}
	m.nextID++
	m.inserted = append(m.inserted, *req)
	return m.nextID, nil
}

func (m *mockUsersRepo) List(context.Context, string, string) ([]domain.User, error) {
	return nil, nil
}
func (m *mockUsersRepo) DeleteByID(context.Context, int64) (int64, error) { return 1, nil }

func (m *mockUsersRepo) UpdateProfile(_ context.Context, email, _, _ string) (int64, error) {
	if m.users[strings.ToLower(email)] == nil {
		return 0, nil
	}
	return 1, nil
}

func (m *mockUsersRepo) SetRoleByID(context.Context, int64, domain.Role) (int64, error) {
	return 1, nil
}
func (m *mockUsersRepo) SetRoleByEmail(context.Context, string, domain.Role) (int64, error) {
	return 1, nil
}

func TestRegisterNewUser(t *testing.T) {
	repo := &mockUsersRepo{users: map[string]*domain.User{}}
	h := NewUsersHandler(repo)

	body := strings.NewReader(`{"email":"new@x.com","name":"New"}`)
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var ack struct {
		InsertedID *int64 `json:"insertedId"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&ack); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if ack.InsertedID == nil || *ack.InsertedID == 0 {
		t.Errorf("insertedId = %v, want a non-zero id", ack.InsertedID)
	}
	if len(repo.inserted) != 1 {
		t.Errorf("inserted %d users, want 1", len(repo.inserted))
	}
}

func TestRegisterExistingUser(t *testing.T) {
	repo := &mockUsersRepo{users: map[string]*domain.User{
		"taken@x.com": {ID: 7, Email: "taken@x.com"},
	}}
	h := NewUsersHandler(repo)

	body := strings.NewReader(`{"email":"Taken@X.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var ack struct {
		Message    string `json:"message"`
		InsertedID *int64 `json:"insertedId"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&ack); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if ack.Message != "user already exist" {
		t.Errorf("message = %q, want %q", ack.Message, "user already exist")
	}
	if ack.InsertedID != nil {
		t.Errorf("insertedId = %d, want null", *ack.InsertedID)
	}
	if len(repo.inserted) != 0 {
		t.Errorf("inserted %d users, want 0", len(repo.inserted))
	}
}

func TestRegisterMissingEmail(t *testing.T) {
	h := NewUsersHandler(&mockUsersRepo{users: map[string]*domain.User{}})

	body := strings.NewReader(`{"name":"No Email"}`)
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateProfileNotFound(t *testing.T) {
	h := NewUsersHandler(&mockUsersRepo{users: map[string]*domain.User{}})

	r := chi.NewRouter()
	r.Put("/update-profile/{email}", h.UpdateProfile)

	body := strings.NewReader(`{"name":"Ghost","photo":""}`)
	req := httptest.NewRequest(http.MethodPut, "/update-profile/ghost@x.com", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSetRoleUnknownRole(t *testing.T) {
	h := NewUsersHandler(&mockUsersRepo{users: map[string]*domain.User{}})

	body := strings.NewReader(`{"email":"a@x.com","role":"superuser"}`)
	req := httptest.NewRequest(http.MethodPatch, "/users/role", body)
	rec := httptest.NewRecorder()
	h.SetRole(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteUserInvalidID(t *testing.T) {
	h := NewUsersHandler(&mockUsersRepo{users: map[string]*domain.User{}})

	r := chi.NewRouter()
	r.Delete("/users/{id}", h.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/users/abc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
