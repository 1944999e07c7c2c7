package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/roamstack/tourism-api/internal/domain"
	"github.com/roamstack/tourism-api/internal/http/response"
	"github.com/roamstack/tourism-api/internal/logger"
	"github.com/roamstack/tourism-api/internal/repo/postgres"
)

type UsersHandler struct {
	users postgres.UsersRepo
}

func NewUsersHandler(users postgres.UsersRepo) *UsersHandler {
	return &UsersHandler{users: users}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	role := r.URL.Query().Get("role")

	users, err := h.users.List(r.Context(), search, role)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list users", "error", err)
		response.InternalError(w, "failed to fetch users")
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	response.JSON(w, http.StatusOK, users)
}

// Register is idempotent by email: a repeat registration acknowledges with a
// null insertedId and leaves the existing record untouched.
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.UserCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		response.BadRequest(w, "email is required")
		return
	}

	existing, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to check existing user", "error", err)
		response.InternalError(w, "failed to register user")
		return
	}
	if existing != nil {
		response.JSON(w, http.StatusOK, response.InsertAck{Message: "user already exist", InsertedID: nil})
		return
	}

	id, err := h.users.Insert(r.Context(), &req)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to insert user", "error", err)
		response.InternalError(w, "failed to register user")
		return
	}
	if id == 0 {
		// Lost the race to a concurrent registration; the unique index held.
		response.JSON(w, http.StatusOK, response.InsertAck{Message: "user already exist", InsertedID: nil})
		return
	}

	response.Inserted(w, id)
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "invalid user id")
		return
	}

	count, err := h.users.DeleteByID(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to delete user", "error", err)
		response.InternalError(w, "failed to delete user")
		return
	}
	response.Deleted(w, count)
}

func (h *UsersHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var in struct {
		Name  string `json:"name"`
		Photo string `json:"photo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid payload")
		return
	}

	count, err := h.users.UpdateProfile(r.Context(), email, in.Name, in.Photo)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to update profile", "error", err)
		response.InternalError(w, "failed to update profile")
		return
	}
	if count == 0 {
		response.NotFound(w, "user not found")
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "profile updated successfully",
	})
}

// PromoteAdmin is the admin-only role grant by user id.
func (h *UsersHandler) PromoteAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "invalid user id")
		return
	}

	count, err := h.users.SetRoleByID(r.Context(), id, domain.RoleAdmin)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to promote user", "error", err)
		response.InternalError(w, "failed to update user role")
		return
	}
	response.Updated(w, count, count)
}

// SetRole changes a user's role by email (used when a guide application is
// approved).
func (h *UsersHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Email == "" {
		response.BadRequest(w, "email and role are required")
		return
	}

	role, ok := domain.ParseRole(in.Role)
	if !ok {
		response.BadRequest(w, "unknown role")
		return
	}

	count, err := h.users.SetRoleByEmail(r.Context(), in.Email, role)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to update user role", "error", err)
		response.InternalError(w, "failed to update user role")
		return
	}
	response.Updated(w, count, count)
}
