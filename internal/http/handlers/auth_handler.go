package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/roamstack/tourism-api/internal/domain"
	mw "github.com/roamstack/tourism-api/internal/http/middleware"
	"github.com/roamstack/tourism-api/internal/http/response"
	"github.com/roamstack/tourism-api/internal/logger"
	"github.com/roamstack/tourism-api/internal/platform/auth"
	"github.com/roamstack/tourism-api/internal/repo/postgres"
)

type AuthHandler struct {
	users  postgres.UsersRepo
	secret string
	ttl    time.Duration
}

func NewAuthHandler(users postgres.UsersRepo, secret string, ttl time.Duration) *AuthHandler {
	return &AuthHandler{users: users, secret: secret, ttl: ttl}
}

// IssueToken signs the posted identity into a short-lived access token.
// Identity is asserted by the frontend auth provider; this endpoint only
// mints the credential.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Email) == "" {
		response.BadRequest(w, "email is required")
		return
	}

	token, err := auth.NewAccessToken(strings.ToLower(strings.TrimSpace(in.Email)), in.Name, h.secret, h.ttl)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to sign token", "error", err)
		response.InternalError(w, "failed to issue token")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"token": token})
}

// AdminCheck answers "is this email an admin" for the caller's own identity
// only: asking about someone else's role is forbidden even with a valid
// credential.
func (h *AuthHandler) AdminCheck(w http.ResponseWriter, r *http.Request) {
	h.roleCheck(w, r, domain.RoleAdmin, "admin")
}

// GuideCheck is the guide-side twin of AdminCheck.
func (h *AuthHandler) GuideCheck(w http.ResponseWriter, r *http.Request) {
	h.roleCheck(w, r, domain.RoleGuide, "guide")
}

func (h *AuthHandler) roleCheck(w http.ResponseWriter, r *http.Request, role domain.Role, field string) {
	email := chi.URLParam(r, "email")
	claims := mw.Claims(r)
	if claims == nil || !strings.EqualFold(email, claims.Email) {
		response.Forbidden(w, "forbidden access")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), email)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to look up user role", "error", err)
		response.InternalError(w, "failed to check role")
		return
	}

	has := user != nil && user.Role == role
	response.JSON(w, http.StatusOK, map[string]bool{field: has})
}
