package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/roamstack/tourism-api/internal/domain"
	"github.com/roamstack/tourism-api/internal/http/response"
	"github.com/roamstack/tourism-api/internal/logger"
	"github.com/roamstack/tourism-api/internal/platform/auth"
	"github.com/roamstack/tourism-api/internal/repo/postgres"
)

type ctxKey string

const ctxClaims ctxKey = "claims"

// RequireAuth is the access verifier: it authenticates the bearer token and
// attaches its claims to the request context. It never grants permissions.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				response.Unauthorized(w, "unauthorized access")
				return
			}

			raw := strings.TrimPrefix(authz, "Bearer ")
			claims, err := auth.Parse(raw, secret)
			if err != nil {
				response.Unauthorized(w, "unauthorized access")
				return
			}

			ctx := context.WithValue(r.Context(), ctxClaims, claims)
			ctx = context.WithValue(ctx, logger.UserEmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Claims returns the verified claims attached by RequireAuth, or nil.
func Claims(r *http.Request) *auth.Claims {
	v := r.Context().Value(ctxClaims)
	if v == nil {
		return nil
	}
	return v.(*auth.Claims)
}

// RequireRole authorizes against the stored user record, not the token: the
// role in the database is the single source of truth. One store read per
// invocation.
func RequireRole(users postgres.UsersRepo, role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := Claims(r)
			if claims == nil {
				response.Unauthorized(w, "unauthorized access")
				return
			}

			user, err := users.FindByEmail(r.Context(), claims.Email)
			if err != nil {
				response.InternalError(w, "failed to verify role")
				return
			}
			if user == nil || user.Role != role {
				response.Forbidden(w, "forbidden access")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
