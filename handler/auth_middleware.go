package handler

import (
	"context"
	"database/sql"
	"errors"
	"go-blog-api/repository"
	"go-blog-api/service"
	"net/http"
	"slices"
	"strings"
)

type contextKey string

const (
	UserIDKey   contextKey = "userID"
	UserRoleKey contextKey = "userRole"
)

// AuthMiddleware resolves the request identity from a bearer token. Three
// outcomes: no token (401 NEED_SESSION), invalid token or unresolvable
// identity (401 NOT_SESSION), or authenticated (identity in context).
// Verification and lookup failures never escape as a 500.
type AuthMiddleware struct {
	tokens   *service.TokenService
	userRepo repository.IUserRepository
}

func NewAuthMiddleware(tokens *service.TokenService, userRepo repository.IUserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, userRepo: userRepo}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "NEED_SESSION"})
			return
		}

		// The token is the last chunk of the header, with or without the
		// "Bearer" prefix.
		parts := strings.Split(authHeader, " ")
		tokenString := parts[len(parts)-1]

		claims, err := m.tokens.Verify(tokenString)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":   "NOT_SESSION",
				"message": err.Error(),
			})
			return
		}

		user, err := m.userRepo.GetByID(claims.UserID)
		if err != nil {
			message := err.Error()
			if errors.Is(err, sql.ErrNoRows) {
				message = "user no longer exists"
			}
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":   "NOT_SESSION",
				"message": message,
			})
			return
		}

		// Identity comes from the freshly loaded row, not the token payload,
		// so a role change takes effect on the next request.
		ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
		ctx = context.WithValue(ctx, UserRoleKey, user.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole restricts a route to an allow-list of roles. Membership is
// exact: no role implies another, so "admin" only passes where it is
// explicitly listed.
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(UserRoleKey).(string)
			if !ok {
				writeJSON(w, http.StatusForbidden, map[string]string{"error": "NOT_PERMISSION"})
				return
			}

			if !slices.Contains(allowedRoles, role) {
				writeJSON(w, http.StatusForbidden, map[string]string{"message": "Access denied: NOT_PERMISSIONS"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
