package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/launchpair/launchpair/internal/httputil"
	"github.com/launchpair/launchpair/internal/user"
)

// UserResolver checks that a token's subject still resolves to a live account.
type UserResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Middleware handles authentication for protected routes
type Middleware struct {
	tokenService TokenService
	users        UserResolver
}

func NewMiddleware(tokenService TokenService, users UserResolver) *Middleware {
	return &Middleware{tokenService: tokenService, users: users}
}

// RequireAuth validates the bearer token and binds the caller's id to the
// request context. A token whose user no longer exists is rejected.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.RespondErrorWithCode(w, "invalid authorization header format", httputil.CodeInvalidAuthHeader, http.StatusUnauthorized)
			return
		}
		token := parts[1]

		claims, err := m.tokenService.VerifyToken(token)
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				httputil.RespondErrorWithCode(w, "token has expired", httputil.CodeTokenExpired, http.StatusUnauthorized)
				return
			}
			httputil.RespondErrorWithCode(w, "invalid token", httputil.CodeInvalidToken, http.StatusUnauthorized)
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			httputil.RespondErrorWithCode(w, "invalid user ID in token", httputil.CodeInvalidTokenUserID, http.StatusUnauthorized)
			return
		}

		// A valid token can outlive its account
		if _, err := m.users.GetByID(r.Context(), userID); err != nil {
			if errors.Is(err, user.ErrNotFound) {
				httputil.RespondErrorWithCode(w, "invalid token", httputil.CodeInvalidToken, http.StatusUnauthorized)
				return
			}
			httputil.RespondErrorWithCode(w, "failed to authenticate", httputil.CodeInternalError, http.StatusInternalServerError)
			return
		}

		ctx := httputil.WithUserID(r.Context(), userID, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
