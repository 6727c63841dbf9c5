package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/celebnet/backend/internal/shared/identity"
	"github.com/celebnet/backend/internal/shared/utils"
)

// TokenVerifier checks a bearer token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (identity.Identity, error)
}

// IdentityValidator confirms the token subject still exists.
type IdentityValidator interface {
	IdentityExists(ctx context.Context, userID uuid.UUID) (bool, error)
}

type AuthMiddleware struct {
	tokens TokenVerifier
	users  IdentityValidator
	logger *slog.Logger
}

func NewAuthMiddleware(tokens TokenVerifier, users IdentityValidator, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{tokens: tokens, users: users, logger: logger}
}

// RequireAuth verifies the Authorization bearer token, checks that its user
// still exists and attaches the identity to the request context. Any failure
// is 401, except a failing store which is 500.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			utils.WriteError(w, http.StatusUnauthorized, "missing or invalid authorization")
			return
		}

		id, err := m.tokens.Verify(token)
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		exists, err := m.users.IdentityExists(r.Context(), id.UserID)
		if err != nil {
			m.logger.ErrorContext(r.Context(), "identity lookup failed", "user_id", id.UserID, "error", err)
			utils.WriteError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if !exists {
			utils.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		annotateUser(r.Context(), id.UserID.String())
		next.ServeHTTP(w, r.WithContext(identity.WithContext(r.Context(), id)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
