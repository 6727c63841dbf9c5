package auth

import (
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/celebnet/backend/internal/modules/auth/application"
	"github.com/celebnet/backend/internal/modules/auth/infrastructure/jwt"
	"github.com/celebnet/backend/internal/modules/auth/infrastructure/persistence/postgres"
	auth_http "github.com/celebnet/backend/internal/modules/auth/interfaces/http"
)

// Module represents the Auth module
type Module struct {
	service *application.AuthService
	tokens  *jwt.Provider
	handler *auth_http.AuthHandler
}

func NewModule(db *sqlx.DB, jwtSecret string, jwtExpiry time.Duration, logger *slog.Logger) *Module {
	repository := postgres.NewUserRepository(db)
	tokens := jwt.NewProvider(jwtSecret, jwtExpiry)
	service := application.NewAuthService(repository, tokens, logger)

	return &Module{
		service: service,
		tokens:  tokens,
		handler: auth_http.NewAuthHandler(service, logger),
	}
}

// Service is also the identity validator used by the auth middleware.
func (m *Module) Service() *application.AuthService {
	return m.service
}

func (m *Module) Tokens() *jwt.Provider {
	return m.tokens
}

func (m *Module) HTTPHandler() *auth_http.AuthHandler {
	return m.handler
}
