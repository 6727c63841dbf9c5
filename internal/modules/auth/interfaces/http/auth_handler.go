package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/celebnet/backend/internal/modules/auth/application"
	"github.com/celebnet/backend/internal/modules/auth/domain"
	"github.com/celebnet/backend/internal/shared/utils"
)

// AuthService defines the interface for auth operations
type AuthService interface {
	SignUp(ctx context.Context, creds application.Credentials) (string, error)
	SignIn(ctx context.Context, creds application.Credentials) (string, error)
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type AuthHandler struct {
	service AuthService
	logger  *slog.Logger
}

func NewAuthHandler(service AuthService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{service: service, logger: logger}
}

// SignUp handles POST /auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var creds application.Credentials
	if err := utils.DecodeJSON(r, &creds); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.service.SignUp(r.Context(), creds)
	if err != nil {
		h.writeServiceError(w, r, "signup", err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, TokenResponse{AccessToken: token})
}

// SignIn handles POST /auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var creds application.Credentials
	if err := utils.DecodeJSON(r, &creds); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.service.SignIn(r.Context(), creds)
	if err != nil {
		h.writeServiceError(w, r, "signin", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, TokenResponse{AccessToken: token})
}

func (h *AuthHandler) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrPasswordTooLong):
		utils.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUserAlreadyExists):
		utils.WriteError(w, http.StatusConflict, "Username already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		utils.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
	default:
		h.logger.ErrorContext(r.Context(), "auth request failed", "op", op, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
