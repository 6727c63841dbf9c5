package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/celebnet/backend/internal/modules/auth/domain"
	"github.com/celebnet/backend/internal/shared/identity"
)

// PasswordHashCost is the bcrypt work factor for stored passwords.
const PasswordHashCost = 10

// MaxPasswordBytes is the longest input bcrypt will hash.
const MaxPasswordBytes = 72

// Credentials is the body of both signup and signin.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c Credentials) validate() error {
	if strings.TrimSpace(c.Username) == "" || c.Password == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

// TokenIssuer signs identities into access tokens.
type TokenIssuer interface {
	Issue(id identity.Identity) (string, error)
}

// AuthService provides authentication operations
type AuthService struct {
	repo     domain.UserRepository
	tokens   TokenIssuer
	hashCost int
	logger   *slog.Logger
}

func NewAuthService(repo domain.UserRepository, tokens TokenIssuer, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		repo:     repo,
		tokens:   tokens,
		hashCost: PasswordHashCost,
		logger:   logger.With("component", "auth"),
	}
}

// SignUp registers a fan account and returns its access token.
func (s *AuthService) SignUp(ctx context.Context, creds Credentials) (string, error) {
	if err := creds.validate(); err != nil {
		return "", err
	}
	if len(creds.Password) > MaxPasswordBytes {
		return "", domain.ErrPasswordTooLong
	}

	_, err := s.repo.GetByUsername(ctx, creds.Username)
	switch {
	case err == nil:
		return "", domain.ErrUserAlreadyExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return "", fmt.Errorf("lookup username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		Username:     creds.Username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// A concurrent signup that passed the pre-check lands here as ErrUserAlreadyExists.
	if err := s.repo.Create(ctx, user); err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "user signed up", "user_id", user.ID)
	return s.tokens.Issue(domain.DeriveIdentity(user, nil))
}

// SignIn verifies credentials and issues a token carrying the role derived
// from the user's celebrity link at this moment.
func (s *AuthService) SignIn(ctx context.Context, creds Credentials) (string, error) {
	if err := creds.validate(); err != nil {
		return "", err
	}

	user, err := s.repo.GetByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a comparison so unknown usernames cost the same as bad passwords.
			_ = bcrypt.CompareHashAndPassword(paddingHash(), []byte(creds.Password))
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	link, err := s.repo.GetCelebrityLink(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("load celebrity link: %w", err)
	}

	id := domain.DeriveIdentity(user, link)
	s.logger.InfoContext(ctx, "user signed in", "user_id", user.ID, "role", id.Role)
	return s.tokens.Issue(id)
}

// ValidateIdentity returns domain.ErrUserNotFound when the user behind a token is gone.
func (s *AuthService) ValidateIdentity(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// IdentityExists adapts ValidateIdentity for the auth middleware.
func (s *AuthService) IdentityExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	_, err := s.ValidateIdentity(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var paddingHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("celebnet-signin-padding"), PasswordHashCost)
	if err != nil {
		return nil
	}
	return h
})
