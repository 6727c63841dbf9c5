package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/celebnet/backend/internal/shared/identity"
)

var ErrInvalidToken = errors.New("invalid token")

// CustomClaims mirrors identity.Identity on the wire.
type CustomClaims struct {
	UserID        uuid.UUID     `json:"userId"`
	Username      string        `json:"username"`
	Role          identity.Role `json:"role"`
	CelebrityID   *uuid.UUID    `json:"celebrityId,omitempty"`
	CelebrityName *string       `json:"celebrityName,omitempty"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 access tokens.
type Provider struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewProvider(secret string, expiry time.Duration) *Provider {
	return &Provider{secret: []byte(secret), expiry: expiry, now: time.Now}
}

func (p *Provider) Issue(id identity.Identity) (string, error) {
	now := p.now()
	claims := CustomClaims{
		UserID:        id.UserID,
		Username:      id.Username,
		Role:          id.Role,
		CelebrityID:   id.CelebrityID,
		CelebrityName: id.CelebrityName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify checks signature, algorithm and expiry and returns the embedded identity.
// All failures wrap ErrInvalidToken.
func (p *Provider) Verify(tokenStr string) (identity.Identity, error) {
	claims := &CustomClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return identity.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == uuid.Nil || !claims.Role.Valid() {
		return identity.Identity{}, fmt.Errorf("%w: incomplete claims", ErrInvalidToken)
	}

	return identity.Identity{
		UserID:        claims.UserID,
		Username:      claims.Username,
		Role:          claims.Role,
		CelebrityID:   claims.CelebrityID,
		CelebrityName: claims.CelebrityName,
	}, nil
}
