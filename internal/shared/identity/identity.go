// Package identity describes the authenticated caller as carried in access tokens.
package identity

import (
	"context"

	"github.com/google/uuid"
)

type Role string

const (
	RoleFan       Role = "fan"
	RoleCelebrity Role = "celebrity"
)

func (r Role) Valid() bool {
	return r == RoleFan || r == RoleCelebrity
}

// Identity is the token payload. It is recomputed at signin and never stored,
// so a role change only takes effect on the next signin.
type Identity struct {
	UserID        uuid.UUID  `json:"userId"`
	Username      string     `json:"username"`
	Role          Role       `json:"role"`
	CelebrityID   *uuid.UUID `json:"celebrityId,omitempty"`
	CelebrityName *string    `json:"celebrityName,omitempty"`
}

func (i Identity) IsFan() bool {
	return i.Role == RoleFan
}

type contextKey struct{}

// WithContext attaches an authenticated identity to ctx.
func WithContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity attached by the auth middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
