package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/celebnet/backend/internal/shared/identity"
)

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// CelebrityLink is the celebrity profile owned by a user, if any.
type CelebrityLink struct {
	CelebrityID uuid.UUID `db:"id"`
	Name        string    `db:"name"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	// GetCelebrityLink returns (nil, nil) when the user owns no profile.
	GetCelebrityLink(ctx context.Context, userID uuid.UUID) (*CelebrityLink, error)
}

// DeriveIdentity computes the token payload for a user. The role is
// celebrity exactly when a link exists.
func DeriveIdentity(user *User, link *CelebrityLink) identity.Identity {
	id := identity.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     identity.RoleFan,
	}
	if link != nil {
		celebrityID := link.CelebrityID
		name := link.Name
		id.Role = identity.RoleCelebrity
		id.CelebrityID = &celebrityID
		id.CelebrityName = &name
	}
	return id
}
