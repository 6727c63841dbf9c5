package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	celebrity "github.com/celebnet/backend/internal/modules/celebrity/domain"
)

// Follow is a fan -> celebrity edge. The pair is unique.
type Follow struct {
	UserID      uuid.UUID `db:"user_id"`
	CelebrityID uuid.UUID `db:"celebrity_id"`
	CreatedAt   time.Time `db:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, f *Follow) error
	Delete(ctx context.Context, userID, celebrityID uuid.UUID) error
	Exists(ctx context.Context, userID, celebrityID uuid.UUID) (bool, error)
	// ListCelebrities returns the followed profiles. Edges whose profile no
	// longer exists are skipped.
	ListCelebrities(ctx context.Context, userID uuid.UUID) ([]celebrity.Celebrity, error)
}
