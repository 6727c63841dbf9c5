package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	celebrity "github.com/celebnet/backend/internal/modules/celebrity/domain"
	"github.com/celebnet/backend/internal/modules/follow/domain"
	"github.com/celebnet/backend/internal/shared/infrastructure/database"
)

const pkeyConstraint = "follows_pkey"

type PgFollowRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) *PgFollowRepository {
	return &PgFollowRepository{db: db}
}

// Create inserts the edge. A concurrent insert of the same pair loses on the
// primary key and gets ErrAlreadyFollowing.
func (r *PgFollowRepository) Create(ctx context.Context, f *domain.Follow) error {
	query := `INSERT INTO follows (user_id, celebrity_id, created_at) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, f.UserID, f.CelebrityID, f.CreatedAt)
	if err != nil {
		if database.IsViolation(err, database.UniqueViolation, pkeyConstraint) {
			return domain.ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

func (r *PgFollowRepository) Delete(ctx context.Context, userID, celebrityID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE user_id = $1 AND celebrity_id = $2`, userID, celebrityID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrFollowNotFound
	}
	return nil
}

func (r *PgFollowRepository) Exists(ctx context.Context, userID, celebrityID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM follows WHERE user_id = $1 AND celebrity_id = $2)`, userID, celebrityID)
	return exists, err
}

func (r *PgFollowRepository) ListCelebrities(ctx context.Context, userID uuid.UUID) ([]celebrity.Celebrity, error) {
	query := `
		SELECT c.id, c.name, c.category, c.country, c.description, c.profile_image_url,
			c.instagram_handle, c.youtube_channel, c.spotify_id, c.imdb_id, c.fanbase_count,
			c.sample_setlist_or_keynote_topics, c.created_at, c.updated_at
		FROM follows f
		JOIN celebrities c ON c.id = f.celebrity_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`

	list := []celebrity.Celebrity{}
	if err := r.db.SelectContext(ctx, &list, query, userID); err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Normalize()
	}
	return list, nil
}
