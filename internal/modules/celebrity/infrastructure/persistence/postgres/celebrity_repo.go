package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/celebnet/backend/internal/modules/celebrity/domain"
	"github.com/celebnet/backend/internal/shared/infrastructure/database"
)

// Column list shared by every read. user_id is owned by account linking and
// never selected here.
const celebrityColumns = `id, name, category, country, description, profile_image_url,
	instagram_handle, youtube_channel, spotify_id, imdb_id, fanbase_count,
	sample_setlist_or_keynote_topics, created_at, updated_at`

const nameConstraint = "celebrities_name_key"

type PgCelebrityRepository struct {
	db *sqlx.DB
}

func NewCelebrityRepository(db *sqlx.DB) *PgCelebrityRepository {
	return &PgCelebrityRepository{db: db}
}

func (r *PgCelebrityRepository) Create(ctx context.Context, c *domain.Celebrity) error {
	query := `INSERT INTO celebrities (
			id, name, category, country, description, profile_image_url,
			instagram_handle, youtube_channel, spotify_id, imdb_id, fanbase_count,
			sample_setlist_or_keynote_topics, created_at, updated_at
		) VALUES (
			:id, :name, :category, :country, :description, :profile_image_url,
			:instagram_handle, :youtube_channel, :spotify_id, :imdb_id, :fanbase_count,
			:sample_setlist_or_keynote_topics, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return translate(err)
	}
	return nil
}

func (r *PgCelebrityRepository) List(ctx context.Context) ([]domain.Celebrity, error) {
	out := []domain.Celebrity{}
	query := `SELECT ` + celebrityColumns + ` FROM celebrities ORDER BY name ASC`
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Normalize()
	}
	return out, nil
}

func (r *PgCelebrityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Celebrity, error) {
	return r.getOne(ctx, `SELECT `+celebrityColumns+` FROM celebrities WHERE id = $1`, id)
}

func (r *PgCelebrityRepository) GetByName(ctx context.Context, name string) (*domain.Celebrity, error) {
	return r.getOne(ctx, `SELECT `+celebrityColumns+` FROM celebrities WHERE name = $1`, name)
}

// Update applies patch in one statement and returns the stored row.
func (r *PgCelebrityRepository) Update(ctx context.Context, id uuid.UUID, patch domain.Patch) (*domain.Celebrity, error) {
	setClauses := []string{}
	args := []any{}
	set := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Category != nil {
		set("category", pq.StringArray(*patch.Category))
	}
	if patch.Country != nil {
		set("country", *patch.Country)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.ProfileImageURL != nil {
		set("profile_image_url", *patch.ProfileImageURL)
	}
	if patch.InstagramHandle != nil {
		set("instagram_handle", *patch.InstagramHandle)
	}
	if patch.YoutubeChannel != nil {
		set("youtube_channel", *patch.YoutubeChannel)
	}
	if patch.SpotifyID != nil {
		set("spotify_id", *patch.SpotifyID)
	}
	if patch.IMDbID != nil {
		set("imdb_id", *patch.IMDbID)
	}
	if patch.FanbaseCount != nil {
		set("fanbase_count", *patch.FanbaseCount)
	}
	if patch.Topics != nil {
		set("sample_setlist_or_keynote_topics", pq.StringArray(*patch.Topics))
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	set("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf("UPDATE celebrities SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), len(args), celebrityColumns)

	c := &domain.Celebrity{}
	if err := r.db.GetContext(ctx, c, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCelebrityNotFound
		}
		return nil, translate(err)
	}
	c.Normalize()
	return c, nil
}

func (r *PgCelebrityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM celebrities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrCelebrityNotFound
	}
	return nil
}

// FindByID implements domain.CelebrityFinder
func (r *PgCelebrityRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Celebrity, error) {
	return r.GetByID(ctx, id)
}

// Exists implements domain.CelebrityFinder
func (r *PgCelebrityRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM celebrities WHERE id = $1)`, id)
	return exists, err
}

func (r *PgCelebrityRepository) getOne(ctx context.Context, query string, arg any) (*domain.Celebrity, error) {
	c := &domain.Celebrity{}
	err := r.db.GetContext(ctx, c, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCelebrityNotFound
	}
	if err != nil {
		return nil, err
	}
	c.Normalize()
	return c, nil
}

func translate(err error) error {
	var cv *database.ConstraintViolation
	if !errors.As(database.TranslateError(err), &cv) {
		return err
	}
	switch {
	case cv.Kind == database.UniqueViolation && cv.Constraint == nameConstraint:
		return domain.ErrCelebrityNameTaken
	case cv.Kind == database.CheckViolation, cv.Kind == database.NotNullViolation:
		return fmt.Errorf("%w: %s", domain.ErrInvalidCelebrity, cv.Constraint)
	case cv.Kind == database.OutOfRange:
		return fmt.Errorf("%w: value out of range", domain.ErrInvalidCelebrity)
	}
	return cv
}
