package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/celebnet/backend/internal/modules/auth/domain"
	"github.com/celebnet/backend/internal/shared/infrastructure/database"
)

const usernameConstraint = "users_username_key"

type PgUserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *PgUserRepository {
	return &PgUserRepository{db: db}
}

// Create implements domain.UserRepository
func (r *PgUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, username, password_hash, created_at, updated_at)
		VALUES (:id, :username, :password_hash, :created_at, :updated_at)`

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}

	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		if database.IsViolation(err, database.UniqueViolation, usernameConstraint) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// GetByUsername implements domain.UserRepository. Usernames match case-sensitively.
func (r *PgUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user := &domain.User{}
	query := `SELECT id, username, password_hash, created_at, updated_at FROM users WHERE username = $1`

	err := r.db.GetContext(ctx, user, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID implements domain.UserRepository
func (r *PgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user := &domain.User{}
	query := `SELECT id, username, password_hash, created_at, updated_at FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetCelebrityLink implements domain.UserRepository
func (r *PgUserRepository) GetCelebrityLink(ctx context.Context, userID uuid.UUID) (*domain.CelebrityLink, error) {
	link := &domain.CelebrityLink{}
	query := `SELECT id, name FROM celebrities WHERE user_id = $1`

	err := r.db.GetContext(ctx, link, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return link, nil
}
