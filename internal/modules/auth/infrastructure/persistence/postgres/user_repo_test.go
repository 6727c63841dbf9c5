package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celebnet/backend/internal/modules/auth/domain"
	"github.com/celebnet/backend/internal/modules/auth/infrastructure/persistence/postgres"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(sqlDB, "sqlmock"), mock, func() { _ = sqlDB.Close() }
}

var userColumns = []string{"id", "username", "password_hash", "created_at", "updated_at"}

func TestPgUserRepository_Create(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	u := &domain.User{ID: uuid.New(), Username: "alice", PasswordHash: "hash"}
	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.ID, "alice", "hash", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Create(ctx, u))
	assert.False(t, u.CreatedAt.IsZero())

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})
	assert.ErrorIs(t, repo.Create(ctx, u), domain.ErrUserAlreadyExists)

	mock.ExpectExec("INSERT INTO users").WillReturnError(assert.AnError)
	err := repo.Create(ctx, u)
	assert.ErrorIs(t, err, assert.AnError)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgUserRepository_GetByUsername(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := postgres.NewUserRepository(db)
	ctx := context.Background()
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM users WHERE username = \$1`).WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(id, "alice", "hash", now, now))
	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	mock.ExpectQuery(`SELECT .* FROM users WHERE username = \$1`).WithArgs("Alice").
		WillReturnError(sql.ErrNoRows)
	got, err = repo.GetByUsername(ctx, "Alice")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Nil(t, got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgUserRepository_GetByID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := postgres.NewUserRepository(db)
	ctx := context.Background()
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).WithArgs(id).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(id, "alice", "hash", now, now))
	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	missing := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).WithArgs(missing).WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByID(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	broken := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).WithArgs(broken).WillReturnError(assert.AnError)
	_, err = repo.GetByID(ctx, broken)
	assert.ErrorIs(t, err, assert.AnError)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgUserRepository_GetCelebrityLink(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := postgres.NewUserRepository(db)
	ctx := context.Background()
	userID, celebID := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT id, name FROM celebrities WHERE user_id = \$1`).WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(celebID, "Adele"))
	link, err := repo.GetCelebrityLink(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, celebID, link.CelebrityID)
	assert.Equal(t, "Adele", link.Name)

	fan := uuid.New()
	mock.ExpectQuery(`SELECT id, name FROM celebrities WHERE user_id = \$1`).WithArgs(fan).WillReturnError(sql.ErrNoRows)
	link, err = repo.GetCelebrityLink(ctx, fan)
	assert.NoError(t, err)
	assert.Nil(t, link)

	mock.ExpectQuery(`SELECT id, name FROM celebrities WHERE user_id = \$1`).WithArgs(fan).WillReturnError(assert.AnError)
	_, err = repo.GetCelebrityLink(ctx, fan)
	assert.ErrorIs(t, err, assert.AnError)

	require.NoError(t, mock.ExpectationsWereMet())
}
