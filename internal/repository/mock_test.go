package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"microblog/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock
}

func TestIsUniqueConstraintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"pg unique", &pgconn.PgError{Code: "23505"}, true},
		{"pg wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"pg fk violation", &pgconn.PgError{Code: "23503", Message: "duplicate key value"}, false},
		{"sqlite", errors.New("UNIQUE constraint failed: likes.user_id, likes.tweet_id"), true},
		{"other", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueConstraintError(tt.err))
		})
	}
}

func TestIsForeignKeyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"pg fk", &pgconn.PgError{Code: "23503"}, true},
		{"pg wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), true},
		{"pg unique", &pgconn.PgError{Code: "23505", Message: "foreign key constraint failed"}, false},
		{"sqlite", errors.New("FOREIGN KEY constraint failed"), true},
		{"other", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isForeignKeyError(tt.err))
		})
	}
}

func TestFollowRepository_CreateMapsUniqueViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "follows"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint \"follows_pkey\""})

	err := repo.Create(context.Background(), 1, 2)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeDuplicate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_CreateMapsUniqueViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "likes"`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), 1, 2)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeDuplicate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_CreateMapsForeignKeyViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "likes"`)).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "insert or update on table \"likes\" violates foreign key constraint"})

	err := repo.Create(context.Background(), 1, 2)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
	assert.Equal(t, "Tweet with ID 2 not found", err.(*models.AppError).Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_CreateMapsForeignKeyViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "follows"`)).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.Create(context.Background(), 1, 2)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTweetRepository_ExistsCountsWithoutPreloads(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTweetRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "tweets" WHERE id = $1`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	ok, err := repo.Exists(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_CreateOtherErrorIsInternal(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "likes"`)).
		WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), 1, 2)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_FolloweeIDs(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "followee_id" FROM "follows" WHERE follower_id = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"followee_id"}).AddRow(2).AddRow(3))

	ids, err := repo.FolloweeIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 3}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByIDAbsentReturnsNil(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1 ORDER BY "users"."id" LIMIT $2`)).
		WithArgs(99, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))

	user, err := repo.GetByID(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}
