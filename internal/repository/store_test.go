package repository

import (
	"context"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/pkg/apperror"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestStore_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore[entity.Tag](db)
	id := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "active", "name"}).
		AddRow(id.String(), now, now, true, "cardio")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tags" WHERE "tags"."active" = $1 AND "tags"."id" = $2`)).
		WillReturnRows(rows)

	tag, err := store.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "cardio", tag.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore[entity.Tag](db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tags"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestStore_CreateDuplicateIsConflict(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore[entity.Tag](db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "tags"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := store.Create(context.Background(), &entity.Tag{Base: entity.NewBase(), Name: "cardio"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateDanglingReferenceIsInvalid(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore[entity.Tag](db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "tags"`)).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "insert or update violates foreign key constraint"})
	mock.ExpectRollback()

	err := store.Create(context.Background(), &entity.Tag{Base: entity.NewBase(), Name: "cardio"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeactivateMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore[entity.Tag](db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "tags" SET "active"=$1`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := store.Deactivate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestQuery_OwnerScopeWithoutOwnerMatchesNothing(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore[entity.HealthRecord](db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "health_records" WHERE .*1 = 0`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	items, total, err := store.List(context.Background(), Query{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off`, escapeLike("50%_off"))
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, Translate(nil))
	assert.ErrorIs(t, Translate(gorm.ErrRecordNotFound), apperror.ErrNotFound)
	assert.ErrorIs(t, Translate(gorm.ErrDuplicatedKey), apperror.ErrConflict)
	assert.ErrorIs(t, Translate(gorm.ErrForeignKeyViolated), apperror.ErrInvalidInput)
}
