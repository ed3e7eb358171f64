package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/consumer-favorites/internal/consumer/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

func TestFindByEmail(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewGormConsumerRepository(gdb)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
		AddRow(id.String(), "Ana", "ana@example.com", time.Now())
	mock.ExpectQuery(`SELECT \* FROM "consumers" WHERE email =`).
		WithArgs("ana@example.com", 1).
		WillReturnRows(rows)

	consumer, err := repo.FindByEmail("ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, consumer)
	assert.Equal(t, id, consumer.ID)
	assert.Equal(t, "Ana", consumer.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmailAbsentIsNil(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewGormConsumerRepository(gdb)

	mock.ExpectQuery(`SELECT \* FROM "consumers" WHERE email =`).
		WithArgs("nobody@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}))

	consumer, err := repo.FindByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, consumer, "an absent consumer is nil, not an error")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDAbsentIsNil(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewGormConsumerRepository(gdb)

	mock.ExpectQuery(`SELECT \* FROM "consumers" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}))

	consumer, err := repo.FindByID(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, consumer)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewGormConsumerRepository(gdb)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "consumers"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 42, count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("some other failure")))
	assert.False(t, isUniqueViolation(gorm.ErrRecordNotFound))
}

func TestCreateTranslatesUniqueViolation(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewGormConsumerRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "consumers"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_consumers_email"})
	mock.ExpectRollback()

	err := repo.Create(&domain.Consumer{Name: "Ana", Email: "ana@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyRegistered)

	assert.NoError(t, mock.ExpectationsWereMet())
}
