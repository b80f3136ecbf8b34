package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/emreacar/identity-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestUser() *models.User {
	token := "token-value"
	expires := time.Now().Add(24 * time.Hour)
	return &models.User{
		Name:           "Alice",
		Email:          "alice@x.com",
		PasswordHash:   "digest",
		Role:           models.RoleCustomer,
		Token:          &token,
		TokenExpiresAt: &expires,
	}
}

func newMockStore(t *testing.T) (*GormStore, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewGormStore(gdb), mock, db
}

func TestGormStore_FindByEmailNotFound(t *testing.T) {
	st, mock, db := newMockStore(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	_, err := st.FindByEmail(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_FindByValidToken(t *testing.T) {
	st, mock, db := newMockStore(t)
	defer db.Close()

	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE \(token = \$\d+ AND token_expires_at >= \$\d+\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "token"}).
			AddRow(id.String(), "Alice", "alice@x.com", "token-value"))

	user, err := st.FindByValidToken(context.Background(), "token-value", time.Now())
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_FindByValidTokenExpiredOrMissing(t *testing.T) {
	st, mock, db := newMockStore(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE \(token = \$\d+ AND token_expires_at >= \$\d+\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := st.FindByValidToken(context.Background(), "expired-or-used", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_ConsumeTokenClearsSlot(t *testing.T) {
	st, mock, db := newMockStore(t)
	defer db.Close()

	id := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE "users" SET .* WHERE \(token = \$\d+ AND token_expires_at >= \$\d+\).*RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role"}).
			AddRow(id.String(), "Alice", "alice@x.com", "digest", "customer"))
	mock.ExpectCommit()

	user, err := st.ConsumeToken(context.Background(), "some-token", now, map[string]any{
		"email_verified_at": now,
	})
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_ConsumeTokenNoMatch(t *testing.T) {
	st, mock, db := newMockStore(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE "users" SET .* WHERE \(token = \$\d+ AND token_expires_at >= \$\d+\).*RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	_, err := st.ConsumeToken(context.Background(), "expired-or-used", time.Now(), map[string]any{
		"email_verified_at": time.Now(),
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_InsertDuplicateEmail(t *testing.T) {
	st, mock, db := newMockStore(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "idx_users_email"})
	mock.ExpectRollback()

	user := newTestUser()
	err := st.Insert(context.Background(), user)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_UpdateNotFound(t *testing.T) {
	st, mock, db := newMockStore(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE "users" SET .* WHERE id = \$\d+.*RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	_, err := st.Update(context.Background(), uuid.New(), map[string]any{"name": "Alice"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
