package service

import (
	"context"
	"regexp"
	"testing"

	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNGOService(t *testing.T) (NGOService, sqlmock.Sqlmock) {
	t.Helper()
	gormDB, mock := newMockDB(t)
	svc := NewNGOService(
		repository.NewNGORepository(gormDB),
		repository.NewProfileRepository(gormDB),
		repository.NewTransactionManager(gormDB),
		fakeNotifier{},
	)
	return svc, mock
}

func ngoRows(id, userID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "name", "email", "verified"}).
		AddRow(id, userID, "Seva Trust", "contact@sevatrust.in", true)
}

// Deleting an NGO removes its login identity in the same transaction; the FK
// cascade takes the ngo row with the profile.
func TestDeleteNGORemovesOwningProfile(t *testing.T) {
	svc, mock := newNGOService(t)
	ngoID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ngos" WHERE id = $1`)).
		WithArgs(ngoID, 1).
		WillReturnRows(ngoRows(ngoID, userID))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "profiles" WHERE user_id = $1`)).
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.Delete(context.Background(), ngoID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNGOUnknownID(t *testing.T) {
	svc, mock := newNGOService(t)
	ngoID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ngos" WHERE id = $1`)).
		WithArgs(ngoID, 1).
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), ngoID)

	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
