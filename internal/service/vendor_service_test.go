package service

import (
	"context"
	"regexp"
	"testing"

	"backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVendorService(t *testing.T) (VendorService, sqlmock.Sqlmock) {
	t.Helper()
	gormDB, mock := newMockDB(t)
	svc := NewVendorService(
		repository.NewVendorRepository(gormDB),
		repository.NewProfileRepository(gormDB),
		repository.NewTransactionManager(gormDB),
		fakeNotifier{},
	)
	return svc, mock
}

// Deleting a vendor removes its login identity in the same transaction; the
// FK cascade takes the vendor row with the profile.
func TestDeleteVendorRemovesOwningProfile(t *testing.T) {
	svc, mock := newVendorService(t)
	vendorID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "vendors" WHERE id = $1`)).
		WithArgs(vendorID, 1).
		WillReturnRows(vendorRows(vendorID, userID))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "profiles" WHERE user_id = $1`)).
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.Delete(context.Background(), vendorID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
