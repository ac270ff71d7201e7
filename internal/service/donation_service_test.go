package service

import (
	"context"
	"regexp"
	"testing"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDonationService(t *testing.T) (DonationService, sqlmock.Sqlmock) {
	t.Helper()
	gormDB, mock := newMockDB(t)
	svc := NewDonationService(
		repository.NewDonationRepository(gormDB),
		repository.NewPackageRepository(gormDB),
		repository.NewTransactionRepository(gormDB),
		repository.NewTransactionManager(gormDB),
	)
	return svc, mock
}

func donationRows(id, packageID uuid.UUID, quantity int, paymentStatus string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "ngo_id", "package_id", "quantity", "payment_status", "invoice_number",
	}).AddRow(id, uuid.New(), uuid.New(), packageID, quantity, paymentStatus, "DON-20260827-ABCDEF01")
}

func TestCreateDonationRejectsBadPackageID(t *testing.T) {
	svc := NewDonationService(nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), uuid.New(),
		CreateDonationRequest{PackageID: "not-a-uuid", Quantity: 1})

	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreateDonationRejectsUnknownPaymentStatus(t *testing.T) {
	svc := NewDonationService(nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), uuid.New(), CreateDonationRequest{
		PackageID:     uuid.New().String(),
		Quantity:      1,
		PaymentStatus: "authorized",
	})

	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreateDonationRejectsInactivePackage(t *testing.T) {
	svc, mock := newDonationService(t)
	packageID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "packages" WHERE id = $1`)).
		WithArgs(packageID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "target_quantity", "current_quantity"}).
			AddRow(packageID, model.PackageInactive, 100, 0))

	_, err := svc.Create(context.Background(), uuid.New(), CreateDonationRequest{
		PackageID: packageID.String(),
		Quantity:  2,
	})

	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDonationLeavingCompletedReturnsQuantity(t *testing.T) {
	svc, mock := newDonationService(t)
	donationID := uuid.New()
	packageID := uuid.New()
	refunded := model.PaymentRefunded

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "donations" WHERE id = $1`)).
		WithArgs(donationID, 1).
		WillReturnRows(donationRows(donationID, packageID, 3, model.PaymentCompleted))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "donations" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "packages" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	donation, err := svc.Update(context.Background(), donationID,
		UpdateDonationRequest{PaymentStatus: &refunded})

	require.NoError(t, err)
	assert.Equal(t, model.PaymentRefunded, donation.PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDonationBecomingCompletedOpensTransaction(t *testing.T) {
	svc, mock := newDonationService(t)
	donationID := uuid.New()
	packageID := uuid.New()
	completed := model.PaymentCompleted

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "donations" WHERE id = $1`)).
		WithArgs(donationID, 1).
		WillReturnRows(donationRows(donationID, packageID, 3, model.PaymentPending))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "donations" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "packages" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// No fulfillment transaction exists for this donation yet.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "transactions" WHERE donation_id = $1`)).
		WithArgs(donationID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "transactions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	donation, err := svc.Update(context.Background(), donationID,
		UpdateDonationRequest{PaymentStatus: &completed})

	require.NoError(t, err)
	assert.Equal(t, model.PaymentCompleted, donation.PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCompletedDonationReturnsQuantity(t *testing.T) {
	svc, mock := newDonationService(t)
	donationID := uuid.New()
	packageID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "donations" WHERE id = $1`)).
		WithArgs(donationID, 1).
		WillReturnRows(donationRows(donationID, packageID, 5, model.PaymentCompleted))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "packages" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "donations"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.Delete(context.Background(), donationID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDonationScopedToOwner(t *testing.T) {
	svc, mock := newDonationService(t)
	donationID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "donations" WHERE id = $1`)).
		WithArgs(donationID, 1).
		WillReturnRows(donationRows(donationID, uuid.New(), 1, model.PaymentPending))

	_, err := svc.GetByID(context.Background(), uuid.New(), false, donationID)

	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}
