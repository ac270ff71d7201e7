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

func newTransactionService(t *testing.T) (TransactionService, sqlmock.Sqlmock) {
	t.Helper()
	gormDB, mock := newMockDB(t)
	svc := NewTransactionService(
		repository.NewTransactionRepository(gormDB),
		repository.NewPackageRepository(gormDB),
		repository.NewVendorRepository(gormDB),
		repository.NewNGORepository(gormDB),
		repository.NewTransactionManager(gormDB),
		nil,
	)
	return svc, mock
}

func transactionRows(id, donorID uuid.UUID, status, previousStatus string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "donation_id", "package_id", "ngo_id", "donor_user_id", "status", "previous_status",
	}).AddRow(id, uuid.New(), uuid.New(), uuid.New(), donorID, status, previousStatus)
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	svc := NewTransactionService(nil, nil, nil, nil, nil, nil)

	_, err := svc.Transition(context.Background(), uuid.New(), model.RoleAdmin, uuid.New(),
		TransitionRequest{Status: "in_transit"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestTransitionRejectsVendorAssignmentTarget(t *testing.T) {
	svc := NewTransactionService(nil, nil, nil, nil, nil, nil)

	_, err := svc.Transition(context.Background(), uuid.New(), model.RoleAdmin, uuid.New(),
		TransitionRequest{Status: model.TxAssignedToVendor})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestTransitionRoleGate(t *testing.T) {
	svc := NewTransactionService(nil, nil, nil, nil, nil, nil)

	// Donors may only report issues.
	_, err := svc.Transition(context.Background(), uuid.New(), model.RoleUser, uuid.New(),
		TransitionRequest{Status: model.TxShipped})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	// Vendors may not cancel.
	_, err = svc.Transition(context.Background(), uuid.New(), model.RoleVendor, uuid.New(),
		TransitionRequest{Status: model.TxCancelled})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	// NGOs have no transition rights at all.
	_, err = svc.Transition(context.Background(), uuid.New(), model.RoleNGO, uuid.New(),
		TransitionRequest{Status: model.TxIssueReported})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestAssignVendorRejectsBadVendorID(t *testing.T) {
	svc := NewTransactionService(nil, nil, nil, nil, nil, nil)

	_, err := svc.AssignVendor(context.Background(), uuid.New(),
		AssignVendorRequest{VendorID: "not-a-uuid"})

	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestTransitionAdminCancel(t *testing.T) {
	svc, mock := newTransactionService(t)
	txID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "transactions" WHERE id = $1`)).
		WithArgs(txID, 1).
		WillReturnRows(transactionRows(txID, uuid.New(), model.TxVendorProcessing, ""))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "transactions" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := svc.Transition(context.Background(), uuid.New(), model.RoleAdmin, txID,
		TransitionRequest{Status: model.TxCancelled, AdminNotes: "duplicate order"})

	require.NoError(t, err)
	assert.Equal(t, model.TxCancelled, tx.Status)
	assert.Equal(t, "duplicate order", tx.AdminNotes)
	assert.Empty(t, tx.PreviousStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionDonorReportsIssue(t *testing.T) {
	svc, mock := newTransactionService(t)
	txID := uuid.New()
	donorID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "transactions" WHERE id = $1`)).
		WithArgs(txID, 1).
		WillReturnRows(transactionRows(txID, donorID, model.TxShipped, ""))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "transactions" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := svc.Transition(context.Background(), donorID, model.RoleUser, txID,
		TransitionRequest{Status: model.TxIssueReported})

	require.NoError(t, err)
	assert.Equal(t, model.TxIssueReported, tx.Status)
	assert.Equal(t, model.TxShipped, tx.PreviousStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionDonorCannotTouchForeignTransaction(t *testing.T) {
	svc, mock := newTransactionService(t)
	txID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "transactions" WHERE id = $1`)).
		WithArgs(txID, 1).
		WillReturnRows(transactionRows(txID, uuid.New(), model.TxShipped, ""))
	mock.ExpectRollback()

	_, err := svc.Transition(context.Background(), uuid.New(), model.RoleUser, txID,
		TransitionRequest{Status: model.TxIssueReported})

	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionRejectsSkippedStep(t *testing.T) {
	svc, mock := newTransactionService(t)
	txID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "transactions" WHERE id = $1`)).
		WithArgs(txID, 1).
		WillReturnRows(transactionRows(txID, uuid.New(), model.TxShipped, ""))
	mock.ExpectRollback()

	_, err := svc.Transition(context.Background(), uuid.New(), model.RoleAdmin, txID,
		TransitionRequest{Status: model.TxCompleted})

	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionShippedRequiresTrackingNumber(t *testing.T) {
	svc, mock := newTransactionService(t)
	txID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "transactions" WHERE id = $1`)).
		WithArgs(txID, 1).
		WillReturnRows(transactionRows(txID, uuid.New(), model.TxVendorProcessing, ""))
	mock.ExpectRollback()

	_, err := svc.Transition(context.Background(), uuid.New(), model.RoleAdmin, txID,
		TransitionRequest{Status: model.TxShipped})

	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionShippedStoresTrackingNumber(t *testing.T) {
	svc, mock := newTransactionService(t)
	txID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "transactions" WHERE id = $1`)).
		WithArgs(txID, 1).
		WillReturnRows(transactionRows(txID, uuid.New(), model.TxVendorProcessing, ""))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "transactions" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := svc.Transition(context.Background(), uuid.New(), model.RoleAdmin, txID,
		TransitionRequest{Status: model.TxShipped, TrackingNumber: "AWB-1138"})

	require.NoError(t, err)
	assert.Equal(t, model.TxShipped, tx.Status)
	assert.Equal(t, "AWB-1138", tx.TrackingNumber)
	require.NotNil(t, tx.ShippedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionVendorCompletesDelivered(t *testing.T) {
	svc, mock := newTransactionService(t)
	txID := uuid.New()
	packageID := uuid.New()
	vendorID := uuid.New()
	vendorUserID := uuid.New()

	rows := sqlmock.NewRows([]string{
		"id", "donation_id", "package_id", "ngo_id", "donor_user_id", "vendor_id", "status", "previous_status",
	}).AddRow(txID, uuid.New(), packageID, uuid.New(), uuid.New(), vendorID, model.TxDelivered, "")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "transactions" WHERE id = $1`)).
		WithArgs(txID, 1).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "vendors" WHERE user_id = $1`)).
		WithArgs(vendorUserID, 1).
		WillReturnRows(vendorRows(vendorID, vendorUserID))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "transactions" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "packages" WHERE id = $1`)).
		WithArgs(packageID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "target_quantity", "current_quantity"}).
			AddRow(packageID, model.PackageActive, 100, 40))
	mock.ExpectCommit()

	tx, err := svc.Transition(context.Background(), vendorUserID, model.RoleVendor, txID,
		TransitionRequest{Status: model.TxCompleted})

	require.NoError(t, err)
	assert.Equal(t, model.TxCompleted, tx.Status)
	require.NotNil(t, tx.CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionCompletedStampsMilestone(t *testing.T) {
	svc, mock := newTransactionService(t)
	txID := uuid.New()
	packageID := uuid.New()

	rows := sqlmock.NewRows([]string{
		"id", "donation_id", "package_id", "ngo_id", "donor_user_id", "status", "previous_status",
	}).AddRow(txID, uuid.New(), packageID, uuid.New(), uuid.New(), model.TxDelivered, "")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "transactions" WHERE id = $1`)).
		WithArgs(txID, 1).
		WillReturnRows(rows)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "transactions" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Target not reached yet, so the package stays active.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "packages" WHERE id = $1`)).
		WithArgs(packageID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "target_quantity", "current_quantity"}).
			AddRow(packageID, model.PackageActive, 100, 40))
	mock.ExpectCommit()

	tx, err := svc.Transition(context.Background(), uuid.New(), model.RoleAdmin, txID,
		TransitionRequest{Status: model.TxCompleted})

	require.NoError(t, err)
	require.NotNil(t, tx.CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestoreReturnsPreviousStatus(t *testing.T) {
	svc, mock := newTransactionService(t)
	txID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "transactions" WHERE id = $1`)).
		WithArgs(txID, 1).
		WillReturnRows(transactionRows(txID, uuid.New(), model.TxIssueReported, model.TxShipped))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "transactions" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := svc.Restore(context.Background(), txID)

	require.NoError(t, err)
	assert.Equal(t, model.TxShipped, tx.Status)
	assert.Empty(t, tx.PreviousStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestoreRequiresIssueReported(t *testing.T) {
	svc, mock := newTransactionService(t)
	txID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "transactions" WHERE id = $1`)).
		WithArgs(txID, 1).
		WillReturnRows(transactionRows(txID, uuid.New(), model.TxVendorProcessing, ""))
	mock.ExpectRollback()

	_, err := svc.Restore(context.Background(), txID)

	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}
