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

func newInvoiceService(t *testing.T) (VendorInvoiceService, sqlmock.Sqlmock) {
	t.Helper()
	gormDB, mock := newMockDB(t)
	svc := NewVendorInvoiceService(
		repository.NewVendorInvoiceRepository(gormDB),
		repository.NewTransactionRepository(gormDB),
		repository.NewVendorRepository(gormDB),
		repository.NewTransactionManager(gormDB),
		fakeNotifier{},
		nil,
	)
	return svc, mock
}

func invoiceRows(id, vendorID uuid.UUID, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "transaction_id", "vendor_id", "invoice_number", "invoice_url", "invoice_amount", "status",
	}).AddRow(id, uuid.New(), vendorID, "VINV-20260827-AB12CD34", "https://files.example.com/inv.pdf", "2500.00", status)
}

func vendorRows(id, userID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "company_name", "email", "verified"}).
		AddRow(id, userID, "Sharma Supplies", "billing@sharmasupplies.in", true)
}

func TestSubmitInvoiceRejectsNonPositiveAmount(t *testing.T) {
	svc := NewVendorInvoiceService(nil, nil, nil, nil, fakeNotifier{}, nil)

	for _, amount := range []string{"0", "-10", "abc"} {
		_, err := svc.Submit(context.Background(), uuid.New(), SubmitInvoiceRequest{
			TransactionID: uuid.New().String(),
			InvoiceURL:    "https://files.example.com/inv.pdf",
			InvoiceAmount: amount,
		})
		assert.ErrorIs(t, err, apperror.ErrValidation, "amount: %s", amount)
	}
}

func TestSubmitInvoiceRequiresDelivery(t *testing.T) {
	svc, mock := newInvoiceService(t)
	vendorID := uuid.New()
	vendorUserID := uuid.New()
	txID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "vendors" WHERE user_id = $1`)).
		WithArgs(vendorUserID, 1).
		WillReturnRows(vendorRows(vendorID, vendorUserID))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "transactions" WHERE id = $1`)).
		WithArgs(txID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "vendor_id", "status"}).
			AddRow(txID, vendorID, model.TxVendorProcessing))
	mock.ExpectRollback()

	_, err := svc.Submit(context.Background(), vendorUserID, SubmitInvoiceRequest{
		TransactionID: txID.String(),
		InvoiceURL:    "https://files.example.com/inv.pdf",
		InvoiceAmount: "2500.00",
	})

	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecideInvoiceApprovesPending(t *testing.T) {
	svc, mock := newInvoiceService(t)
	invoiceID := uuid.New()
	vendorID := uuid.New()
	adminID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "vendor_invoices" WHERE id = $1`)).
		WithArgs(invoiceID, 1).
		WillReturnRows(invoiceRows(invoiceID, vendorID, model.InvoicePending))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "vendor_invoices" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	// Vendor lookup for the decision email.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "vendors" WHERE id = $1`)).
		WithArgs(vendorID, 1).
		WillReturnRows(vendorRows(vendorID, uuid.New()))

	invoice, err := svc.Approve(context.Background(), adminID, invoiceID,
		InvoiceDecisionRequest{AdminNotes: "matches delivery note"})

	require.NoError(t, err)
	assert.Equal(t, model.InvoiceApproved, invoice.Status)
	require.NotNil(t, invoice.ApprovedBy)
	assert.Equal(t, adminID, *invoice.ApprovedBy)
	assert.NotNil(t, invoice.ApprovedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecideInvoiceRejectsSecondDecision(t *testing.T) {
	svc, mock := newInvoiceService(t)
	invoiceID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "vendor_invoices" WHERE id = $1`)).
		WithArgs(invoiceID, 1).
		WillReturnRows(invoiceRows(invoiceID, uuid.New(), model.InvoiceApproved))
	mock.ExpectRollback()

	_, err := svc.Reject(context.Background(), uuid.New(), invoiceID, InvoiceDecisionRequest{})

	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}
