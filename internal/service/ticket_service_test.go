package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTicketService(t *testing.T) (TicketService, sqlmock.Sqlmock) {
	t.Helper()
	gormDB, mock := newMockDB(t)
	svc := NewTicketService(
		repository.NewTicketRepository(gormDB),
		repository.NewTransactionRepository(gormDB),
		repository.NewVendorRepository(gormDB),
	)
	return svc, mock
}

func ticketRows(id, createdBy uuid.UUID, status string, resolvedAt *time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "transaction_id", "created_by_user_id", "title", "status", "priority", "category", "resolved_at",
	}).AddRow(id, uuid.New(), createdBy, "wrong item delivered", status, model.PriorityMedium, "wrong_delivery", resolvedAt)
}

func TestCreateTicketRejectsUnknownCategory(t *testing.T) {
	svc := NewTicketService(nil, nil, nil)

	_, err := svc.Create(context.Background(), uuid.New(), model.RoleUser, CreateTicketRequest{
		TransactionID: uuid.New().String(),
		Title:         "damaged goods",
		Description:   "box arrived crushed",
		Category:      "misc",
	})

	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreateTicketDonorMustOwnTransaction(t *testing.T) {
	svc, mock := newTicketService(t)
	txID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "transactions" WHERE id = $1`)).
		WithArgs(txID, 1).
		WillReturnRows(transactionRows(txID, uuid.New(), model.TxShipped, ""))

	_, err := svc.Create(context.Background(), uuid.New(), model.RoleUser, CreateTicketRequest{
		TransactionID: txID.String(),
		Title:         "late delivery",
		Description:   "no movement for two weeks",
		Category:      "delivery_delay",
	})

	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTicketResolveStampsResolvedAt(t *testing.T) {
	svc, mock := newTicketService(t)
	ticketID := uuid.New()
	resolved := model.TicketResolved

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tickets" WHERE id = $1`)).
		WithArgs(ticketID, 1).
		WillReturnRows(ticketRows(ticketID, uuid.New(), model.TicketOpen, nil))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "tickets" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ticket, err := svc.Update(context.Background(), uuid.New(), true, ticketID,
		UpdateTicketRequest{Status: &resolved})

	require.NoError(t, err)
	assert.Equal(t, model.TicketResolved, ticket.Status)
	require.NotNil(t, ticket.ResolvedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTicketReopenClearsResolvedAt(t *testing.T) {
	svc, mock := newTicketService(t)
	ticketID := uuid.New()
	reopened := model.TicketOpen
	settledAt := time.Now().Add(-time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tickets" WHERE id = $1`)).
		WithArgs(ticketID, 1).
		WillReturnRows(ticketRows(ticketID, uuid.New(), model.TicketResolved, &settledAt))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "tickets" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ticket, err := svc.Update(context.Background(), uuid.New(), true, ticketID,
		UpdateTicketRequest{Status: &reopened})

	require.NoError(t, err)
	assert.Equal(t, model.TicketOpen, ticket.Status)
	assert.Nil(t, ticket.ResolvedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTicketTriageFieldsAdminOnly(t *testing.T) {
	svc, mock := newTicketService(t)
	ticketID := uuid.New()
	callerID := uuid.New()
	notes := "replacement shipped"

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tickets" WHERE id = $1`)).
		WithArgs(ticketID, 1).
		WillReturnRows(ticketRows(ticketID, callerID, model.TicketOpen, nil))

	_, err := svc.Update(context.Background(), callerID, false, ticketID,
		UpdateTicketRequest{ResolutionNotes: &notes})

	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTicketScopedToCreator(t *testing.T) {
	svc, mock := newTicketService(t)
	ticketID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tickets" WHERE id = $1`)).
		WithArgs(ticketID, 1).
		WillReturnRows(ticketRows(ticketID, uuid.New(), model.TicketOpen, nil))

	_, err := svc.GetByID(context.Background(), uuid.New(), false, ticketID)

	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}
