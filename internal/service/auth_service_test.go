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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// fakeNotifier pretends every email was delivered.
type fakeNotifier struct{}

func (fakeNotifier) RegistrationApprovalRequest(context.Context, string, string, string, map[string]string) bool {
	return true
}
func (fakeNotifier) ApprovalResult(context.Context, string, string, string, bool, string) bool {
	return true
}
func (fakeNotifier) InvoiceSubmitted(context.Context, string, string, decimal.Decimal, string) bool {
	return true
}
func (fakeNotifier) InvoiceDecision(context.Context, string, string, string, decimal.Decimal, bool, string) bool {
	return true
}
func (fakeNotifier) LoginWelcome(context.Context, string, string, string) bool {
	return true
}

func newAuthService(t *testing.T) (AuthService, sqlmock.Sqlmock) {
	t.Helper()
	gormDB, mock := newMockDB(t)
	svc := NewAuthService(
		repository.NewProfileRepository(gormDB),
		repository.NewNGORepository(gormDB),
		repository.NewVendorRepository(gormDB),
		repository.NewTransactionManager(gormDB),
		fakeNotifier{},
	)
	return svc, mock
}

func profileRowsWithPassword(t *testing.T, email, password, role string) *sqlmock.Rows {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{
		"id", "user_id", "first_name", "last_name", "email", "password_hash", "role",
	}).AddRow(uuid.New(), uuid.New(), "Asha", "Verma", email, string(hashed), role)
}

// Unknown email and wrong password must yield the same error so login does
// not reveal which addresses are registered.
func TestLoginUniformError(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "profiles" WHERE email = $1`)).
		WithArgs("nobody@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, unknownErr := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever123",
	})
	require.Error(t, unknownErr)
	assert.ErrorIs(t, unknownErr, apperror.ErrUnauthorized)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "profiles" WHERE email = $1`)).
		WithArgs("asha@example.com", 1).
		WillReturnRows(profileRowsWithPassword(t, "asha@example.com", "correct-password", model.RoleUser))

	_, wrongErr := svc.Login(context.Background(), LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong-password",
	})
	require.Error(t, wrongErr)
	assert.ErrorIs(t, wrongErr, apperror.ErrUnauthorized)

	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginSuccess(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "profiles" WHERE email = $1`)).
		WithArgs("asha@example.com", 1).
		WillReturnRows(profileRowsWithPassword(t, "asha@example.com", "correct-password", model.RoleUser))

	token, err := svc.Login(context.Background(), LoginRequest{
		Email:    "asha@example.com",
		Password: "correct-password",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, 1800, token.ExpiresIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "profiles" WHERE email = $1`)).
		WithArgs("asha@example.com", 1).
		WillReturnRows(profileRowsWithPassword(t, "asha@example.com", "correct-password", model.RoleUser))

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "asha@example.com",
		Password:  "supersecret",
		FirstName: "Asha",
		LastName:  "Verma",
	})

	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two registrations can pass the email pre-check at the same time; the loser
// hits the unique index and must still see a conflict, not a bare DB error.
func TestRegisterMapsUniqueViolationToConflict(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "profiles" WHERE email = $1`)).
		WithArgs("asha@example.com", 1).
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "profiles"`)).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "asha@example.com",
		Password:  "supersecret",
		FirstName: "Asha",
		LastName:  "Verma",
	})

	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
