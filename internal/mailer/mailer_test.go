package mailer

import (
	"context"
	"errors"
	"testing"

	"backend/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// stubSettings serves a fixed settings row without a database.
type stubSettings struct {
	settings *model.ApplicationSettings
	err      error
}

func (s *stubSettings) Get(context.Context) (*model.ApplicationSettings, error) {
	return s.settings, s.err
}

func (s *stubSettings) Update(context.Context, *model.ApplicationSettings) error {
	return nil
}

func TestSendSkipsWhenSMTPNotConfigured(t *testing.T) {
	m := New(&stubSettings{settings: &model.ApplicationSettings{
		AppName:    model.DefaultAppName,
		AdminEmail: model.DefaultAdminEmail,
	}})

	ctx := context.Background()
	assert.False(t, m.LoginWelcome(ctx, "Asha", "asha@example.com", model.RoleUser))
	assert.False(t, m.ApprovalResult(ctx, "Hope Trust", "contact@hopetrust.org", model.RoleNGO, true, ""))
	assert.False(t, m.InvoiceSubmitted(ctx, "Sharma Supplies", "VINV-20260827-AB12CD34",
		decimal.NewFromInt(2500), "3d6f0f9e"))
}

func TestSendReportsFalseWhenSettingsUnreadable(t *testing.T) {
	m := New(&stubSettings{err: errors.New("connection refused")})

	assert.False(t, m.LoginWelcome(context.Background(), "Asha", "asha@example.com", model.RoleUser))
}

func TestAdminEmailFallsBackToDefault(t *testing.T) {
	m := New(&stubSettings{err: errors.New("connection refused")})
	assert.Equal(t, model.DefaultAdminEmail, m.adminEmail(context.Background()))

	m = New(&stubSettings{settings: &model.ApplicationSettings{AdminEmail: "ops@dogoodhub.org"}})
	assert.Equal(t, "ops@dogoodhub.org", m.adminEmail(context.Background()))
}

func TestRenderDetailsSkipsEmptyValues(t *testing.T) {
	out := renderDetails(map[string]string{"City": "Pune", "License number": ""})
	assert.Contains(t, out, "Pune")
	assert.NotContains(t, out, "License number")

	assert.Empty(t, renderDetails(nil))
}
