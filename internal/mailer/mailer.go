package mailer

import (
	"context"
	"fmt"
	"log"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/shopspring/decimal"
	gomail "github.com/wneessen/go-mail"
)

// Notifier is the best-effort email side channel. Every method reports
// whether delivery happened and never returns an error: dispatch failure must
// not abort the operation that triggered it. Dispatch always runs after the
// triggering write has committed.
type Notifier interface {
	RegistrationApprovalRequest(ctx context.Context, applicantName, applicantEmail, role string, details map[string]string) bool
	ApprovalResult(ctx context.Context, name, email, role string, approved bool, notes string) bool
	InvoiceSubmitted(ctx context.Context, vendorName, invoiceNumber string, amount decimal.Decimal, transactionID string) bool
	InvoiceDecision(ctx context.Context, vendorEmail, vendorName, invoiceNumber string, amount decimal.Decimal, approved bool, adminNotes string) bool
	LoginWelcome(ctx context.Context, name, email, role string) bool
}

// Mailer sends over SMTP using the ApplicationSettings row, re-read on every
// send so an admin can change the mail configuration at runtime.
type Mailer struct {
	settings repository.SettingsRepository
}

func New(settings repository.SettingsRepository) *Mailer {
	return &Mailer{settings: settings}
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) bool {
	settings, err := m.settings.Get(ctx)
	if err != nil {
		log.Printf("mailer: failed to load settings: %v", err)
		return false
	}

	if settings.SMTPHost == "" || settings.SMTPPort == 0 || settings.SMTPUsername == "" {
		log.Printf("mailer: SMTP not configured, skipping %q to %s", subject, to)
		return false
	}

	msg := gomail.NewMsg()
	if err := msg.From(settings.SMTPUsername); err != nil {
		log.Printf("mailer: invalid sender %q: %v", settings.SMTPUsername, err)
		return false
	}
	if err := msg.To(to); err != nil {
		log.Printf("mailer: invalid recipient %q: %v", to, err)
		return false
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, renderLayout(settings.AppName, subject, body))

	client, err := gomail.NewClient(settings.SMTPHost,
		gomail.WithPort(settings.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(settings.SMTPUsername),
		gomail.WithPassword(settings.SMTPPassword),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		log.Printf("mailer: failed to build SMTP client: %v", err)
		return false
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Printf("mailer: failed to send %q to %s: %v", subject, to, err)
		return false
	}
	return true
}

// adminEmail resolves the configured admin contact, falling back to the
// default when settings cannot be read.
func (m *Mailer) adminEmail(ctx context.Context) string {
	settings, err := m.settings.Get(ctx)
	if err != nil || settings.AdminEmail == "" {
		return model.DefaultAdminEmail
	}
	return settings.AdminEmail
}

func (m *Mailer) RegistrationApprovalRequest(ctx context.Context, applicantName, applicantEmail, role string, details map[string]string) bool {
	subject := fmt.Sprintf("New %s registration pending approval: %s", role, applicantName)
	body := fmt.Sprintf("<p>A new %s has registered and is waiting for approval.</p><p><b>Name:</b> %s<br><b>Email:</b> %s</p>%s<p>Please review the registration in the admin dashboard.</p>",
		role, applicantName, applicantEmail, renderDetails(details))
	return m.send(ctx, m.adminEmail(ctx), subject, body)
}

func (m *Mailer) ApprovalResult(ctx context.Context, name, email, role string, approved bool, notes string) bool {
	var subject, body string
	if approved {
		subject = "Your registration has been approved"
		body = fmt.Sprintf("<p>Dear %s,</p><p>Your %s registration has been approved. You can now log in and use your account.</p>", name, role)
	} else {
		subject = "Your registration has been rejected"
		body = fmt.Sprintf("<p>Dear %s,</p><p>We are sorry to inform you that your %s registration has been rejected.</p>", name, role)
	}
	if notes != "" {
		body += fmt.Sprintf("<p><b>Notes:</b> %s</p>", notes)
	}
	return m.send(ctx, email, subject, body)
}

func (m *Mailer) InvoiceSubmitted(ctx context.Context, vendorName, invoiceNumber string, amount decimal.Decimal, transactionID string) bool {
	subject := fmt.Sprintf("New vendor invoice %s awaiting validation", invoiceNumber)
	body := fmt.Sprintf("<p>Vendor <b>%s</b> submitted invoice <b>%s</b> for amount <b>%s</b> (transaction %s).</p><p>Please review it in the admin dashboard.</p>",
		vendorName, invoiceNumber, amount.StringFixed(2), transactionID)
	return m.send(ctx, m.adminEmail(ctx), subject, body)
}

func (m *Mailer) InvoiceDecision(ctx context.Context, vendorEmail, vendorName, invoiceNumber string, amount decimal.Decimal, approved bool, adminNotes string) bool {
	decision := "approved"
	if !approved {
		decision = "rejected"
	}
	subject := fmt.Sprintf("Invoice %s has been %s", invoiceNumber, decision)
	body := fmt.Sprintf("<p>Dear %s,</p><p>Your invoice <b>%s</b> for amount <b>%s</b> has been %s.</p>",
		vendorName, invoiceNumber, amount.StringFixed(2), decision)
	if adminNotes != "" {
		body += fmt.Sprintf("<p><b>Admin notes:</b> %s</p>", adminNotes)
	}
	return m.send(ctx, vendorEmail, subject, body)
}

func (m *Mailer) LoginWelcome(ctx context.Context, name, email, role string) bool {
	subject := "Welcome back"
	body := fmt.Sprintf("<p>Hello %s,</p><p>You have signed in to your %s account. If this was not you, please contact support immediately.</p>", name, role)
	return m.send(ctx, email, subject, body)
}

func renderDetails(details map[string]string) string {
	if len(details) == 0 {
		return ""
	}
	out := "<ul>"
	for k, v := range details {
		if v == "" {
			continue
		}
		out += fmt.Sprintf("<li><b>%s:</b> %s</li>", k, v)
	}
	return out + "</ul>"
}

func renderLayout(appName, subject, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; color: #333;">
<div style="background-color: #4CAF50; color: white; padding: 20px; text-align: center;"><h1>%s</h1></div>
<div style="background-color: #f9f9f9; padding: 30px;">%s</div>
<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666;">
<p>This is an automated message from %s. Please do not reply to this email.</p>
</div>
</body>
</html>`, subject, appName, body, appName)
}
