package ports

import "context"

// Mail template names. Each maps to a fixed subject and body carrying a
// token link.
const (
	MailTemplateConfirmUser   = "confirm_user"
	MailTemplateResetPassword = "reset_password"
	MailTemplateChangeEmail   = "change_email"
)

// Email is a single outbound message: recipient, display name, template to
// render and the token embedded in the action link.
type Email struct {
	To       string
	Name     string
	Template string
	Token    string
}

// Mailer delivers a single email synchronously.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// MailQueue accepts emails for asynchronous, fire-and-forget delivery. No
// delivery confirmation is surfaced to the caller.
type MailQueue interface {
	Enqueue(msg Email)
}
