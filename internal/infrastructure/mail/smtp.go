package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/q815101630/flaska/internal/pkg/metrics"
	"github.com/q815101630/flaska/internal/core/ports"
)

// Config captures SMTP settings plus the public site root used when building
// action links.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	BaseURL  string
}

// SMTPMailer renders the account email templates and delivers them over SMTP
// using go-mail.
type SMTPMailer struct {
	cfg Config
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send renders and delivers one message. A new client per send keeps the
// mailer connection-free between deliveries; volume is a handful of mails a
// minute, not a campaign.
func (m *SMTPMailer) Send(ctx context.Context, msg ports.Email) error {
	subject, body, err := renderTemplate(m.cfg.BaseURL, msg)
	if err != nil {
		metrics.EmailsSentTotal.WithLabelValues(msg.Template, "error").Inc()
		return err
	}

	message := gomail.NewMsg()
	if err := message.From(m.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := message.AddToFormat(msg.Name, msg.To); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	message.Subject(subject)
	message.SetBodyString(gomail.TypeTextPlain, body)

	opts := []gomail.Option{
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
	}
	client, err := gomail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		metrics.EmailsSentTotal.WithLabelValues(msg.Template, "error").Inc()
		return fmt.Errorf("mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, message); err != nil {
		metrics.EmailsSentTotal.WithLabelValues(msg.Template, "error").Inc()
		return fmt.Errorf("mail send: %w", err)
	}

	metrics.EmailsSentTotal.WithLabelValues(msg.Template, "sent").Inc()
	return nil
}

// renderTemplate builds the subject and plain-text body for a template name.
func renderTemplate(baseURL string, msg ports.Email) (subject, body string, err error) {
	greeting := fmt.Sprintf("Dear %s,\n\n", msg.Name)

	switch msg.Template {
	case ports.MailTemplateConfirmUser:
		subject = "Confirm your account"
		body = greeting +
			"Welcome! To confirm your account, open the link below:\n\n" +
			fmt.Sprintf("%s/auth/confirm/%s\n\n", baseURL, msg.Token) +
			"The link expires in one hour. If you did not register, ignore this email.\n"
	case ports.MailTemplateResetPassword:
		subject = "Reset your password"
		body = greeting +
			"To reset your password, open the link below:\n\n" +
			fmt.Sprintf("%s/auth/password-reset/%s\n\n", baseURL, msg.Token) +
			"The link expires in one hour. If you did not ask for a reset, ignore this email.\n"
	case ports.MailTemplateChangeEmail:
		subject = "Confirm your new email address"
		body = greeting +
			"To confirm your new email address, open the link below:\n\n" +
			fmt.Sprintf("%s/auth/email/%s\n\n", baseURL, msg.Token) +
			"The link expires in one hour. If you did not request this change, ignore this email.\n"
	default:
		return "", "", fmt.Errorf("unknown mail template %q", msg.Template)
	}
	return subject, body, nil
}
