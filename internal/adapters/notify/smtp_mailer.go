package notify

import (
	"context"
	"crypto/tls"
	"fmt"

	"olympia-api/internal/config"

	mail "github.com/go-mail/mail/v2"
)

// SMTPMailer sends multipart (text + html) mail over SMTP with STARTTLS
type SMTPMailer struct {
	cfg    config.SMTPConfig
	dialer *mail.Dialer
}

// NewSMTPMailer creates a mailer. Returns nil when SMTP is not configured.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	if !cfg.Enabled() {
		return nil
	}

	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName:         cfg.Host,
		InsecureSkipVerify: cfg.SkipTLSVerify,
	}

	return &SMTPMailer{cfg: cfg, dialer: d}
}

// Send delivers one message to all recipients
func (m *SMTPMailer) Send(ctx context.Context, recipients []string, subject, text, html string) error {
	if len(recipients) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(m.cfg.From, recipients, subject, text, html)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send to %d recipients: %w", len(recipients), err)
	}
	return nil
}

func buildMessage(from string, to []string, subject, text, html string) *mail.Message {
	msg := mail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	if html != "" {
		msg.AddAlternative("text/html", html)
	}
	return msg
}
