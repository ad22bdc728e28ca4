package mail

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// SMTPSender delivers mail through an SMTP account. Credentials come from the
// secret store (EMAIL_SENDER / EMAIL_PASSWORD), not from the config file.
type SMTPSender struct {
	Host     string
	Port     int
	From     string
	Password string
}

// NewSMTPSender creates an SMTP-backed sender.
func NewSMTPSender(host string, port int, from, password string) *SMTPSender {
	return &SMTPSender{
		Host:     host,
		Port:     port,
		From:     from,
		Password: password,
	}
}

// Send delivers one plaintext message. The dial and send are blocking; ctx is
// accepted for interface symmetry but gomail exposes no cancellation hook.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if s.From == "" || s.Password == "" {
		return fmt.Errorf("smtp sender not configured: missing sender address or password")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.Host, s.Port, s.From, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to deliver mail to %s: %w", to, err)
	}
	return nil
}
