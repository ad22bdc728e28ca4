package mail

import (
	"context"
	"fmt"

	"github.com/ajramos/invitemate/internal/gmail"
)

// GmailSender delivers mail through the Gmail API using the OAuth client
// credentials configured for the application.
type GmailSender struct {
	client *gmail.Client
}

// NewGmailSender creates a Gmail-API-backed sender.
func NewGmailSender(client *gmail.Client) *GmailSender {
	return &GmailSender{client: client}
}

// Send delivers one plaintext message from the authenticated account.
func (s *GmailSender) Send(ctx context.Context, to, subject, body string) error {
	if s.client == nil {
		return fmt.Errorf("gmail sender not configured")
	}
	_, err := s.client.SendMessage("me", to, subject, body)
	return err
}
