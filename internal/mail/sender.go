// Package mail abstracts outbound plaintext delivery behind a Sender so the
// login flow does not care whether codes leave through SMTP or the Gmail API.
package mail

import "context"

// Sender delivers one plaintext message to one recipient.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}
