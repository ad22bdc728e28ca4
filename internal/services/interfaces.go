package services

import (
	"context"
	"time"

	"github.com/ajramos/invitemate/internal/auth"
)

// SessionStore persists login sessions across requests (and restarts).
type SessionStore interface {
	Get(ctx context.Context, id string) (*auth.Session, bool, error)
	Save(ctx context.Context, sess *auth.Session) error
	Delete(ctx context.Context, id string) error
}

// SheetsClient is the subset of the Sheets wrapper the repository needs.
type SheetsClient interface {
	GetAllRecords(ctx context.Context) ([]map[string]string, error)
	AppendRow(ctx context.Context, values []interface{}) error
}

// ContactRepository handles contact record persistence
type ContactRepository interface {
	LoadAll(ctx context.Context) ([]ContactRecord, error)
	Append(ctx context.Context, record ContactRecord) error
}

// AuthService drives the one-time-code login flow
type AuthService interface {
	SendCode(ctx context.Context, sess *auth.Session, email string) error
	VerifyCode(ctx context.Context, sess *auth.Session, code string) error
	Logout(ctx context.Context, sess *auth.Session) error
}

// ContactService handles contact submissions and per-user listing
type ContactService interface {
	ListForUser(ctx context.Context, userEmail string) ([]ContactRecord, error)
	Submit(ctx context.Context, userEmail string, form ContactForm) (int, error)
}

// FilterService derives facet choices and narrows the visible record set
type FilterService interface {
	DeriveFacets(records []ContactRecord, facet Facet) []string
	Apply(records []ContactRecord, sel FilterSelection) []ContactRecord
}

// InviteOptions describes the calendar event to generate for the filtered
// recipient list.
type InviteOptions struct {
	Title    string
	Start    time.Time
	Hours    int
	Location string
	Body     string
}

// ActionService builds the outputs consumed outside the app: a mail-client
// deep link and a downloadable calendar invite.
type ActionService interface {
	MailtoLink(recipients []string, subject, body string) (string, error)
	CalendarInvite(opts InviteOptions, recipients []string) (string, error)
}
