package services

import (
	"strings"
	"time"

	"github.com/ajramos/invitemate/internal/calendar"
)

// ActionServiceImpl implements ActionService
type ActionServiceImpl struct{}

// NewActionService creates a new action service
func NewActionService() *ActionServiceImpl {
	return &ActionServiceImpl{}
}

// MailtoLink builds a mail-client deep link for the recipients. Only spaces
// (%20) and newlines (%0D%0A) are encoded; every other character passes
// through raw so the link stays readable in clients that do not decode.
func (s *ActionServiceImpl) MailtoLink(recipients []string, subject, body string) (string, error) {
	if len(recipients) == 0 {
		return "", ErrNoRecipients
	}

	var sb strings.Builder
	sb.WriteString("mailto:")
	sb.WriteString(strings.Join(recipients, ","))
	sb.WriteString("?subject=")
	sb.WriteString(encodeMailtoText(subject))
	sb.WriteString("&body=")
	sb.WriteString(encodeMailtoText(body))
	return sb.String(), nil
}

// CalendarInvite builds the downloadable .ics payload for the recipients,
// using the draft body text as the event description.
func (s *ActionServiceImpl) CalendarInvite(opts InviteOptions, recipients []string) (string, error) {
	if len(recipients) == 0 {
		return "", ErrNoRecipients
	}

	inv := &calendar.Invite{
		Title:       opts.Title,
		Start:       opts.Start,
		Duration:    time.Duration(opts.Hours) * time.Hour,
		Location:    opts.Location,
		Description: opts.Body,
		Attendees:   recipients,
	}
	return inv.Serialize()
}

func encodeMailtoText(s string) string {
	// Form posts arrive with CRLF line endings; fold them before encoding.
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, " ", "%20")
	s = strings.ReplaceAll(s, "\n", "%0D%0A")
	return s
}
