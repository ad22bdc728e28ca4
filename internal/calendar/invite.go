// Package calendar builds downloadable iCalendar invites for a filtered
// recipient list.
package calendar

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

const (
	// MIMEType is the content type served for a generated invite.
	MIMEType = "text/calendar"
	// Filename is the download name offered for a generated invite.
	Filename = "meeting.ics"
)

// Invite describes a single calendar event to be serialized as an .ics
// payload. Attendees are plain email addresses.
type Invite struct {
	Title       string
	Start       time.Time
	Duration    time.Duration
	Location    string
	Description string
	Attendees   []string
}

// End returns the event end time (start plus duration).
func (inv *Invite) End() time.Time {
	return inv.Start.Add(inv.Duration)
}

// Serialize renders the invite as an iCalendar payload containing one event.
func (inv *Invite) Serialize() (string, error) {
	if inv.Title == "" {
		return "", fmt.Errorf("invite title cannot be empty")
	}
	if len(inv.Attendees) == 0 {
		return "", fmt.Errorf("invite needs at least one attendee")
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	cal.SetProductId("-//invitemate//EN")

	event := cal.AddEvent(uuid.New().String())
	event.SetDtStampTime(time.Now().UTC())
	event.SetStartAt(inv.Start.UTC())
	event.SetEndAt(inv.End().UTC())
	event.SetSummary(inv.Title)
	if inv.Location != "" {
		event.SetLocation(inv.Location)
	}
	if inv.Description != "" {
		event.SetDescription(inv.Description)
	}
	for _, a := range inv.Attendees {
		event.AddAttendee(a, ics.ParticipationStatusNeedsAction)
	}

	return cal.Serialize(), nil
}

// Parse reads an iCalendar payload produced by Serialize back into an Invite.
// Only the first event is considered.
func Parse(data string) (*Invite, error) {
	cal, err := ics.ParseCalendar(strings.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar payload: %w", err)
	}

	events := cal.Events()
	if len(events) == 0 {
		return nil, fmt.Errorf("calendar payload contains no events")
	}
	event := events[0]

	start, err := event.GetStartAt()
	if err != nil {
		return nil, fmt.Errorf("failed to read event start: %w", err)
	}
	end, err := event.GetEndAt()
	if err != nil {
		return nil, fmt.Errorf("failed to read event end: %w", err)
	}

	inv := &Invite{
		Start:    start,
		Duration: end.Sub(start),
	}
	if p := event.GetProperty(ics.ComponentPropertySummary); p != nil {
		inv.Title = p.Value
	}
	if p := event.GetProperty(ics.ComponentPropertyLocation); p != nil {
		inv.Location = p.Value
	}
	if p := event.GetProperty(ics.ComponentPropertyDescription); p != nil {
		inv.Description = p.Value
	}
	for _, a := range event.Attendees() {
		inv.Attendees = append(inv.Attendees, a.Email())
	}

	return inv, nil
}
