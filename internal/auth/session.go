// Package auth defines the login session model for the one-time-code flow.
//
// A session walks through three steps: the user enters an email address, a
// 6-digit code is mailed to it, and entering that exact code authenticates
// the session for the rest of its lifetime.
package auth

import "time"

// Step identifies where a session is in the login flow.
type Step string

const (
	// StepEmailInput is the initial step: waiting for an email address.
	StepEmailInput Step = "email_input"
	// StepCodeInput means a code was mailed and we wait for it to be entered.
	StepCodeInput Step = "code_input"
	// StepAuthenticated is absorbing for the remainder of the session.
	StepAuthenticated Step = "authenticated"
)

// Session is the explicit per-user login context. It is created on the first
// request carrying no session cookie and torn down on explicit logout.
type Session struct {
	ID        string
	Step      Step
	Email     string // set once a code has been generated for it
	Code      string // latest generated verification code; regenerated on every send
	CreatedAt time.Time
}

// NewSession returns a fresh session in the initial step.
func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		Step:      StepEmailInput,
		CreatedAt: time.Now(),
	}
}

// Authenticated reports whether the session has completed the login flow.
func (s *Session) Authenticated() bool {
	return s != nil && s.Step == StepAuthenticated
}
