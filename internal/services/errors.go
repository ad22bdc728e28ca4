package services

import (
	"errors"
	"fmt"
	"strings"
)

// Standard service errors surfaced as user-visible notices at the web boundary
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrDeliveryFailed   = errors.New("could not deliver mail")
	ErrInvalidCode      = errors.New("invalid verification code")
	ErrStoreUnavailable = errors.New("record store unavailable")
	ErrInvalidInput     = errors.New("invalid input provided")
	ErrNoRecipients     = errors.New("no valid email addresses provided")
)

// InvalidEmailsError rejects a whole submission and names every offending
// address, so the notice can list exactly what was wrong.
type InvalidEmailsError struct {
	Addresses []string
}

func (e *InvalidEmailsError) Error() string {
	return fmt.Sprintf("invalid email addresses: %s", strings.Join(e.Addresses, ", "))
}

func (e *InvalidEmailsError) Unwrap() error {
	return ErrInvalidInput
}

// IsUserError reports whether an error should be rendered as a notice rather
// than treated as an internal failure.
func IsUserError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidCode) ||
		errors.Is(err, ErrNoRecipients) ||
		errors.Is(err, ErrDeliveryFailed)
}
