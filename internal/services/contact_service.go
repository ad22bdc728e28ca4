package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ajramos/invitemate/internal/validate"
)

// ContactServiceImpl implements ContactService
type ContactServiceImpl struct {
	repo   ContactRepository
	logger *log.Logger // Optional - for debug logging
}

// NewContactService creates a new contact service
func NewContactService(repo ContactRepository) *ContactServiceImpl {
	return &ContactServiceImpl{repo: repo}
}

// SetLogger sets the logger for debug output
func (s *ContactServiceImpl) SetLogger(logger *log.Logger) {
	s.logger = logger
}

// ListForUser loads the full store and keeps the rows owned by userEmail.
func (s *ContactServiceImpl) ListForUser(ctx context.Context, userEmail string) ([]ContactRecord, error) {
	records, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByUser(records, userEmail), nil
}

// Submit validates the form and appends one record per address. A submission
// with any invalid address is rejected entirely: nothing is appended and the
// error names exactly the offending addresses. Returns the number of records
// appended.
func (s *ContactServiceImpl) Submit(ctx context.Context, userEmail string, form ContactForm) (int, error) {
	emails := validate.SplitEmails(form.Emails)
	if len(emails) == 0 {
		return 0, ErrNoRecipients
	}

	var invalid []string
	for _, e := range emails {
		if !validate.Email(e) {
			invalid = append(invalid, e)
		}
	}
	if len(invalid) > 0 {
		return 0, &InvalidEmailsError{Addresses: invalid}
	}

	record := ContactRecord{
		UserID:  userEmail,
		Project: strings.TrimSpace(form.Project),
		Tags:    strings.TrimSpace(form.Tags),
		Teams:   strings.TrimSpace(form.Teams),
	}

	appended := 0
	for _, e := range emails {
		record.Email = e
		if err := s.repo.Append(ctx, record); err != nil {
			return appended, fmt.Errorf("failed to append record for %s: %w", e, err)
		}
		appended++
	}

	if s.logger != nil {
		s.logger.Printf("appended %d record(s) for %s", appended, userEmail)
	}
	return appended, nil
}
