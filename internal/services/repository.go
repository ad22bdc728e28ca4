package services

import (
	"context"
	"fmt"
	"log"
)

// Column headers of the shared contact sheet, in append order.
const (
	colUserID  = "UserID"
	colEmail   = "Email"
	colProject = "Project"
	colTags    = "Tags"
	colTeams   = "Teams"
)

// SheetsContactRepository implements ContactRepository on top of the Google
// Sheets record store.
type SheetsContactRepository struct {
	client SheetsClient
	logger *log.Logger // Optional - for debug logging
}

// NewSheetsContactRepository creates a new repository over a Sheets client
func NewSheetsContactRepository(client SheetsClient) *SheetsContactRepository {
	return &SheetsContactRepository{client: client}
}

// SetLogger sets the logger for debug output
func (r *SheetsContactRepository) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// LoadAll fetches every row of the store. A sheet without a UserID column
// (empty or legacy store) degrades to an empty result instead of an error.
func (r *SheetsContactRepository) LoadAll(ctx context.Context) ([]ContactRecord, error) {
	rows, err := r.client.GetAllRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if len(rows) == 0 {
		return []ContactRecord{}, nil
	}
	if _, ok := rows[0][colUserID]; !ok {
		if r.logger != nil {
			r.logger.Printf("record store has no %s column, treating as empty", colUserID)
		}
		return []ContactRecord{}, nil
	}

	records := make([]ContactRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, ContactRecord{
			UserID:  row[colUserID],
			Email:   row[colEmail],
			Project: row[colProject],
			Tags:    row[colTags],
			Teams:   row[colTeams],
		})
	}
	return records, nil
}

// Append submits one record as a new row. No uniqueness check, no upsert;
// append order is preserved by the store.
func (r *SheetsContactRepository) Append(ctx context.Context, record ContactRecord) error {
	row := []interface{}{record.UserID, record.Email, record.Project, record.Tags, record.Teams}
	if err := r.client.AppendRow(ctx, row); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// FilterByUser keeps records whose UserID equals userEmail exactly
// (case-sensitive).
func FilterByUser(records []ContactRecord, userEmail string) []ContactRecord {
	out := make([]ContactRecord, 0, len(records))
	for _, rec := range records {
		if rec.UserID == userEmail {
			out = append(out, rec)
		}
	}
	return out
}
