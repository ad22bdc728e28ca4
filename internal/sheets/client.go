// Package sheets wraps the Google Sheets API for use as the shared contact
// record store: one spreadsheet, one header row, rows appended and never
// rewritten in place.
package sheets

import (
	"context"
	"fmt"

	sheetsapi "google.golang.org/api/sheets/v4"
)

// Client wraps the sheets.Service and provides convenience methods for the
// record store operations the application needs.
type Client struct {
	Service       *sheetsapi.Service
	SpreadsheetID string
	SheetName     string
}

// NewClient creates a new Sheets client bound to one spreadsheet tab.
func NewClient(service *sheetsapi.Service, spreadsheetID, sheetName string) *Client {
	return &Client{
		Service:       service,
		SpreadsheetID: spreadsheetID,
		SheetName:     sheetName,
	}
}

// GetAllRecords fetches every row of the sheet and returns them as maps keyed
// by the header row, mirroring a row-dictionary scan of the spreadsheet.
func (c *Client) GetAllRecords(ctx context.Context) ([]map[string]string, error) {
	if c == nil || c.Service == nil {
		return nil, fmt.Errorf("sheets client not initialized")
	}

	resp, err := c.Service.Spreadsheets.Values.Get(c.SpreadsheetID, c.SheetName).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet values: %w", err)
	}

	return RecordsFromRows(resp.Values), nil
}

// AppendRow appends one row positionally after the last row of the sheet.
func (c *Client) AppendRow(ctx context.Context, values []interface{}) error {
	if c == nil || c.Service == nil {
		return fmt.Errorf("sheets client not initialized")
	}

	body := &sheetsapi.ValueRange{Values: [][]interface{}{values}}
	_, err := c.Service.Spreadsheets.Values.Append(c.SpreadsheetID, c.SheetName, body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}
	return nil
}

// RecordsFromRows converts raw sheet values into row dictionaries keyed by
// the first (header) row. Short rows are padded with empty strings; extra
// cells beyond the header width are ignored.
func RecordsFromRows(rows [][]interface{}) []map[string]string {
	if len(rows) < 2 {
		return []map[string]string{}
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = cellString(h)
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(row) {
				rec[h] = cellString(row[i])
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

func cellString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
