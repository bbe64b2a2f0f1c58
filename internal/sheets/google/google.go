// Package google implements the ledger store ports on top of the Google
// Sheets API.
package google

import (
	"context"
	"errors"
	"fmt"
	"strings"

	ports "github.com/danylakopych/familybudgetbot/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client talks to one sheet of one spreadsheet. The ledger occupies columns
// A:F with the header in row 1.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Ensure interface conformance
var _ ports.Ledger = (*Client)(nil)

// New creates a Sheets client from service-account credentials JSON.
func New(ctx context.Context, spreadsheetID, sheetName string, credentialsJSON []byte) (*Client, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if strings.TrimSpace(sheetName) == "" {
		sheetName = "Sheet1"
	}
	if len(credentialsJSON) == 0 {
		return nil, errors.New("missing google credentials")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// ReadAll fetches the whole ledger range. Cleared rows come back as rows with
// no cells; they are passed through untouched so positions stay stable.
func (c *Client) ReadAll(ctx context.Context) ([][]string, error) {
	rng := fmt.Sprintf("%s!A:F", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	rows := make([][]string, len(resp.Values))
	for i, raw := range resp.Values {
		cells := make([]string, len(raw))
		for j, v := range raw {
			cells[j] = strings.TrimSpace(fmt.Sprint(v))
		}
		rows[i] = cells
	}
	return rows, nil
}

// Append adds one row after the last occupied one.
func (c *Client) Append(ctx context.Context, row []string) error {
	rng := fmt.Sprintf("%s!A:F", c.sheetName)
	values := make([]any, len(row))
	for i, cell := range row {
		values[i] = cell
	}
	vr := &gsheet.ValueRange{Values: [][]any{values}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", rng, err)
	}
	return nil
}

// Clear blanks the cells of the row at the given ReadAll position. Sheet
// ranges are 1-based, so position i maps to range row i+1.
func (c *Client) Clear(ctx context.Context, row int) error {
	if row < 1 {
		return fmt.Errorf("row %d is not clearable", row)
	}
	rng := fmt.Sprintf("%s!A%d:F%d", c.sheetName, row+1, row+1)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", rng, err)
	}
	return nil
}
