package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client wraps the Google Sheets API behind AppendRow/EnsureHeaders. A nil
// Client (no credentials configured) is the valid "export disabled" zero
// value, mirroring internal/ai.Client's nil-is-disabled convention.
type Client struct {
	svc   *sheets.Service
	log   *zap.SugaredLogger
}

// New builds a Client from a service-account credentials file, or returns
// nil if credentialsFile is empty — spreadsheet export is an optional
// collaborator most deployments never configure.
func New(ctx context.Context, credentialsFile string, log *zap.SugaredLogger) (*Client, error) {
	if credentialsFile == "" {
		return nil, nil
	}
	svc, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("build sheets service: %w", err)
	}
	return &Client{svc: svc, log: log}, nil
}

func (c *Client) Configured() bool {
	return c != nil
}

// EnsureHeaders writes the header row to spreadsheetID's first sheet if it
// is currently empty, so a freshly-shared spreadsheet starts with readable
// column titles instead of the first data row.
func (c *Client) EnsureHeaders(ctx context.Context, spreadsheetID string, includeAI bool) error {
	if c == nil {
		return nil
	}

	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, "A1:A1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("check existing headers: %w", err)
	}
	if len(resp.Values) > 0 {
		return nil
	}

	hdr := headers(includeAI)
	row := make([]any, len(hdr))
	for i, h := range hdr {
		row[i] = h
	}

	_, err = c.svc.Spreadsheets.Values.Update(spreadsheetID, "A1", &sheets.ValueRange{
		Values: [][]any{row},
	}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	return nil
}

// AppendRow appends one row to spreadsheetID's first sheet. includeAI controls whether the
// Premium-only AI columns are written — gated by the caller on the
// delivering user's tier.
func (c *Client) AppendRow(ctx context.Context, spreadsheetID string, row Row, includeAI bool) error {
	if c == nil {
		return nil
	}

	_, err := c.svc.Spreadsheets.Values.Append(spreadsheetID, "A1", &sheets.ValueRange{
		Values: [][]any{row.values(includeAI)},
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}
