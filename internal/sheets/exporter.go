package sheets

import (
	"context"

	"github.com/nikoly240702/tender-sniper/internal/domain/tender"
	"github.com/nikoly240702/tender-sniper/internal/matching"
)

// Exporter adapts Client to the Monitoring Loop's SheetsExporter interface
// (internal/monitor.SheetsExporter): one configured spreadsheet per
// deployment. The domain model carries no per-user spreadsheet
// ID, so export targets a single operator-configured sheet rather than a
// per-user one — see DESIGN.md's Open Question decisions for why.
type Exporter struct {
	client        *Client
	spreadsheetID string
	filterName    string
}

func NewExporter(client *Client, spreadsheetID string) *Exporter {
	return &Exporter{client: client, spreadsheetID: spreadsheetID}
}

// AppendTender implements internal/monitor.SheetsExporter. No-op when
// export is disabled (nil Client) or no spreadsheet is configured.
func (e *Exporter) AppendTender(ctx context.Context, userID string, t *tender.Tender, m matching.Match) error {
	if !e.client.Configured() || e.spreadsheetID == "" {
		return nil
	}
	row := BuildRow(t, m, "", nil)
	return e.client.AppendRow(ctx, e.spreadsheetID, row, false)
}
