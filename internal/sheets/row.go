package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nikoly240702/tender-sniper/internal/ai"
	"github.com/nikoly240702/tender-sniper/internal/domain/tender"
	"github.com/nikoly240702/tender-sniper/internal/matching"
)

// BuildRow flattens a delivered tender + its match evidence into a sheet
// row, mirroring google_sheets_sync.py's COLUMN_DEFINITIONS lambdas. docs is
// nil when the owning user's tier doesn't grant AI enrichment — the AI
// fields are then left blank rather than omitted, so the column layout
// stays fixed regardless of tier (the caller decides via includeAI whether
// those columns are written at all).
func BuildRow(t *tender.Tender, m matching.Match, filterName string, docs *ai.ExtractedDocs) Row {
	row := Row{
		Link:       t.URL,
		Name:       t.Name,
		Customer:   t.CustomerName,
		Region:     t.CustomerRegion,
		Published:  t.PublishedDate.Format("02.01.2006"),
		FilterName: filterName,
		Score:      strconv.Itoa(m.Score),
		RedFlags:   strings.Join(m.RedFlags, "; "),
	}
	if t.Price != nil {
		row.Price = formatPrice(*t.Price)
	}
	if t.SubmissionDeadline != nil {
		row.Deadline = t.SubmissionDeadline.Format("02.01.2006 15:04")
	}

	if docs != nil {
		row.AI = &AIFields{
			Summary:      docs.Summary,
			Licenses:     strings.Join(docs.Requirements, "; "),
			DeliveryDate: strings.Join(docs.Deadlines, "; "),
		}
	}
	return row
}

func formatPrice(price float64) string {
	whole := int64(price)
	s := strconv.FormatInt(whole, 10)
	var grouped strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			grouped.WriteRune(' ')
		}
		grouped.WriteRune(digit)
	}
	return fmt.Sprintf("%s ₽", grouped.String())
}
