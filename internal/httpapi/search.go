package httpapi

import (
	"time"

	"github.com/nikoly240702/tender-sniper/internal/domain/filter"
	"github.com/nikoly240702/tender-sniper/internal/report"
	"github.com/nikoly240702/tender-sniper/internal/search"
)

// buildAdHocFilter turns a searchRequest into an unpersisted Filter — the
// chat collaborator's Instant Search trigger runs against a caller-supplied
// specification and never writes to the filters table.
func buildAdHocFilter(userID string, req searchRequest) (*filter.Filter, error) {
	f, err := filter.New(userID, req.Name, req.Keywords, req.ExcludeKeywords)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func buildReportData(filterName string, results []search.Result) report.Data {
	cards := make([]report.Card, 0, len(results))
	for _, r := range results {
		cards = append(cards, report.Card{
			Number:             r.Tender.Number,
			Name:               r.Tender.Name,
			URL:                r.Tender.URL,
			Price:              r.Tender.Price,
			CustomerName:       r.Tender.CustomerName,
			CustomerRegion:     r.Tender.CustomerRegion,
			PublishedDate:      r.Tender.PublishedDate,
			SubmissionDeadline: r.Tender.SubmissionDeadline,
			Score:              r.Match.Score,
			MatchedKeywords:    r.Match.MatchedKeywords,
			RedFlags:           r.Match.RedFlags,
		})
	}
	return report.Data{
		FilterName:  filterName,
		GeneratedAt: time.Now(),
		Cards:       cards,
	}
}
