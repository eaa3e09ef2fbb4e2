// Package report implements the Report Generator (C10): a self-contained
// HTML document rendered from a list of matched tenders, plus a
// debug variant that also lists hard-rejected tenders with their rejection
// reason.
package report

import (
	"time"

	"github.com/nikoly240702/tender-sniper/internal/matching"
)

// Card is one matched tender's display data.
type Card struct {
	Number             string
	Name               string
	URL                string
	Price              *float64
	CustomerName       string
	CustomerRegion     string
	PublishedDate      time.Time
	SubmissionDeadline *time.Time
	Score              int
	MatchedKeywords    []string
	RedFlags           []string
}

// RejectedCard is one hard-rejected tender's display data for the debug
// report variant — the "why didn't I get a notification" view.
type RejectedCard struct {
	Number string
	Name   string
	URL    string
	Reason matching.RejectReason
}

// Data is the Report Generator's input: a filter context, the matched
// tenders to render, and — only populated by RenderDebugReport —
// the hard-rejected tenders with their rejection reason. Rejected is
// always present on the struct (even if nil) so one template serves both
// the ordinary and debug renders without a template field-mismatch error.
type Data struct {
	FilterName  string
	GeneratedAt time.Time
	Cards       []Card
	Rejected    []RejectedCard
}
