// Package notification models the immutable delivery record keyed by
// (user_id, tender_number).
package notification

import "time"

// Source is a closed enum for where a delivered notification originated.
type Source string

const (
	SourceAutoMonitoring Source = "automonitoring"
	SourceInstantSearch  Source = "instant_search"
)

// Notification is an immutable row: at most one exists per
// (UserID, TenderNumber) — enforced by a uniqueness constraint at the store,
// not by application logic.
type Notification struct {
	ID     string
	UserID string

	FilterID   string
	FilterName string // snapshot, not a live reference

	TenderNumber       string
	TenderName         string
	TenderPrice        *float64
	TenderURL          string
	TenderRegion       string
	TenderCustomer     string
	PublishedDate      time.Time
	SubmissionDeadline *time.Time

	Score           int
	MatchedKeywords []string
	RedFlags        []string

	Source Source

	SentAt           time.Time
	ExternalMessageID string
}
