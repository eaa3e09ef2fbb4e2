package notification

import (
	"context"
	"time"
)

// Repository persists Notification records (notifications table, unique on
// (user_id, tender_number) — the idempotency guarantee lives at the store,
// not in application code).
type Repository interface {
	// Create inserts a notification. Implementations must treat a
	// unique-constraint violation on (UserID, TenderNumber) as success
	// (a nil error), not a hard failure — a duplicate delivery attempt
	// is expected whenever a tender reappears across polling cycles.
	Create(ctx context.Context, n *Notification) error

	ExistsForTender(ctx context.Context, userID, tenderNumber string) (bool, error)

	// CountSentSince supports the daily notification quota check.
	CountSentSince(ctx context.Context, userID string, since time.Time) (int, error)

	ListByUser(ctx context.Context, userID string, limit int) ([]*Notification, error)

	// ClearHistory lets a user re-receive notifications for tenders already
	// seen — a recovered feature from the original implementation's
	// "/clear" command.
	ClearHistory(ctx context.Context, userID string) error
}
