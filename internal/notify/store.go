// Package notify implements the Notification Store (C5) and Notification
// Sender (C6) use cases: idempotency/quota enforcement and chat delivery
// with its error taxonomy, sitting on top of the notification and user
// domain repositories.
package notify

import (
	"context"
	"time"

	"github.com/nikoly240702/tender-sniper/internal/domain/notification"
	"github.com/nikoly240702/tender-sniper/internal/domain/tender"
	"github.com/nikoly240702/tender-sniper/internal/domain/user"
	"github.com/nikoly240702/tender-sniper/internal/matching"
)

// Store is the Notification Store (C5): enforces the (user, tender)
// idempotency guarantee and the daily notification quota, and preserves
// delivery history.
type Store struct {
	notifications notification.Repository
	users         user.Repository
}

func NewStore(notifications notification.Repository, users user.Repository) *Store {
	return &Store{notifications: notifications, users: users}
}

// IsAlreadyNotified is an exact lookup on (userID, tenderNumber).
func (s *Store) IsAlreadyNotified(ctx context.Context, userID, tenderNumber string) (bool, error) {
	return s.notifications.ExistsForTender(ctx, userID, tenderNumber)
}

// HasQuota reports false iff notifications_sent_today ≥ dailyLimit AND the
// 24h reset window has not elapsed. If the window has
// elapsed, the counter is reset to 0 (persisted) and true is returned — the
// reset is lazy, evaluated on read, per the User entity's own invariant.
func (s *Store) HasQuota(ctx context.Context, u *user.User, dailyLimit int) (bool, error) {
	if u.ResetIfWindowElapsed(time.Now()) {
		if err := s.users.Update(ctx, u); err != nil {
			return false, err
		}
		return true, nil
	}
	return u.NotificationsSentToday < dailyLimit, nil
}

// RecordDelivered inserts a notification row and atomically increments the
// user's daily counter. A duplicate-key outcome from the repository
// (already-delivered race) is a silent no-op — Create itself absorbs that.
func (s *Store) RecordDelivered(ctx context.Context, u *user.User, filterID, filterName string, t *tender.Tender, m matching.Match, source notification.Source, externalMessageID string) error {
	n := &notification.Notification{
		UserID:             u.ID,
		FilterID:           filterID,
		FilterName:         filterName,
		TenderNumber:       t.Number,
		TenderName:         t.Name,
		TenderPrice:        t.Price,
		TenderURL:          t.URL,
		TenderRegion:       t.CustomerRegion,
		TenderCustomer:     t.CustomerName,
		PublishedDate:      t.PublishedDate,
		SubmissionDeadline: t.SubmissionDeadline,
		Score:              m.Score,
		MatchedKeywords:    m.MatchedKeywords,
		RedFlags:           m.RedFlags,
		Source:             source,
		SentAt:             time.Now(),
		ExternalMessageID:  externalMessageID,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return err
	}

	u.NotificationsSentToday++
	u.UpdatedAt = time.Now()
	return s.users.Update(ctx, u)
}

// ClearHistory deletes userID's notification history so already-seen tenders
// can be re-delivered — the recovered "/clear" command feature.
func (s *Store) ClearHistory(ctx context.Context, userID string) error {
	return s.notifications.ClearHistory(ctx, userID)
}

// ListUserTenders returns userID's most-recent notifications, newest first.
func (s *Store) ListUserTenders(ctx context.Context, userID string, limit int) ([]*notification.Notification, error) {
	return s.notifications.ListByUser(ctx, userID, limit)
}
