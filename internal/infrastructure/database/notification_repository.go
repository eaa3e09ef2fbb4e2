package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/nikoly240702/tender-sniper/internal/domain/notification"
)

// NotificationRepository implements notification.Repository against
// Postgres, relying on the (user_id, tender_number) unique constraint for
// idempotency rather than an application-level existence check racing
// against concurrent monitoring workers.
type NotificationRepository struct {
	db *DB
}

func NewNotificationRepository(db *DB) notification.Repository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	const query = `
		INSERT INTO notifications (user_id, filter_id, filter_name, tender_number, tender_name,
			tender_price, tender_url, tender_region, tender_customer, published_date,
			submission_deadline, score, matched_keywords, red_flags, source, sent_at,
			external_message_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		ON CONFLICT (user_id, tender_number) DO NOTHING
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		n.UserID, n.FilterID, n.FilterName, n.TenderNumber, n.TenderName,
		n.TenderPrice, n.TenderURL, n.TenderRegion, n.TenderCustomer, n.PublishedDate,
		n.SubmissionDeadline, n.Score, pq.Array(n.MatchedKeywords), pq.Array(n.RedFlags),
		n.Source, n.SentAt, n.ExternalMessageID,
	).Scan(&n.ID)

	if err == sql.ErrNoRows {
		// ON CONFLICT DO NOTHING produced no row: this tender was already
		// notified to this user. Not an error — the caller's job is done.
		return nil
	}
	return err
}

func (r *NotificationRepository) ExistsForTender(ctx context.Context, userID, tenderNumber string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM notifications WHERE user_id = $1 AND tender_number = $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, tenderNumber).Scan(&exists)
	return exists, err
}

func (r *NotificationRepository) CountSentSince(ctx context.Context, userID string, since time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND sent_at >= $2`
	var n int
	err := r.db.QueryRowContext(ctx, query, userID, since).Scan(&n)
	return n, err
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*notification.Notification, error) {
	const query = `
		SELECT id, user_id, filter_id, filter_name, tender_number, tender_name, tender_price,
			tender_url, tender_region, tender_customer, published_date, submission_deadline,
			score, matched_keywords, red_flags, source, sent_at, external_message_id
		FROM notifications WHERE user_id = $1 ORDER BY sent_at DESC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*notification.Notification
	for rows.Next() {
		n := &notification.Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.FilterID, &n.FilterName, &n.TenderNumber,
			&n.TenderName, &n.TenderPrice, &n.TenderURL, &n.TenderRegion, &n.TenderCustomer,
			&n.PublishedDate, &n.SubmissionDeadline, &n.Score, pq.Array(&n.MatchedKeywords),
			pq.Array(&n.RedFlags), &n.Source, &n.SentAt, &n.ExternalMessageID); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationRepository) ClearHistory(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID)
	return err
}
