package database

import (
	"context"
	"database/sql"

	"github.com/nikoly240702/tender-sniper/internal/domain/user"
)

// UserRepository implements user.Repository against Postgres.
type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	const query = `
		INSERT INTO users (external_id, tier, monitoring_enabled, notifications_sent_today,
			last_notification_reset, subscription_expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		u.ExternalID, u.Tier, u.MonitoringEnabled, u.NotificationsSentToday,
		u.LastNotificationReset, u.SubscriptionExpiresAt, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
}

func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (*user.User, error) {
	const query = `
		SELECT id, external_id, tier, monitoring_enabled, notifications_sent_today,
			last_notification_reset, subscription_expires_at, created_at, updated_at
		FROM users WHERE external_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, externalID))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	const query = `
		SELECT id, external_id, tier, monitoring_enabled, notifications_sent_today,
			last_notification_reset, subscription_expires_at, created_at, updated_at
		FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	const query = `
		UPDATE users
		SET tier = $1, monitoring_enabled = $2, notifications_sent_today = $3,
			last_notification_reset = $4, subscription_expires_at = $5, updated_at = $6
		WHERE id = $7`
	_, err := r.db.ExecContext(ctx, query,
		u.Tier, u.MonitoringEnabled, u.NotificationsSentToday,
		u.LastNotificationReset, u.SubscriptionExpiresAt, u.UpdatedAt, u.ID,
	)
	return err
}

func (r *UserRepository) ListMonitoringEnabled(ctx context.Context) ([]*user.User, error) {
	const query = `
		SELECT id, external_id, tier, monitoring_enabled, notifications_sent_today,
			last_notification_reset, subscription_expires_at, created_at, updated_at
		FROM users WHERE monitoring_enabled = TRUE`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*user.User
	for rows.Next() {
		u := &user.User{}
		if err := rows.Scan(&u.ID, &u.ExternalID, &u.Tier, &u.MonitoringEnabled,
			&u.NotificationsSentToday, &u.LastNotificationReset,
			&u.SubscriptionExpiresAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) scanOne(row *sql.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(&u.ID, &u.ExternalID, &u.Tier, &u.MonitoringEnabled,
		&u.NotificationsSentToday, &u.LastNotificationReset,
		&u.SubscriptionExpiresAt, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
