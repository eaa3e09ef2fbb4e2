package user

import "context"

// Repository persists User aggregates. The infrastructure layer implements
// this against Postgres.
type Repository interface {
	Create(ctx context.Context, u *User) error

	// GetByExternalID looks a user up by their Telegram/chat ID — the only
	// external identity this system tracks. Returns nil, nil on miss.
	GetByExternalID(ctx context.Context, externalID string) (*User, error)

	GetByID(ctx context.Context, id string) (*User, error)

	Update(ctx context.Context, u *User) error

	// ListMonitoringEnabled returns every user eligible for the
	// Monitoring Loop's polling pass.
	ListMonitoringEnabled(ctx context.Context) ([]*User, error)
}
