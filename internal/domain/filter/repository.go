package filter

import "context"

// Repository persists Filter aggregates.
// Filters are never hard-deleted — Deactivate soft-disables them, so there
// is no Delete method here.
type Repository interface {
	Create(ctx context.Context, f *Filter) error
	GetByID(ctx context.Context, id string) (*Filter, error)
	Update(ctx context.Context, f *Filter) error

	// ListActiveByUser returns a user's active filters, for the filter
	// management flow and for the tier-limit check on creation.
	ListActiveByUser(ctx context.Context, userID string) ([]*Filter, error)

	CountActiveByUser(ctx context.Context, userID string) (int, error)

	// ListAllActive feeds the Monitoring Loop's per-user, per-filter fan-out
	// — every active filter across every monitoring-enabled user.
	ListAllActive(ctx context.Context) ([]*Filter, error)
}
