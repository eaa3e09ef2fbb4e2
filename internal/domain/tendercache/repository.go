package tendercache

import "context"

// Repository persists content-addressed tender cache entries, keyed by tender number.
type Repository interface {
	Get(ctx context.Context, tenderNumber string) (*Entry, error) // nil, nil on miss
	Upsert(ctx context.Context, e *Entry) error
}
