package database

import (
	"context"
	"database/sql"

	"github.com/nikoly240702/tender-sniper/internal/domain/tendercache"
)

// TenderCacheRepository implements tendercache.Repository against Postgres.
type TenderCacheRepository struct {
	db *DB
}

func NewTenderCacheRepository(db *DB) tendercache.Repository {
	return &TenderCacheRepository{db: db}
}

func (r *TenderCacheRepository) Get(ctx context.Context, tenderNumber string) (*tendercache.Entry, error) {
	const query = `
		SELECT tender_number, content_hash, last_seen, times_matched
		FROM tender_cache WHERE tender_number = $1`

	e := &tendercache.Entry{}
	err := r.db.QueryRowContext(ctx, query, tenderNumber).Scan(
		&e.TenderNumber, &e.ContentHash, &e.LastSeen, &e.TimesMatched,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *TenderCacheRepository) Upsert(ctx context.Context, e *tendercache.Entry) error {
	const query = `
		INSERT INTO tender_cache (tender_number, content_hash, last_seen, times_matched)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tender_number) DO UPDATE
		SET content_hash = EXCLUDED.content_hash,
			last_seen = EXCLUDED.last_seen,
			times_matched = EXCLUDED.times_matched`

	_, err := r.db.ExecContext(ctx, query, e.TenderNumber, e.ContentHash, e.LastSeen, e.TimesMatched)
	return err
}
