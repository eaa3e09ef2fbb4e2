package database

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/nikoly240702/tender-sniper/internal/domain/filter"
)

// FilterRepository implements filter.Repository against Postgres.
type FilterRepository struct {
	db *DB
}

func NewFilterRepository(db *DB) filter.Repository {
	return &FilterRepository{db: db}
}

func (r *FilterRepository) Create(ctx context.Context, f *filter.Filter) error {
	const query = `
		INSERT INTO filters (user_id, name, keywords, exclude_keywords, price_min, price_max,
			regions, tender_types, law_type, stage, okpd2_codes, min_deadline_days,
			customer_keywords, publication_days, is_active, ai_intent, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		f.UserID, f.Name, pq.Array(f.Keywords), pq.Array(f.ExcludeKeywords),
		f.PriceMin, f.PriceMax, pq.Array(f.Regions), pq.Array(tenderTypesToStrings(f.TenderTypes)),
		f.LawType, f.Stage, pq.Array(f.OKPD2Codes), f.MinDeadlineDays,
		pq.Array(f.CustomerKeywords), f.PublicationDays, f.IsActive, f.AIIntent,
		f.CreatedAt, f.UpdatedAt,
	).Scan(&f.ID)
}

func (r *FilterRepository) GetByID(ctx context.Context, id string) (*filter.Filter, error) {
	row := r.db.QueryRowContext(ctx, selectFilterQuery+" WHERE id = $1", id)
	return r.scanOne(row)
}

func (r *FilterRepository) Update(ctx context.Context, f *filter.Filter) error {
	const query = `
		UPDATE filters
		SET name=$1, keywords=$2, exclude_keywords=$3, price_min=$4, price_max=$5,
			regions=$6, tender_types=$7, law_type=$8, stage=$9, okpd2_codes=$10,
			min_deadline_days=$11, customer_keywords=$12, publication_days=$13,
			is_active=$14, ai_intent=$15, updated_at=$16
		WHERE id = $17`
	_, err := r.db.ExecContext(ctx, query,
		f.Name, pq.Array(f.Keywords), pq.Array(f.ExcludeKeywords), f.PriceMin, f.PriceMax,
		pq.Array(f.Regions), pq.Array(tenderTypesToStrings(f.TenderTypes)), f.LawType, f.Stage,
		pq.Array(f.OKPD2Codes), f.MinDeadlineDays, pq.Array(f.CustomerKeywords),
		f.PublicationDays, f.IsActive, f.AIIntent, f.UpdatedAt, f.ID,
	)
	return err
}

func (r *FilterRepository) ListActiveByUser(ctx context.Context, userID string) ([]*filter.Filter, error) {
	rows, err := r.db.QueryContext(ctx, selectFilterQuery+" WHERE user_id = $1 AND is_active = TRUE", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *FilterRepository) CountActiveByUser(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM filters WHERE user_id = $1 AND is_active = TRUE`
	var n int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&n)
	return n, err
}

func (r *FilterRepository) ListAllActive(ctx context.Context) ([]*filter.Filter, error) {
	rows, err := r.db.QueryContext(ctx, selectFilterQuery+" WHERE is_active = TRUE")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

const selectFilterQuery = `
	SELECT id, user_id, name, keywords, exclude_keywords, price_min, price_max,
		regions, tender_types, law_type, stage, okpd2_codes, min_deadline_days,
		customer_keywords, publication_days, is_active, ai_intent, created_at, updated_at
	FROM filters`

func (r *FilterRepository) scanRow(scan func(dest ...any) error) (*filter.Filter, error) {
	f := &filter.Filter{}
	var tenderTypeStrs []string
	err := scan(&f.ID, &f.UserID, &f.Name, pq.Array(&f.Keywords), pq.Array(&f.ExcludeKeywords),
		&f.PriceMin, &f.PriceMax, pq.Array(&f.Regions), pq.Array(&tenderTypeStrs),
		&f.LawType, &f.Stage, pq.Array(&f.OKPD2Codes), &f.MinDeadlineDays,
		pq.Array(&f.CustomerKeywords), &f.PublicationDays, &f.IsActive, &f.AIIntent,
		&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.TenderTypes = stringsToTenderTypes(tenderTypeStrs)
	return f, nil
}

func (r *FilterRepository) scanOne(row *sql.Row) (*filter.Filter, error) {
	f, err := r.scanRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return f, err
}

func (r *FilterRepository) scanAll(rows *sql.Rows) ([]*filter.Filter, error) {
	var out []*filter.Filter
	for rows.Next() {
		f, err := r.scanRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func tenderTypesToStrings(types []filter.TenderType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func stringsToTenderTypes(strs []string) []filter.TenderType {
	out := make([]filter.TenderType, len(strs))
	for i, s := range strs {
		out[i] = filter.TenderType(s)
	}
	return out
}
