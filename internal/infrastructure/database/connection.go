// Package database holds the Postgres connection pool and the repository
// implementations of the domain layer's persistence interfaces.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // registers the "postgres" driver
)

// Config mirrors configs.DatabaseConfig; kept separate so this package
// doesn't import configs (avoids an import cycle through cmd/api wiring).
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DB wraps *sql.DB with the pool tuning and migration runner every
// repository in this package shares.
type DB struct {
	*sql.DB
}

func NewConnection(cfg Config) (*DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{DB: sqlDB}, nil
}

// RunMigrations applies the schema idempotently (CREATE TABLE IF NOT
// EXISTS) — sufficient for this system's single-schema lifecycle; a
// migrate-on-boot step rather than a separate migration runner.
func (db *DB) RunMigrations() error {
	stmts := []string{
		createUsersTable,
		createFiltersTable,
		createNotificationsTable,
		createTenderCacheTable,
		createUserActionsTable,
		createIndexes,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    external_id VARCHAR(64) UNIQUE NOT NULL,
    tier VARCHAR(16) NOT NULL DEFAULT 'trial',
    monitoring_enabled BOOLEAN NOT NULL DEFAULT TRUE,
    notifications_sent_today INTEGER NOT NULL DEFAULT 0,
    last_notification_reset TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    subscription_expires_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

const createFiltersTable = `
CREATE TABLE IF NOT EXISTS filters (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name VARCHAR(255) NOT NULL,
    keywords TEXT[] NOT NULL,
    exclude_keywords TEXT[] NOT NULL DEFAULT '{}',
    price_min DOUBLE PRECISION,
    price_max DOUBLE PRECISION,
    regions TEXT[] NOT NULL DEFAULT '{}',
    tender_types TEXT[] NOT NULL DEFAULT '{}',
    law_type VARCHAR(8) NOT NULL DEFAULT 'both',
    stage VARCHAR(16) NOT NULL DEFAULT 'submission',
    okpd2_codes TEXT[] NOT NULL DEFAULT '{}',
    min_deadline_days INTEGER NOT NULL DEFAULT 0,
    customer_keywords TEXT[] NOT NULL DEFAULT '{}',
    publication_days INTEGER NOT NULL DEFAULT 0,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    ai_intent TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

const createNotificationsTable = `
CREATE TABLE IF NOT EXISTS notifications (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    filter_id UUID NOT NULL REFERENCES filters(id) ON DELETE CASCADE,
    filter_name VARCHAR(255) NOT NULL,
    tender_number VARCHAR(64) NOT NULL,
    tender_name TEXT NOT NULL,
    tender_price DOUBLE PRECISION,
    tender_url TEXT NOT NULL,
    tender_region VARCHAR(255),
    tender_customer VARCHAR(255),
    published_date TIMESTAMPTZ NOT NULL,
    submission_deadline TIMESTAMPTZ,
    score INTEGER NOT NULL,
    matched_keywords TEXT[] NOT NULL DEFAULT '{}',
    red_flags TEXT[] NOT NULL DEFAULT '{}',
    source VARCHAR(32) NOT NULL,
    sent_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    external_message_id VARCHAR(64),
    UNIQUE (user_id, tender_number)
);`

const createTenderCacheTable = `
CREATE TABLE IF NOT EXISTS tender_cache (
    tender_number VARCHAR(64) PRIMARY KEY,
    content_hash VARCHAR(64) NOT NULL,
    last_seen TIMESTAMPTZ NOT NULL,
    times_matched INTEGER NOT NULL DEFAULT 0
);`

const createUserActionsTable = `
CREATE TABLE IF NOT EXISTS user_actions (
    id BIGSERIAL PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    action VARCHAR(64) NOT NULL,
    details JSONB,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

const createIndexes = `
CREATE INDEX IF NOT EXISTS idx_users_external_id ON users(external_id);
CREATE INDEX IF NOT EXISTS idx_filters_user_id ON filters(user_id) WHERE is_active;
CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);
CREATE INDEX IF NOT EXISTS idx_notifications_sent_at ON notifications(sent_at);
CREATE INDEX IF NOT EXISTS idx_user_actions_user_id ON user_actions(user_id);
`
