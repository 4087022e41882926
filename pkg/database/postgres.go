package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/noah-isme/batch-intake-api/pkg/config"
)

// Schema creates the candidates table used by the postgres store driver.
const Schema = `CREATE TABLE IF NOT EXISTS candidates (
    id UUID PRIMARY KEY,
    full_name TEXT NOT NULL,
    email TEXT NOT NULL,
    contact_number TEXT NOT NULL,
    gender TEXT NULL,
    qualification TEXT NOT NULL,
    year_of_completion TEXT NOT NULL,
    college_name TEXT NOT NULL,
    hod_name TEXT NULL,
    hod_contact TEXT NULL,
    hod_email TEXT NULL,
    batch TEXT NOT NULL,
    reference TEXT NOT NULL,
    contacted_whatsapp BOOLEAN NOT NULL DEFAULT FALSE,
    contacted_call BOOLEAN NOT NULL DEFAULT FALSE,
    attended_session BOOLEAN NOT NULL DEFAULT FALSE,
    attended_intro BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_candidates_created_at ON candidates (created_at DESC);`

// NewPostgres returns a configured PostgreSQL client.
func NewPostgres(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate applies Schema. It is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate candidates schema: %w", err)
	}
	return nil
}
