package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Schema creates the tables the Postgres page store needs
const Schema = `
	CREATE TABLE IF NOT EXISTS page_snapshots (
		key TEXT PRIMARY KEY,
		payload JSONB NOT NULL,
		resolved_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	-- keys are a namespace prefix plus an id of up to 255 characters
	ALTER TABLE page_snapshots ALTER COLUMN key TYPE TEXT;
	CREATE INDEX IF NOT EXISTS idx_page_snapshots_resolved_at ON page_snapshots(resolved_at);
	`

// RunMigrations creates the necessary database tables
func RunMigrations() error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if err := Migrate(DB); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// Migrate applies Schema to db
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create page_snapshots table: %w", err)
	}
	return nil
}
