package database

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/ignite/shop/internal/config"
	_ "github.com/lib/pq"
)

var DB *sql.DB

// Connect establishes a connection to the PostgreSQL page store
func Connect() error {
	pgConfig, err := config.LoadPostgresConfig(os.Getenv)
	if err != nil {
		return fmt.Errorf("failed to load postgres config: %w", err)
	}

	DB, err = Open(pgConfig)
	return err
}

// Open opens and verifies a connection pool for cfg
func Open(cfg *config.PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
