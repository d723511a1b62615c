package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// ConnectToSQLite initializes and returns a SQLite connection
func ConnectToSQLite(dbPath string) (*sql.DB, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for SQLite: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=10000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	log.Println("Connected to SQLite database")
	return db, nil
}

// InitializeSchema creates all the necessary tables if they don't exist.
// Both search tables are append-only: rows are inserted and read, never
// updated or deleted.
func InitializeSchema(db *sql.DB) error {
	// Create phone_searches table
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS phone_searches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		masked_number TEXT NOT NULL,
		detected_region TEXT NOT NULL,
		detected_operator TEXT NOT NULL,
		manual_operator TEXT,
		requester_ip TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create phone_searches table: %w", err)
	}

	// Create ip_searches table
	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS ip_searches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		queried_ip TEXT NOT NULL,
		country TEXT NOT NULL,
		region TEXT NOT NULL,
		city TEXT NOT NULL,
		isp TEXT NOT NULL,
		latitude REAL,
		longitude REAL,
		lookup_mode TEXT NOT NULL,
		requester_ip TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create ip_searches table: %w", err)
	}

	// Indexes for the aggregate queries
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_phone_searches_created_at ON phone_searches(created_at)`)
	if err != nil {
		return fmt.Errorf("failed to create phone_searches index: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_ip_searches_created_at ON ip_searches(created_at)`)
	if err != nil {
		return fmt.Errorf("failed to create ip_searches index: %w", err)
	}

	return nil
}
