package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	conn *sql.DB
}

type Config struct {
	Path string
}

func NewDB(config Config) (*DB, error) {
	conn, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

func (db *DB) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS decks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		source_url TEXT,
		duration REAL NOT NULL DEFAULT 0,
		slide_count INTEGER NOT NULL DEFAULT 0,
		format TEXT NOT NULL,
		output_path TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS slides (
		id TEXT PRIMARY KEY,
		deck_id TEXT NOT NULL REFERENCES decks(id) ON DELETE CASCADE,
		number INTEGER NOT NULL,
		start_time REAL NOT NULL,
		end_time REAL NOT NULL,
		screenshot_path TEXT,
		transcript TEXT,
		enhanced_text TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_slides_deck ON slides(deck_id, number);
	`

	_, err := db.conn.Exec(query)
	return err
}

func (db *DB) Conn() *sql.DB {
	return db.conn
}

// RunMigrations applies pending .sql migrations from the given directory.
func (db *DB) RunMigrations(migrationsPath string) error {
	return NewMigrator(db.conn).Run(migrationsPath)
}

func (db *DB) Close() error {
	return db.conn.Close()
}
