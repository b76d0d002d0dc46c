package repository

import (
	"context"
	"database/sql"
	"fmt"

	"address-normalizer/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS gazetteer_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		prefecture TEXT NOT NULL,
		municipality TEXT NOT NULL,
		street TEXT NOT NULL DEFAULT '',
		town_area TEXT NOT NULL DEFAULT '',
		chome TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS gazetteer_entries_municipality_idx ON gazetteer_entries (municipality);
`

// SQLiteRepository stores gazetteer records in a local SQLite file, for deployments without
// PostgreSQL.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the SQLite database at path.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("repository: failed to connect to sqlite database: %w", err)
	}
	return db, nil
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// EnsureSchema creates the gazetteer table if it does not exist
func (r *SQLiteRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// InsertEntries inserts entries in a single transaction
func (r *SQLiteRepository) InsertEntries(ctx context.Context, entries []models.GazetteerEntry) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO gazetteer_entries (prefecture, municipality, street, town_area, chome) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Prefecture, e.Municipality, e.Street, e.TownArea, e.Chome); err != nil {
			return 0, fmt.Errorf("repository: failed to insert entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("repository: failed to commit entries: %w", err)
	}
	return int64(len(entries)), nil
}

// LoadEntries returns every gazetteer record in insertion order
func (r *SQLiteRepository) LoadEntries(ctx context.Context) ([]models.GazetteerEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT prefecture, municipality, street, town_area, chome FROM gazetteer_entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute gazetteer query: %w", err)
	}
	defer rows.Close()

	var entries []models.GazetteerEntry
	for rows.Next() {
		var e models.GazetteerEntry
		if err := rows.Scan(&e.Prefecture, &e.Municipality, &e.Street, &e.TownArea, &e.Chome); err != nil {
			return nil, fmt.Errorf("repository: failed to scan gazetteer entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return entries, nil
}

// CountEntries returns the number of stored gazetteer records
func (r *SQLiteRepository) CountEntries(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM gazetteer_entries").Scan(&count); err != nil {
		return 0, fmt.Errorf("repository: failed to count entries: %w", err)
	}
	return count, nil
}
