package repository

import (
	"context"
	"fmt"

	"address-normalizer/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresSchema creates the gazetteer table. The five columns mirror models.GazetteerEntry;
// id keeps the load order the city → prefecture index depends on.
const PostgresSchema = `
	CREATE TABLE IF NOT EXISTS gazetteer_entries (
		id BIGSERIAL PRIMARY KEY,
		prefecture VARCHAR(255) NOT NULL,
		municipality VARCHAR(255) NOT NULL,
		street VARCHAR(255) NOT NULL DEFAULT '',
		town_area VARCHAR(255) NOT NULL DEFAULT '',
		chome VARCHAR(255) NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS gazetteer_entries_municipality_idx ON gazetteer_entries (municipality);
`

var gazetteerColumns = []string{"prefecture", "municipality", "street", "town_area", "chome"}

// DBTX is satisfied by both *pgx.Conn and *pgxpool.Pool.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Repository stores gazetteer records in PostgreSQL
type Repository struct {
	db DBTX
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db DBTX) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the gazetteer table and its index if they do not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, PostgresSchema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// InsertEntries bulk-loads entries with COPY
func (r *Repository) InsertEntries(ctx context.Context, entries []models.GazetteerEntry) (int64, error) {
	n, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"gazetteer_entries"},
		gazetteerColumns,
		pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
			e := entries[i]
			return []any{e.Prefecture, e.Municipality, e.Street, e.TownArea, e.Chome}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to copy entries: %w", err)
	}
	return n, nil
}

// LoadEntries returns every gazetteer record in insertion order
func (r *Repository) LoadEntries(ctx context.Context) ([]models.GazetteerEntry, error) {
	sql := `
		SELECT
			prefecture,
			municipality,
			street,
			town_area,
			chome
		FROM gazetteer_entries
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute gazetteer query: %w", err)
	}
	defer rows.Close()

	var entries []models.GazetteerEntry
	for rows.Next() {
		var e models.GazetteerEntry
		err := rows.Scan(
			&e.Prefecture,
			&e.Municipality,
			&e.Street,
			&e.TownArea,
			&e.Chome,
		)
		if err != nil {
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
func (r *Repository) CountEntries(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM gazetteer_entries").Scan(&count); err != nil {
		return 0, fmt.Errorf("repository: failed to count entries: %w", err)
	}
	return count, nil
}
