package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"address-normalizer/internal/config"
	"address-normalizer/internal/loader"
	"address-normalizer/internal/models"
	"address-normalizer/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// gazetteerStore is the write side of a gazetteer repository.
type gazetteerStore interface {
	EnsureSchema(ctx context.Context) error
	InsertEntries(ctx context.Context, entries []models.GazetteerEntry) (int64, error)
	CountEntries(ctx context.Context) (int, error)
}

func main() {
	file := flag.String("file", "", "Path to the gazetteer CSV file to import")
	encoding := flag.String("encoding", "", "CSV character encoding (utf-8 or shift_jis); defaults to gazetteer.encoding")
	sqlitePath := flag.String("sqlite", "", "Import into this SQLite file instead of PostgreSQL")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

	if *file == "" {
		log.Fatal().Msg("--file flag is required")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	if *encoding == "" {
		*encoding = cfg.Gazetteer.Encoding
	}

	ctx := context.Background()

	log.Info().Str("file", *file).Str("encoding", *encoding).Msg("starting import")
	entries, err := loader.NewCSVSource(*file, *encoding).LoadEntries(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse CSV")
	}
	log.Info().Int("records", len(entries)).Msg("parsed records")

	var store gazetteerStore
	if *sqlitePath != "" {
		db, err := repository.OpenSQLite(*sqlitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot open sqlite database")
		}
		defer db.Close()
		store = repository.NewSQLiteRepository(db)
	} else {
		conn, err := pgx.Connect(ctx, cfg.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close(ctx)
		store = repository.NewRepository(conn)
	}

	if err := importEntries(ctx, store, entries); err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}
	log.Info().Int("records", len(entries)).Msg("import complete")
}

// importEntries appends entries to store and checks the table holds exactly what was sent,
// so run it against an empty table.
func importEntries(ctx context.Context, store gazetteerStore, entries []models.GazetteerEntry) error {
	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	inserted, err := store.InsertEntries(ctx, entries)
	if err != nil {
		return fmt.Errorf("failed to insert records: %w", err)
	}
	if inserted != int64(len(entries)) {
		return fmt.Errorf("inserted %d of %d records", inserted, len(entries))
	}

	count, err := store.CountEntries(ctx)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}
	if count != len(entries) {
		return fmt.Errorf("record count mismatch: expected %d, got %d", len(entries), count)
	}
	return nil
}
