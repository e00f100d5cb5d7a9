// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest records converted rug sources in a SQLite database so
// unchanged files can be skipped on later builds.
package manifest

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/zeebo/blake3"

	"github.com/pdiddy/rug/pkg/types"
)

// DefaultPath is the manifest location used when none is configured.
const DefaultPath = ".rug/manifest.db"

// Store manages the manifest database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the manifest database at cfg.Path and creates the
// schema if it does not exist.
func Open(cfg types.ManifestConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating manifest directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			source TEXT PRIMARY KEY,
			output TEXT NOT NULL,
			hash TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Lookup returns the record for source. The boolean is false when the
// source has never been recorded.
func (s *Store) Lookup(ctx context.Context, source string) (types.Conversion, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT source, output, hash, status, error, converted_at
		 FROM conversions WHERE source = ?`, source)
	c, err := scanConversion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Conversion{}, false, nil
	}
	if err != nil {
		return types.Conversion{}, false, fmt.Errorf("looking up %s: %w", source, err)
	}
	return c, true, nil
}

// Record inserts or replaces the record for c.Source.
func (s *Store) Record(ctx context.Context, c types.Conversion) error {
	if c.ConvertedAt.IsZero() {
		c.ConvertedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (source, output, hash, status, error, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source) DO UPDATE SET
			output=excluded.output, hash=excluded.hash, status=excluded.status,
			error=excluded.error, converted_at=excluded.converted_at`,
		c.Source, c.Output, c.Hash, string(c.Status), c.Error,
		c.ConvertedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", c.Source, err)
	}
	return nil
}

// List returns every record ordered by source path.
func (s *Store) List(ctx context.Context) ([]types.Conversion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, output, hash, status, error, converted_at
		 FROM conversions ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("listing conversions: %w", err)
	}
	defer rows.Close()

	var out []types.Conversion
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Forget removes the record for source, e.g. after the source is deleted.
func (s *Store) Forget(ctx context.Context, source string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM conversions WHERE source = ?`, source); err != nil {
		return fmt.Errorf("forgetting %s: %w", source, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConversion(r rowScanner) (types.Conversion, error) {
	var (
		c         types.Conversion
		status    string
		errText   sql.NullString
		converted string
	)
	if err := r.Scan(&c.Source, &c.Output, &c.Hash, &status, &errText, &converted); err != nil {
		return types.Conversion{}, err
	}
	c.Status = types.ConversionStatus(status)
	c.Error = errText.String
	if t, err := time.Parse(time.RFC3339Nano, converted); err == nil {
		c.ConvertedAt = t
	}
	return c, nil
}

// Hash returns the BLAKE3 hex digest of data.
func Hash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
