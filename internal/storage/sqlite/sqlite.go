// Package sqlite stores character blobs in a local SQLite file using the
// pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/cory-johannsen/biosim/internal/storage"
)

// Store is a storage.Store over a single SQLite database file.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens the database at path and ensures the schema exists.
//
// Precondition: path must be non-empty.
// Postcondition: the parent directory of path exists.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite: empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: creating directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("sqlite: %s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS characters (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			turn INTEGER NOT NULL DEFAULT 0,
			dead INTEGER NOT NULL DEFAULT 0,
			blob BLOB NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_characters_name ON characters(name);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("sqlite: schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Save(ctx context.Context, rec storage.Record, blob []byte) error {
	if rec.ID == uuid.Nil {
		return errors.New("sqlite: nil id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO characters (id, name, turn, dead, blob, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, turn = excluded.turn, dead = excluded.dead,
			blob = excluded.blob, updated_at = excluded.updated_at`,
		rec.ID.String(), rec.Name, rec.Turn, rec.Dead, blob,
		s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: upserting character: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, id uuid.UUID) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `SELECT blob FROM characters WHERE id = ?`, id.String()).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("sqlite: loading character: %w", err)
	}
	return blob, nil
}

func (s *Store) List(ctx context.Context) ([]storage.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, turn, dead, updated_at FROM characters ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing characters: %w", err)
	}
	defer rows.Close()

	var out []storage.Record
	for rows.Next() {
		var (
			r      storage.Record
			id, ts string
		)
		if err := rows.Scan(&id, &r.Name, &r.Turn, &r.Dead, &ts); err != nil {
			return nil, fmt.Errorf("sqlite: scanning character: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("sqlite: bad id %q: %w", id, err)
		}
		if r.UpdatedAt, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("sqlite: bad updated_at %q: %w", ts, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating characters: %w", err)
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("sqlite: deleting character: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: deleting character: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
