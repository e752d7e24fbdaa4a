package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/biosim/internal/storage"
)

// CharacterStore persists character blobs in the characters table.
type CharacterStore struct {
	db    *pgxpool.Pool
	owner *Pool
}

// NewCharacterStore creates a CharacterStore backed by the given pool.
//
// Precondition: db must be a valid, open connection pool with the characters
// migration applied.
func NewCharacterStore(db *pgxpool.Pool) *CharacterStore {
	return &CharacterStore{db: db}
}

// Save inserts the blob or replaces the one already stored under rec.ID.
//
// Precondition: rec.ID must not be uuid.Nil; rec.Name must be non-empty.
// Postcondition: updated_at is set to the database clock.
func (s *CharacterStore) Save(ctx context.Context, rec storage.Record, blob []byte) error {
	if rec.ID == uuid.Nil {
		return errors.New("saving character: nil id")
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO characters (id, name, turn, dead, blob)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, turn = EXCLUDED.turn, dead = EXCLUDED.dead,
		    blob = EXCLUDED.blob, updated_at = NOW()`,
		rec.ID, rec.Name, rec.Turn, rec.Dead, blob,
	)
	if err != nil {
		return fmt.Errorf("upserting character: %w", err)
	}
	return nil
}

// Load returns the blob stored under id.
//
// Postcondition: Returns storage.ErrNotFound if no row exists.
func (s *CharacterStore) Load(ctx context.Context, id uuid.UUID) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRow(ctx, `SELECT blob FROM characters WHERE id = $1`, id).Scan(&blob)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("loading character: %w", err)
	}
	return blob, nil
}

// List returns every stored character ordered by name then id.
func (s *CharacterStore) List(ctx context.Context) ([]storage.Record, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, turn, dead, updated_at
		FROM characters ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	var out []storage.Record
	for rows.Next() {
		var r storage.Record
		if err := rows.Scan(&r.ID, &r.Name, &r.Turn, &r.Dead, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning character: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating characters: %w", err)
	}
	return out, nil
}

// Delete removes the row stored under id.
//
// Postcondition: Returns storage.ErrNotFound if no row existed.
func (s *CharacterStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM characters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Health pings the database within timeout.
func (s *CharacterStore) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.db.Ping(ctx)
}

// Close closes the pool when the store was created by Open.
// A store built with NewCharacterStore leaves the pool to its caller.
func (s *CharacterStore) Close() error {
	if s.owner != nil {
		s.owner.Close()
	}
	return nil
}
