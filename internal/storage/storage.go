// Package storage persists character save blobs.
//
// Stores hold opaque blobs produced by the save package together with a few
// header fields used for listing. They never decode the blob themselves.
package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no blob is stored under the requested ID.
var ErrNotFound = errors.New("character not found")

// Record describes one stored character without its blob.
type Record struct {
	ID        uuid.UUID
	Name      string
	Turn      int
	Dead      bool
	UpdatedAt time.Time
}

// Store is a keyed blob store for saved characters.
type Store interface {
	// Save inserts or replaces the blob for rec.ID.
	//
	// Postcondition: a subsequent Load(rec.ID) returns blob.
	Save(ctx context.Context, rec Record, blob []byte) error
	// Load returns the blob stored under id, or ErrNotFound.
	Load(ctx context.Context, id uuid.UUID) ([]byte, error)
	// List returns every stored record ordered by name then ID.
	List(ctx context.Context) ([]Record, error)
	// Delete removes the blob stored under id, or returns ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
	// Close releases the store's resources.
	Close() error
}

type memEntry struct {
	rec  Record
	blob []byte
}

// Memory is an in-process Store. It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]memEntry
	now     func() time.Time
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[uuid.UUID]memEntry), now: time.Now}
}

func (m *Memory) Save(_ context.Context, rec Record, blob []byte) error {
	rec.UpdatedAt = m.now().UTC()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[rec.ID] = memEntry{rec: rec, blob: append([]byte(nil), blob...)}
	return nil
}

func (m *Memory) Load(_ context.Context, id uuid.UUID) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), e.blob...), nil
}

func (m *Memory) List(_ context.Context) ([]Record, error) {
	m.mu.RLock()
	out := make([]Record, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.rec)
	}
	m.mu.RUnlock()
	SortRecords(out)
	return out, nil
}

func (m *Memory) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *Memory) Close() error { return nil }

// SortRecords orders records by name, breaking ties on ID.
func SortRecords(rs []Record) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Name != rs[j].Name {
			return rs[i].Name < rs[j].Name
		}
		return rs[i].ID.String() < rs[j].ID.String()
	})
}
