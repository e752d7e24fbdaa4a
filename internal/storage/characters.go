package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/biosim/internal/content"
	"github.com/cory-johannsen/biosim/internal/game/character"
	"github.com/cory-johannsen/biosim/internal/save"
)

// SaveCharacter encodes c and stores it under c.ID.
func SaveCharacter(ctx context.Context, st Store, c *character.Character) error {
	blob, err := save.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding character %s: %w", c.ID, err)
	}
	h := save.HeaderOf(c)
	rec := Record{ID: c.ID, Name: h.Name, Turn: h.Turn, Dead: h.Dead}
	if err := st.Save(ctx, rec, blob); err != nil {
		return fmt.Errorf("saving character %s: %w", c.ID, err)
	}
	return nil
}

// LoadCharacter fetches and decodes the character stored under id.
//
// Postcondition: returns an error wrapping ErrNotFound when id is unknown.
func LoadCharacter(ctx context.Context, st Store, id uuid.UUID, cat *content.Catalog, logger *zap.Logger) (*character.Character, error) {
	blob, err := st.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading character %s: %w", id, err)
	}
	c, err := save.Unmarshal(blob, cat, logger)
	if err != nil {
		return nil, fmt.Errorf("decoding character %s: %w", id, err)
	}
	return c, nil
}
