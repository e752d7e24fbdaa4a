package storage_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/biosim/internal/content"
	"github.com/cory-johannsen/biosim/internal/game/character"
	"github.com/cory-johannsen/biosim/internal/game/trait"
	"github.com/cory-johannsen/biosim/internal/save"
	"github.com/cory-johannsen/biosim/internal/storage"
)

func TestMemory_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	id := uuid.New()

	_, err := st.Load(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	blob := []byte{1, 2, 3}
	require.NoError(t, st.Save(ctx, storage.Record{ID: id, Name: "Ash", Turn: 4}, blob))
	blob[0] = 9

	got, err := st.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	require.NoError(t, st.Delete(ctx, id))
	assert.ErrorIs(t, st.Delete(ctx, id), storage.ErrNotFound)
}

func TestMemory_ListOrdersByName(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	for _, name := range []string{"Wren", "Ash", "Moss"} {
		require.NoError(t, st.Save(ctx, storage.Record{ID: uuid.New(), Name: name}, nil))
	}
	recs, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "Ash", recs[0].Name)
	assert.Equal(t, "Moss", recs[1].Name)
	assert.Equal(t, "Wren", recs[2].Name)
	assert.False(t, recs[0].UpdatedAt.IsZero())
}

func TestSaveCharacter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cat, err := content.Default()
	require.NoError(t, err)
	c := character.New(cat, "Ash", nil)
	c.Traits.Add(trait.Optimistic)
	c.Turn = 12

	st := storage.NewMemory()
	require.NoError(t, storage.SaveCharacter(ctx, st, c))

	recs, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, c.ID, recs[0].ID)
	assert.Equal(t, 12, recs[0].Turn)

	got, err := storage.LoadCharacter(ctx, st, c.ID, cat, nil)
	require.NoError(t, err)
	assert.Equal(t, save.Snapshot(c), save.Snapshot(got))
}

func TestLoadCharacter_NotFound(t *testing.T) {
	cat, err := content.Default()
	require.NoError(t, err)
	_, err = storage.LoadCharacter(context.Background(), storage.NewMemory(), uuid.New(), cat, nil)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
