package testutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/biosim/internal/testutil"
)

func TestMigrationsDir_FindsRepositoryMigrations(t *testing.T) {
	dir, err := testutil.MigrationsDir()
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "000001_create_characters.up.sql"))
	assert.NoError(t, err)
}
