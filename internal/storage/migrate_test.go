package storage

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	names, err := fs.Glob(Migrations(""), "*.sql")
	require.NoError(t, err)
	assert.Contains(t, names, "001_kv_entries.sql")

	content, err := fs.ReadFile(Migrations(""), "001_kv_entries.sql")
	require.NoError(t, err)
	assert.Contains(t, string(content), "kv_entries")
}

func TestMigrations_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "100_extra.sql"), []byte("SELECT 1;"), 0o644))

	names, err := fs.Glob(Migrations(dir), "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{"100_extra.sql"}, names)
}

func TestMigrations_MissingDirectoryFallsBack(t *testing.T) {
	names, err := fs.Glob(Migrations(filepath.Join(t.TempDir(), "nope")), "*.sql")
	require.NoError(t, err)
	assert.Contains(t, names, "001_kv_entries.sql")
}
