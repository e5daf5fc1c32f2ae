package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingFiles_SortedSQLOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_indexes.sql", "001_create_schools.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- noop"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o700))

	files, err := PendingFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "001_create_schools.sql"),
		filepath.Join(dir, "002_indexes.sql"),
	}, files)
}

func TestPendingFiles_MissingDirectory(t *testing.T) {
	_, err := PendingFiles(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestVersionOf(t *testing.T) {
	assert.Equal(t, "001", versionOf("/srv/migrations/001_create_schools.sql"))
}
