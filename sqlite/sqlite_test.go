package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/MelvilleC99/profiler/sqlite"
	"github.com/stretchr/testify/require"
)

// MustOpenDB returns an open in-memory database, closed on test cleanup.
func MustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("opens an in-memory database", func(t *testing.T) {
		t.Parallel()
		MustOpenDB(t)
	})

	t.Run("reopens an existing file database", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "profiler.db")

		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		require.NoError(t, db.Close())

		db = sqlite.NewDB(path)
		require.NoError(t, db.Open())
		require.NoError(t, db.Close())
	})
}
