package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("invalid path", func(t *testing.T) {
		db, err := New("invalid/path/to/shorturl.db")

		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("creates database file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "shorturl.db")

		db, err := New(path)

		assert.NoError(t, err)
		require.NotNil(t, db)
		t.Cleanup(func() {
			db.Close()
		})

		assert.FileExists(t, path)
	})
}

func TestRunMigrations(t *testing.T) {
	t.Run("applies schema", func(t *testing.T) {
		db, err := New(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() {
			db.Close()
		})

		assert.NoError(t, RunMigrations(db))

		var name string
		err = db.Get(&name, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'urls'`)

		assert.NoError(t, err)
		assert.Equal(t, "urls", name)
	})

	t.Run("idempotent", func(t *testing.T) {
		db, err := New(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() {
			db.Close()
		})

		assert.NoError(t, RunMigrations(db))
		assert.NoError(t, RunMigrations(db))
	})
}
