package service

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"poststream/app/models"
	"poststream/app/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func openTestDB(t *testing.T) *badger.DB {
	db, err := repositories.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBackupAndRestore(t *testing.T) {
	limits := models.DefaultLimits()
	file := filepath.Join(t.TempDir(), "backup.db")

	source := openTestDB(t)
	published, err := NewPostService(source, limits, discard).Publish("Backed up", "This post survives a restore")
	require.NoError(t, err)

	require.NoError(t, Backup(source, file))

	target := openTestDB(t)
	require.NoError(t, Restore(target, file))

	service := NewPostService(target, limits, discard)
	entry, err := service.Get(published.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backed up", entry.Post.Title())
	assert.Equal(t, "This post survives a restore", entry.Post.Message())
	assert.True(t, published.Post.Date().Equal(entry.Post.Date()))

	t.Run("sequence continues after restore", func(t *testing.T) {
		next, err := service.Publish("Next", "After the restore")
		require.NoError(t, err)
		assert.Equal(t, published.ID+1, next.ID)
	})
}

func TestRestoreErrors(t *testing.T) {
	db := openTestDB(t)

	t.Run("missing file", func(t *testing.T) {
		err := Restore(db, filepath.Join(t.TempDir(), "nope.db"))
		assert.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "empty.db")
		require.NoError(t, os.WriteFile(file, nil, 0600))

		err := Restore(db, file)
		assert.ErrorIs(t, err, ErrEmptyBackup)
	})
}

func TestBackupUnwritablePath(t *testing.T) {
	db := openTestDB(t)
	err := Backup(db, filepath.Join(t.TempDir(), "missing", "dir", "backup.db"))
	assert.Error(t, err)
}
