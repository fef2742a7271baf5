package repositories

import (
	"strings"
	"testing"
	"time"

	"poststream/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNextID(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	t.Run("first ID", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			id, err := getNextID(txn, PostSeqKey)
			assert.NoError(t, err)
			assert.Equal(t, 1, id)
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("sequential IDs", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			for i := 2; i <= 5; i++ {
				id, err := getNextID(txn, PostSeqKey)
				assert.NoError(t, err)
				assert.Equal(t, i, id)
			}
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("persistence across transactions", func(t *testing.T) {
		for want := 1; want <= 2; want++ {
			err := db.Update(func(txn *badger.Txn) error {
				id, err := getNextID(txn, "test:seq")
				assert.NoError(t, err)
				assert.Equal(t, want, id)
				return nil
			})
			assert.NoError(t, err)
		}
	})

	t.Run("corrupt sequence", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			require.NoError(t, txn.Set([]byte("bad:seq"), []byte{1}))
			_, err := getNextID(txn, "bad:seq")
			return err
		})
		assert.Error(t, err)
	})
}

func TestPostKeyOrdering(t *testing.T) {
	assert.Equal(t, "post:0000000007", string(postKey(7)))
	assert.Less(t, string(postKey(9)), string(postKey(10)))
}

func TestMarshalPost(t *testing.T) {
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	post, err := models.Restore(models.DefaultLimits(), "Title", "Body", at)
	require.NoError(t, err)

	data, err := marshalPost(3, post)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"title":"Title","msg":"Body","date":"2024-05-06T07:08:09Z"}`, string(data))

	t.Run("restores under the given limits", func(t *testing.T) {
		entry, err := unmarshalPost(data, models.DefaultLimits())
		require.NoError(t, err)
		assert.Equal(t, 3, entry.ID)
		assert.Equal(t, "Title", entry.Post.Title())
		assert.Equal(t, "Body", entry.Post.Message())
		assert.True(t, at.Equal(entry.Post.Date()))
	})

	t.Run("record over the current limits", func(t *testing.T) {
		_, err := unmarshalPost(data, models.Limits{MaxTitleLen: 2, MaxPostLen: 2})
		assert.ErrorIs(t, err, models.ErrTitleTooLong)
		assert.True(t, strings.HasPrefix(err.Error(), "stored post 3"))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := unmarshalPost([]byte(`{"id":1,invalid json}`), models.DefaultLimits())
		assert.Error(t, err)
	})
}
