package repositories

import (
	"testing"

	"poststream/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *BadgerPostRepository {
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBadgerPostRepository(db, models.DefaultLimits())
}

func mustPost(t *testing.T, title, msg string) *models.Post {
	post, err := models.New(title, msg)
	require.NoError(t, err)
	return post
}

func TestPostRepository(t *testing.T) {
	repo := newTestRepository(t)

	t.Run("create and get post", func(t *testing.T) {
		post := mustPost(t, "Test Post", "This is a test post content")

		id, err := repo.Create(post)
		require.NoError(t, err)
		assert.Greater(t, id, 0)

		entry, err := repo.GetByID(id)
		require.NoError(t, err)
		assert.Equal(t, id, entry.ID)
		assert.Equal(t, post.Title(), entry.Post.Title())
		assert.Equal(t, post.Message(), entry.Post.Message())
		assert.True(t, post.Date().Equal(entry.Post.Date()))
	})

	t.Run("get missing post", func(t *testing.T) {
		_, err := repo.GetByID(999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update post keeps its date", func(t *testing.T) {
		post := mustPost(t, "Original Title", "Original content")
		id, err := repo.Create(post)
		require.NoError(t, err)

		require.NoError(t, post.UpdateTitle("Updated Title"))
		require.NoError(t, post.UpdateMessage("Updated content"))
		require.NoError(t, repo.Update(id, post))

		entry, err := repo.GetByID(id)
		require.NoError(t, err)
		assert.Equal(t, "Updated Title", entry.Post.Title())
		assert.Equal(t, "Updated content", entry.Post.Message())
		assert.True(t, post.Date().Equal(entry.Post.Date()))
	})

	t.Run("update missing post", func(t *testing.T) {
		err := repo.Update(999, mustPost(t, "Title", "Body"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete post", func(t *testing.T) {
		id, err := repo.Create(mustPost(t, "Post to Delete", "This post will be deleted"))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(id))

		_, err = repo.GetByID(id)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repo.Delete(id), ErrNotFound)
	})
}

func TestPostRepositoryList(t *testing.T) {
	repo := newTestRepository(t)

	var ids []int
	for i := 0; i < 12; i++ {
		id, err := repo.Create(mustPost(t, "List Test Post", "Content for list test"))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	t.Run("first page in ID order", func(t *testing.T) {
		entries, err := repo.List(5, 0)
		require.NoError(t, err)
		require.Len(t, entries, 5)
		for i, entry := range entries {
			assert.Equal(t, ids[i], entry.ID)
		}
	})

	t.Run("offset crosses the ninth ID", func(t *testing.T) {
		entries, err := repo.List(5, 8)
		require.NoError(t, err)
		require.Len(t, entries, 4)
		assert.Equal(t, ids[8], entries[0].ID)
		assert.Equal(t, ids[11], entries[3].ID)
	})

	t.Run("offset past the end", func(t *testing.T) {
		entries, err := repo.List(5, 100)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("stored post over tightened limits", func(t *testing.T) {
		strict := NewBadgerPostRepository(repo.db, models.Limits{MaxTitleLen: 4, MaxPostLen: 500})
		_, err := strict.List(5, 0)
		assert.ErrorIs(t, err, models.ErrTitleTooLong)
	})
}
