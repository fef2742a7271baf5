package repositories

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"poststream/app/models"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefix for stored posts
	PostKeyPrefix = "post:"

	// Sequence key for auto-incrementing post IDs
	PostSeqKey = "seq:post"
)

var (
	ErrNotFound = errors.New("record not found")
)

// record is the stored form of a post.
type record struct {
	ID      int       `json:"id"`
	Title   string    `json:"title"`
	Message string    `json:"msg"`
	Date    time.Time `json:"date"`
}

// postKey zero-pads the ID so that keys iterate in ID order.
func postKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%010d", PostKeyPrefix, id))
}

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (int, error) {
	var id int
	item, err := txn.Get([]byte(seqKey))
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		id = 1
	case err != nil:
		return 0, err
	default:
		err = item.Value(func(val []byte) error {
			if len(val) != 4 {
				return fmt.Errorf("corrupt sequence %q", seqKey)
			}
			id = int(binary.BigEndian.Uint32(val)) + 1
			return nil
		})
		if err != nil {
			return 0, err
		}
	}

	idBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(idBytes, uint32(id))
	if err := txn.Set([]byte(seqKey), idBytes); err != nil {
		return 0, err
	}
	return id, nil
}

func marshalPost(id int, post *models.Post) ([]byte, error) {
	data, err := json.Marshal(record{
		ID:      id,
		Title:   post.Title(),
		Message: post.Message(),
		Date:    post.Date(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal post %d: %w", id, err)
	}
	return data, nil
}

// unmarshalPost decodes a record and rebuilds the post under limits.
func unmarshalPost(data []byte, limits models.Limits) (Entry, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Entry{}, fmt.Errorf("failed to unmarshal post: %w", err)
	}
	post, err := models.Restore(limits, rec.Title, rec.Message, rec.Date)
	if err != nil {
		return Entry{}, fmt.Errorf("stored post %d: %w", rec.ID, err)
	}
	return Entry{ID: rec.ID, Post: post}, nil
}
