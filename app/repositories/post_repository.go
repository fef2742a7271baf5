package repositories

import (
	"errors"

	"poststream/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db     *badger.DB
	limits models.Limits
}

// NewBadgerPostRepository creates a repository whose loaded posts are
// checked against limits.
func NewBadgerPostRepository(db *badger.DB, limits models.Limits) *BadgerPostRepository {
	return &BadgerPostRepository{db: db, limits: limits}
}

// Create stores a new post and returns its ID
func (r *BadgerPostRepository) Create(post *models.Post) (int, error) {
	var id int
	err := r.db.Update(func(txn *badger.Txn) error {
		var err error
		id, err = getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		data, err := marshalPost(id, post)
		if err != nil {
			return err
		}
		return txn.Set(postKey(id), data)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id int) (Entry, error) {
	var entry Entry
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(postKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			entry, err = unmarshalPost(val, r.limits)
			return err
		})
	})
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns up to limit posts in ID order, skipping the first offset
func (r *BadgerPostRepository) List(limit, offset int) ([]Entry, error) {
	var entries []Entry
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(PostKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		skipped := 0
		for it.Rewind(); it.Valid() && len(entries) < limit; it.Next() {
			if skipped < offset {
				skipped++
				continue
			}
			err := it.Item().Value(func(val []byte) error {
				entry, err := unmarshalPost(val, r.limits)
				if err != nil {
					return err
				}
				entries = append(entries, entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Update overwrites an existing post
func (r *BadgerPostRepository) Update(id int, post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(postKey(id)); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		data, err := marshalPost(id, post)
		if err != nil {
			return err
		}
		return txn.Set(postKey(id), data)
	})
}

// Delete deletes a post by ID
func (r *BadgerPostRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(postKey(id)); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(postKey(id))
	})
}
