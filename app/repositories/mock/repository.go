package mock

import (
	"sort"
	"sync"

	"poststream/app/models"
	"poststream/app/repositories"
)

// PostRepository is an in-memory repositories.PostRepository.
type PostRepository struct {
	posts  map[int]*models.Post
	nextID int
	mutex  sync.RWMutex

	// Err, when set, is returned by every call.
	Err error
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int]*models.Post),
		nextID: 1,
	}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.posts = make(map[int]*models.Post)
	m.nextID = 1
}

func (m *PostRepository) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.posts)
}

func (m *PostRepository) Create(post *models.Post) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return 0, m.Err
	}
	id := m.nextID
	m.nextID++
	m.posts[id] = clone(post)
	return id, nil
}

func (m *PostRepository) GetByID(id int) (repositories.Entry, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return repositories.Entry{}, m.Err
	}
	post, exists := m.posts[id]
	if !exists {
		return repositories.Entry{}, repositories.ErrNotFound
	}
	return repositories.Entry{ID: id, Post: clone(post)}, nil
}

func (m *PostRepository) List(limit, offset int) ([]repositories.Entry, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	ids := make([]int, 0, len(m.posts))
	for id := range m.posts {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var entries []repositories.Entry
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(entries) == limit {
			break
		}
		entries = append(entries, repositories.Entry{ID: id, Post: clone(m.posts[id])})
	}
	return entries, nil
}

func (m *PostRepository) Update(id int, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	m.posts[id] = clone(post)
	return nil
}

func (m *PostRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

// clone keeps stored posts isolated from callers, like a real store.
func clone(post *models.Post) *models.Post {
	c := *post
	return &c
}
