package repositories

import "poststream/app/models"

// Entry is a stored post together with its ID.
type Entry struct {
	ID   int
	Post *models.Post
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) (int, error)
	GetByID(id int) (Entry, error)
	List(limit, offset int) ([]Entry, error)
	Update(id int, post *models.Post) error
	Delete(id int) error
}
