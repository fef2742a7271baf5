package services

import (
	"fmt"
	"log/slog"

	"poststream/app/models"
	"poststream/app/repositories"
)

const defaultPerPage = 10

// PostService handles business logic for posts
type PostService struct {
	repo   repositories.PostRepository
	limits models.Limits
	clock  models.Clock
	log    *slog.Logger
}

// NewPostService creates a PostService. A nil clock means time.Now.
func NewPostService(repo repositories.PostRepository, limits models.Limits, clock models.Clock, log *slog.Logger) *PostService {
	return &PostService{
		repo:   repo,
		limits: limits,
		clock:  clock,
		log:    log,
	}
}

// Publish validates and stores a new post
func (s *PostService) Publish(title, msg string) (repositories.Entry, error) {
	post, err := s.limits.NewPost(title, msg, s.clock)
	if err != nil {
		return repositories.Entry{}, fmt.Errorf("invalid post: %w", err)
	}

	id, err := s.repo.Create(post)
	if err != nil {
		return repositories.Entry{}, fmt.Errorf("failed to store post: %w", err)
	}
	s.log.Info("Post published", "id", id, "title", post.Title())
	return repositories.Entry{ID: id, Post: post}, nil
}

// Get retrieves a post by ID
func (s *PostService) Get(id int) (repositories.Entry, error) {
	return s.repo.GetByID(id)
}

// List retrieves a page of posts
func (s *PostService) List(page, perPage int) ([]repositories.Entry, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	return s.repo.List(perPage, (page-1)*perPage)
}

// Edit replaces the title and/or the message of a stored post. Nil fields
// are left alone. Nothing is stored unless every given field is valid.
func (s *PostService) Edit(id int, title, msg *string) (repositories.Entry, error) {
	entry, err := s.repo.GetByID(id)
	if err != nil {
		return repositories.Entry{}, err
	}

	if title != nil {
		if err := entry.Post.UpdateTitle(*title); err != nil {
			return repositories.Entry{}, fmt.Errorf("invalid post: %w", err)
		}
	}
	if msg != nil {
		if err := entry.Post.UpdateMessage(*msg); err != nil {
			return repositories.Entry{}, fmt.Errorf("invalid post: %w", err)
		}
	}

	if err := s.repo.Update(id, entry.Post); err != nil {
		return repositories.Entry{}, fmt.Errorf("failed to update post %d: %w", id, err)
	}
	s.log.Info("Post edited", "id", id, "title_changed", title != nil, "message_changed", msg != nil)
	return entry, nil
}

func (s *PostService) EditTitle(id int, title string) (repositories.Entry, error) {
	return s.Edit(id, &title, nil)
}

func (s *PostService) EditMessage(id int, msg string) (repositories.Entry, error) {
	return s.Edit(id, nil, &msg)
}

// Delete deletes a post
func (s *PostService) Delete(id int) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.log.Info("Post deleted", "id", id)
	return nil
}

// Render returns the boxed rendering of a stored post
func (s *PostService) Render(id int) (string, error) {
	entry, err := s.repo.GetByID(id)
	if err != nil {
		return "", err
	}
	return entry.Post.Render(), nil
}
