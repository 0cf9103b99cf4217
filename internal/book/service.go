package book

import (
	"context"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search returns books matching the query; empty query returns all.
func (s *Service) Search(ctx context.Context, query string) ([]Book, error) {
	return s.repo.Search(ctx, query)
}

// Create persists a validated form and returns the stored book.
func (s *Service) Create(ctx context.Context, form CreateBookForm) (Book, error) {
	return s.repo.Create(ctx, form)
}
