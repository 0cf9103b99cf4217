package book

import (
	"context"
)

// Repository defines the contract for book storage.
type Repository interface {
	// Search returns all books when query is empty, otherwise books whose
	// title or author contains query as a literal substring.
	Search(ctx context.Context, query string) ([]Book, error)
	// Create inserts an already-validated form and returns the stored row
	// with its assigned identifier.
	Create(ctx context.Context, form CreateBookForm) (Book, error)
}
