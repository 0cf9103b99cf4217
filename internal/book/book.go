package book

import "fmt"

// Book represents a persisted catalog entry. Every stored Book satisfies the
// field constraints enforced by Validate; validation gates insertion.
type Book struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	Price     int    `json:"price"`
	ISBN      string `json:"isbn"`
}

// CreateBookForm carries the fields of a single creation request. It exists
// only for the duration of a submission; callers must have validated the raw
// input first.
type CreateBookForm struct {
	Title     string
	Author    string
	Publisher string
	Price     int
	ISBN      string
}

// PersistenceError is a storage-layer failure: connection loss, pool
// exhaustion, constraint violation. Retryable by resubmitting.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
