package submission

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no submission has the requested id.
var ErrNotFound = errors.New("submission not found")

// Store is the collection of submissions and its access operations.
type Store interface {
	// Create validates p, assigns an id and creation time, and persists
	// the new record before returning it.
	Create(ctx context.Context, p Payload) (*Submission, error)
	// ListAll returns every record in insertion order.
	ListAll(ctx context.Context) ([]*Submission, error)
	// GetByID returns the record with the given id or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*Submission, error)
}
