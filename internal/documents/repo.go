package documents

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a document is absent or owned by someone
	// else; the two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidInput is returned for missing or malformed fields.
	ErrInvalidInput = errors.New("invalid input")
)

// Repo defines persistence operations for documents. Every operation is
// scoped by the owning user id.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userID, documentID string) (Document, error)
	ListByUser(ctx context.Context, userID string) ([]Document, error)
	// Delete removes the document only when (id, owner) match and reports
	// how many rows went away. A foreign or missing id yields 0, not an error.
	Delete(ctx context.Context, userID, documentID string) (int64, error)
}
