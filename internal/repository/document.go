package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Aasthak07/QuillStack-AI/internal/model"
)

// ErrDuplicateKey is returned when a uniqueness constraint is violated.
// Implementations wrap it so callers can test with errors.Is.
var ErrDuplicateKey = errors.New("duplicate key")

// DocumentRepository defines data access for documentation records using SQL
// queries only. No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns a page of documents ordered by creation time descending,
	// plus the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)

	// UpdateContent replaces the documentation text after a manual edit and
	// records the new version and modification time.
	UpdateContent(ctx context.Context, id, content, version string, lastModified time.Time) (*model.Document, error)

	// UpdateGenerated replaces the documentation text after a regeneration,
	// refreshing version, generation time, and word count.
	UpdateGenerated(ctx context.Context, id, content, version string, generatedAt time.Time, wordCount int) (*model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
