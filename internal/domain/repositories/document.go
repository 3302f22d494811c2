package repositories

import (
	"context"
	"time"

	"irportal/internal/domain/models"
)

// DocumentRepository defines data access operations for documents
type DocumentRepository interface {
	// List returns documents matching the filter, newest first
	List(ctx context.Context, filter models.DocumentFilter) ([]models.Document, error)

	// GetByID retrieves a document by ID. Returns nil, nil when absent.
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// Create stores a fully populated document
	Create(ctx context.Context, doc *models.Document) error

	// Update overwrites an existing document (wraps domain.ErrNotFound if missing)
	Update(ctx context.Context, doc *models.Document) error

	// Delete removes a document. Deleting an absent document is not an error.
	Delete(ctx context.Context, id string) error

	// IncrementDownloads atomically adds one download and refreshes updated_at.
	// No-op when the document does not exist.
	IncrementDownloads(ctx context.Context, id string, at time.Time) error

	// Search matches query case-insensitively against title or description
	Search(ctx context.Context, query string) ([]models.Document, error)
}
