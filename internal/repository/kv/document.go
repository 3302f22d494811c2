package kv

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"irportal/internal/domain/models"
	"irportal/internal/domain/repositories"
)

type documentRepository struct {
	docs   *collection[models.Document]
	logger *slog.Logger
}

// NewDocumentRepository creates a document repository over a Redis hash
func NewDocumentRepository(cfg *Config) repositories.DocumentRepository {
	return &documentRepository{
		docs:   newCollection[models.Document](cfg.Client, cfg.Prefix, string(models.KindDocument)),
		logger: cfg.Logger,
	}
}

func (r *documentRepository) List(ctx context.Context, filter models.DocumentFilter) ([]models.Document, error) {
	all, err := r.docs.all(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Document, 0, len(all))
	for i := range all {
		if filter.Matches(&all[i]) {
			out = append(out, all[i])
		}
	}
	sortDocuments(out)
	return out, nil
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	return r.docs.get(ctx, id)
}

func (r *documentRepository) Create(ctx context.Context, doc *models.Document) error {
	return r.docs.insert(ctx, doc.ID, doc)
}

func (r *documentRepository) Update(ctx context.Context, doc *models.Document) error {
	return r.docs.replace(ctx, doc.ID, doc)
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	return r.docs.remove(ctx, id)
}

// IncrementDownloads bumps the counter inside WATCH/MULTI so concurrent
// downloads are never lost
func (r *documentRepository) IncrementDownloads(ctx context.Context, id string, at time.Time) error {
	return r.docs.mutate(ctx, "increment downloads", id, func(doc *models.Document, _ []models.Document) (*models.Document, error) {
		if doc == nil {
			r.logger.Debug("download counted for missing document", "id", id)
			return nil, errSkip
		}
		doc.Downloads++
		doc.UpdatedAt = at
		return doc, nil
	}, false)
}

func (r *documentRepository) Search(ctx context.Context, query string) ([]models.Document, error) {
	all, err := r.docs.all(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	out := []models.Document{}
	for _, doc := range all {
		if strings.Contains(strings.ToLower(doc.Title), needle) ||
			strings.Contains(strings.ToLower(doc.Description), needle) {
			out = append(out, doc)
		}
	}
	sortDocuments(out)
	return out, nil
}

func sortDocuments(docs []models.Document) {
	sortNewestFirst(docs, func(d *models.Document) (time.Time, string) { return d.CreatedAt, d.ID })
}
