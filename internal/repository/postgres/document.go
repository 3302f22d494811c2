package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"irportal/internal/domain"
	"irportal/internal/domain/models"
	"irportal/internal/domain/repositories"
)

const documentColumns = `id, title, type, description, fiscal_year, file_url, file_name,
	file_size, downloads, version, metadata, created_at, updated_at`

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// List returns documents matching the filter, newest first
func (r *PostgresDocumentRepository) List(ctx context.Context, filter models.DocumentFilter) ([]models.Document, error) {
	var where []string
	var args []interface{}

	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.FiscalYear != nil {
		args = append(args, *filter.FiscalYear)
		where = append(where, fmt.Sprintf("fiscal_year = $%d", len(args)))
	}

	query := fmt.Sprintf("SELECT %s FROM %s", documentColumns, r.tables.Documents)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	return r.query(ctx, "list documents", query, args...)
}

// GetByID retrieves a document by ID. Returns nil, nil when absent.
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", documentColumns, r.tables.Documents)

	doc, err := scanDocument(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, storageErr("get document", err)
	}
	return doc, nil
}

// Create inserts a fully populated document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, type, description, fiscal_year, file_url, file_name,
			file_size, downloads, version, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, r.tables.Documents)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		doc.ID,
		doc.Title,
		string(doc.Type),
		doc.Description,
		doc.FiscalYear,
		doc.FileURL,
		doc.FileName,
		doc.FileSize,
		doc.Downloads,
		doc.Version,
		doc.Metadata,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("document %s: %w", doc.ID, domain.ErrConflict)
		}
		return storageErr("create document", err)
	}
	return nil
}

// Update overwrites every mutable column of an existing document
func (r *PostgresDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, type = $2, description = $3, fiscal_year = $4, file_url = $5,
			file_name = $6, file_size = $7, version = $8, metadata = $9, updated_at = $10
		WHERE id = $11
	`, r.tables.Documents)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		doc.Title,
		string(doc.Type),
		doc.Description,
		doc.FiscalYear,
		doc.FileURL,
		doc.FileName,
		doc.FileSize,
		doc.Version,
		doc.Metadata,
		doc.UpdatedAt,
		doc.ID,
	)
	if err != nil {
		return storageErr("update document", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a document; a missing row is not an error
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.tables.Documents)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id); err != nil {
		return storageErr("delete document", err)
	}
	return nil
}

// IncrementDownloads adds one download in a single statement
func (r *PostgresDocumentRepository) IncrementDownloads(ctx context.Context, id string, at time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET downloads = downloads + 1, updated_at = $1
		WHERE id = $2
	`, r.tables.Documents)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, at, id)
	if err != nil {
		return storageErr("increment downloads", err)
	}
	if result.RowsAffected() == 0 {
		r.logger.Debug("download counted for missing document", "id", id)
	}
	return nil
}

// Search matches title or description case-insensitively, newest first
func (r *PostgresDocumentRepository) Search(ctx context.Context, query string) ([]models.Document, error) {
	sql := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE lower(title) LIKE lower($1) ESCAPE '\' OR lower(description) LIKE lower($1) ESCAPE '\'
		ORDER BY created_at DESC, id
	`, documentColumns, r.tables.Documents)

	return r.query(ctx, "search documents", sql, "%"+escapeLike(query)+"%")
}

func (r *PostgresDocumentRepository) query(ctx context.Context, op, sql string, args ...interface{}) ([]models.Document, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	documents := []models.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, storageErr(op, err)
		}
		documents = append(documents, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return documents, nil
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var doc models.Document
	var docType string
	var fiscalYear *int32
	err := row.Scan(
		&doc.ID,
		&doc.Title,
		&docType,
		&doc.Description,
		&fiscalYear,
		&doc.FileURL,
		&doc.FileName,
		&doc.FileSize,
		&doc.Downloads,
		&doc.Version,
		&doc.Metadata,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	doc.Type = models.DocumentType(docType)
	if fiscalYear != nil {
		year := int(*fiscalYear)
		doc.FiscalYear = &year
	}
	if doc.Metadata == nil {
		doc.Metadata = models.JSONMap{}
	}
	doc.CreatedAt = doc.CreatedAt.UTC()
	doc.UpdatedAt = doc.UpdatedAt.UTC()
	return &doc, nil
}
