package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"irportal/internal/domain"
	"irportal/internal/domain/models"
	"irportal/internal/domain/repositories"
)

const announcementColumns = `id, title, description, content, priority, is_published,
	published_at, created_at, updated_at`

// PostgresAnnouncementRepository implements the AnnouncementRepository interface
type PostgresAnnouncementRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewAnnouncementRepository creates a new announcement repository
func NewAnnouncementRepository(config *RepositoryConfig) repositories.AnnouncementRepository {
	return &PostgresAnnouncementRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func (r *PostgresAnnouncementRepository) List(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, error) {
	var args []interface{}
	query := fmt.Sprintf("SELECT %s FROM %s", announcementColumns, r.tables.Announcements)
	if filter.IsPublished != nil {
		args = append(args, *filter.IsPublished)
		query += " WHERE is_published = $1"
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list announcements", err)
	}
	defer rows.Close()

	announcements := []models.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, storageErr("list announcements", err)
		}
		announcements = append(announcements, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list announcements", err)
	}
	return announcements, nil
}

func (r *PostgresAnnouncementRepository) GetByID(ctx context.Context, id string) (*models.Announcement, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", announcementColumns, r.tables.Announcements)

	a, err := scanAnnouncement(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, storageErr("get announcement", err)
	}
	return a, nil
}

func (r *PostgresAnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, description, content, priority, is_published,
			published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.Announcements)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		a.ID,
		a.Title,
		a.Description,
		a.Content,
		string(a.Priority),
		a.IsPublished,
		a.PublishedAt,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("announcement %s: %w", a.ID, domain.ErrConflict)
		}
		return storageErr("create announcement", err)
	}
	return nil
}

func (r *PostgresAnnouncementRepository) Update(ctx context.Context, a *models.Announcement) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, description = $2, content = $3, priority = $4, is_published = $5,
			published_at = $6, updated_at = $7
		WHERE id = $8
	`, r.tables.Announcements)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		a.Title,
		a.Description,
		a.Content,
		string(a.Priority),
		a.IsPublished,
		a.PublishedAt,
		a.UpdatedAt,
		a.ID,
	)
	if err != nil {
		return storageErr("update announcement", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("announcement %s: %w", a.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresAnnouncementRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.tables.Announcements)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id); err != nil {
		return storageErr("delete announcement", err)
	}
	return nil
}

func scanAnnouncement(row rowScanner) (*models.Announcement, error) {
	var a models.Announcement
	var priority string
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Description,
		&a.Content,
		&priority,
		&a.IsPublished,
		&a.PublishedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Priority = models.AnnouncementPriority(priority)
	a.PublishedAt = utcPtr(a.PublishedAt)
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return &a, nil
}
