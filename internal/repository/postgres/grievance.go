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

const grievanceColumns = `id, name, email, phone, grievance_type, subject, description,
	attachments, status, assigned_to, resolution, created_at, updated_at`

// PostgresGrievanceRepository implements the GrievanceRepository interface
type PostgresGrievanceRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewGrievanceRepository creates a new grievance repository
func NewGrievanceRepository(config *RepositoryConfig) repositories.GrievanceRepository {
	return &PostgresGrievanceRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func (r *PostgresGrievanceRepository) List(ctx context.Context, filter models.GrievanceFilter) ([]models.Grievance, error) {
	var args []interface{}
	query := fmt.Sprintf("SELECT %s FROM %s", grievanceColumns, r.tables.Grievances)
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += " WHERE status = $1"
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list grievances", err)
	}
	defer rows.Close()

	grievances := []models.Grievance{}
	for rows.Next() {
		g, err := scanGrievance(rows)
		if err != nil {
			return nil, storageErr("list grievances", err)
		}
		grievances = append(grievances, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list grievances", err)
	}
	return grievances, nil
}

func (r *PostgresGrievanceRepository) GetByID(ctx context.Context, id string) (*models.Grievance, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", grievanceColumns, r.tables.Grievances)

	g, err := scanGrievance(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, storageErr("get grievance", err)
	}
	return g, nil
}

func (r *PostgresGrievanceRepository) Create(ctx context.Context, g *models.Grievance) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, email, phone, grievance_type, subject, description,
			attachments, status, assigned_to, resolution, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, r.tables.Grievances)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		g.ID,
		g.Name,
		g.Email,
		g.Phone,
		g.GrievanceType,
		g.Subject,
		g.Description,
		g.Attachments,
		string(g.Status),
		g.AssignedTo,
		g.Resolution,
		g.CreatedAt,
		g.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("grievance %s: %w", g.ID, domain.ErrConflict)
		}
		return storageErr("create grievance", err)
	}
	return nil
}

// Update writes every mutable column; id, attachments and created_at never change
func (r *PostgresGrievanceRepository) Update(ctx context.Context, g *models.Grievance) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, email = $2, phone = $3, subject = $4, description = $5,
			grievance_type = $6, status = $7, assigned_to = $8, resolution = $9, updated_at = $10
		WHERE id = $11
	`, r.tables.Grievances)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		g.Name,
		g.Email,
		g.Phone,
		g.Subject,
		g.Description,
		g.GrievanceType,
		string(g.Status),
		g.AssignedTo,
		g.Resolution,
		g.UpdatedAt,
		g.ID,
	)
	if err != nil {
		return storageErr("update grievance", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("grievance %s: %w", g.ID, domain.ErrNotFound)
	}
	return nil
}

func scanGrievance(row rowScanner) (*models.Grievance, error) {
	var g models.Grievance
	var status string
	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.Email,
		&g.Phone,
		&g.GrievanceType,
		&g.Subject,
		&g.Description,
		&g.Attachments,
		&status,
		&g.AssignedTo,
		&g.Resolution,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	g.Status = models.GrievanceStatus(status)
	if g.Attachments == nil {
		g.Attachments = []models.Attachment{}
	}
	g.CreatedAt = g.CreatedAt.UTC()
	g.UpdatedAt = g.UpdatedAt.UTC()
	return &g, nil
}
