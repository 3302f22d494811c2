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

const policyColumns = `id, title, description, category, file_url, file_name, effective_date,
	version, change_history, is_active, created_at, updated_at`

// PostgresPolicyRepository implements the PolicyRepository interface
type PostgresPolicyRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewPolicyRepository creates a new policy repository
func NewPolicyRepository(config *RepositoryConfig) repositories.PolicyRepository {
	return &PostgresPolicyRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func (r *PostgresPolicyRepository) List(ctx context.Context, filter models.PolicyFilter) ([]models.Policy, error) {
	var where []string
	var args []interface{}

	if !filter.IncludeInactive {
		where = append(where, "is_active")
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}

	query := fmt.Sprintf("SELECT %s FROM %s", policyColumns, r.tables.Policies)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list policies", err)
	}
	defer rows.Close()

	policies := []models.Policy{}
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, storageErr("list policies", err)
		}
		policies = append(policies, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list policies", err)
	}
	return policies, nil
}

func (r *PostgresPolicyRepository) GetByID(ctx context.Context, id string) (*models.Policy, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", policyColumns, r.tables.Policies)

	p, err := scanPolicy(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, storageErr("get policy", err)
	}
	return p, nil
}

func (r *PostgresPolicyRepository) Create(ctx context.Context, p *models.Policy) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, description, category, file_url, file_name, effective_date,
			version, change_history, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, r.tables.Policies)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		p.Category,
		p.FileURL,
		p.FileName,
		p.EffectiveDate,
		p.Version,
		p.ChangeHistory,
		p.IsActive,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("policy %s: %w", p.ID, domain.ErrConflict)
		}
		return storageErr("create policy", err)
	}
	return nil
}

func (r *PostgresPolicyRepository) Update(ctx context.Context, p *models.Policy) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, description = $2, category = $3, file_url = $4, file_name = $5,
			effective_date = $6, version = $7, change_history = $8, is_active = $9, updated_at = $10
		WHERE id = $11
	`, r.tables.Policies)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		p.Title,
		p.Description,
		p.Category,
		p.FileURL,
		p.FileName,
		p.EffectiveDate,
		p.Version,
		p.ChangeHistory,
		p.IsActive,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return storageErr("update policy", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("policy %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

// SoftDelete clears is_active. Already inactive or missing rows are left alone.
func (r *PostgresPolicyRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_active = FALSE, updated_at = $1
		WHERE id = $2 AND is_active
	`, r.tables.Policies)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, at, id); err != nil {
		return storageErr("soft delete policy", err)
	}
	return nil
}

func scanPolicy(row rowScanner) (*models.Policy, error) {
	var p models.Policy
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Category,
		&p.FileURL,
		&p.FileName,
		&p.EffectiveDate,
		&p.Version,
		&p.ChangeHistory,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if p.ChangeHistory == nil {
		p.ChangeHistory = []models.JSONMap{}
	}
	p.EffectiveDate = p.EffectiveDate.UTC()
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}
