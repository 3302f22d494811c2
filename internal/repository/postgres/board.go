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

const (
	boardDirectorColumns = `id, name, address, designation, din, experience, sort_order, created_at, updated_at`
	promoterColumns      = `id, name, category, sort_order, created_at, updated_at`
)

// PostgresBoardDirectorRepository implements the BoardDirectorRepository interface
type PostgresBoardDirectorRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewBoardDirectorRepository creates a new board director repository
func NewBoardDirectorRepository(config *RepositoryConfig) repositories.BoardDirectorRepository {
	return &PostgresBoardDirectorRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func (r *PostgresBoardDirectorRepository) List(ctx context.Context) ([]models.BoardDirector, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY sort_order ASC, name ASC",
		boardDirectorColumns, r.tables.BoardDirectors)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, storageErr("list board directors", err)
	}
	defer rows.Close()

	directors := []models.BoardDirector{}
	for rows.Next() {
		d, err := scanBoardDirector(rows)
		if err != nil {
			return nil, storageErr("list board directors", err)
		}
		directors = append(directors, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list board directors", err)
	}

	// Collation may differ from byte order; keep the in-process order authoritative
	models.SortBoardDirectors(directors)
	return directors, nil
}

func (r *PostgresBoardDirectorRepository) GetByID(ctx context.Context, id string) (*models.BoardDirector, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", boardDirectorColumns, r.tables.BoardDirectors)

	d, err := scanBoardDirector(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, storageErr("get board director", err)
	}
	return d, nil
}

func (r *PostgresBoardDirectorRepository) Create(ctx context.Context, d *models.BoardDirector) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, address, designation, din, experience, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.BoardDirectors)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		d.ID,
		d.Name,
		d.Address,
		d.Designation,
		d.DIN,
		d.Experience,
		d.SortOrder,
		d.CreatedAt,
		d.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return dinConflict(d.DIN)
		}
		return storageErr("create board director", err)
	}
	return nil
}

func (r *PostgresBoardDirectorRepository) Update(ctx context.Context, d *models.BoardDirector) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, address = $2, designation = $3, din = $4, experience = $5,
			sort_order = $6, updated_at = $7
		WHERE id = $8
	`, r.tables.BoardDirectors)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		d.Name,
		d.Address,
		d.Designation,
		d.DIN,
		d.Experience,
		d.SortOrder,
		d.UpdatedAt,
		d.ID,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return dinConflict(d.DIN)
		}
		return storageErr("update board director", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("board director %s: %w", d.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresBoardDirectorRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.tables.BoardDirectors)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id); err != nil {
		return storageErr("delete board director", err)
	}
	return nil
}

func dinConflict(din string) error {
	return &domain.ConflictError{
		Message:      fmt.Sprintf("board director with DIN %s already exists", din),
		ResourceType: "board_director",
		Field:        "din",
	}
}

func scanBoardDirector(row rowScanner) (*models.BoardDirector, error) {
	var d models.BoardDirector
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Address,
		&d.Designation,
		&d.DIN,
		&d.Experience,
		&d.SortOrder,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.CreatedAt = d.CreatedAt.UTC()
	d.UpdatedAt = d.UpdatedAt.UTC()
	return &d, nil
}

// PostgresPromoterRepository implements the PromoterRepository interface
type PostgresPromoterRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewPromoterRepository creates a new promoter repository
func NewPromoterRepository(config *RepositoryConfig) repositories.PromoterRepository {
	return &PostgresPromoterRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func (r *PostgresPromoterRepository) List(ctx context.Context) ([]models.Promoter, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY sort_order ASC, name ASC",
		promoterColumns, r.tables.Promoters)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, storageErr("list promoters", err)
	}
	defer rows.Close()

	promoters := []models.Promoter{}
	for rows.Next() {
		p, err := scanPromoter(rows)
		if err != nil {
			return nil, storageErr("list promoters", err)
		}
		promoters = append(promoters, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list promoters", err)
	}

	models.SortPromoters(promoters)
	return promoters, nil
}

func (r *PostgresPromoterRepository) GetByID(ctx context.Context, id string) (*models.Promoter, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", promoterColumns, r.tables.Promoters)

	p, err := scanPromoter(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, storageErr("get promoter", err)
	}
	return p, nil
}

func (r *PostgresPromoterRepository) Create(ctx context.Context, p *models.Promoter) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, category, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Promoters)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		p.ID,
		p.Name,
		string(p.Category),
		p.SortOrder,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("promoter %s: %w", p.ID, domain.ErrConflict)
		}
		return storageErr("create promoter", err)
	}
	return nil
}

func (r *PostgresPromoterRepository) Update(ctx context.Context, p *models.Promoter) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, category = $2, sort_order = $3, updated_at = $4
		WHERE id = $5
	`, r.tables.Promoters)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		p.Name,
		string(p.Category),
		p.SortOrder,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return storageErr("update promoter", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("promoter %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresPromoterRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.tables.Promoters)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id); err != nil {
		return storageErr("delete promoter", err)
	}
	return nil
}

func scanPromoter(row rowScanner) (*models.Promoter, error) {
	var p models.Promoter
	var category string
	err := row.Scan(
		&p.ID,
		&p.Name,
		&category,
		&p.SortOrder,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Category = models.PromoterCategory(category)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}
