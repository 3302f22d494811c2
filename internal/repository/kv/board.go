package kv

import (
	"context"
	"fmt"

	"irportal/internal/domain"
	"irportal/internal/domain/models"
	"irportal/internal/domain/repositories"
)

type boardDirectorRepository struct {
	directors *collection[models.BoardDirector]
}

// NewBoardDirectorRepository creates a board director repository over a Redis hash
func NewBoardDirectorRepository(cfg *Config) repositories.BoardDirectorRepository {
	return &boardDirectorRepository{
		directors: newCollection[models.BoardDirector](cfg.Client, cfg.Prefix, string(models.KindBoardDirector)),
	}
}

func (r *boardDirectorRepository) List(ctx context.Context) ([]models.BoardDirector, error) {
	all, err := r.directors.all(ctx)
	if err != nil {
		return nil, err
	}
	models.SortBoardDirectors(all)
	return all, nil
}

func (r *boardDirectorRepository) GetByID(ctx context.Context, id string) (*models.BoardDirector, error) {
	return r.directors.get(ctx, id)
}

// Create checks DIN uniqueness against every other director in the same
// WATCH transaction that writes the record
func (r *boardDirectorRepository) Create(ctx context.Context, d *models.BoardDirector) error {
	return r.directors.mutate(ctx, "create board director", d.ID, func(current *models.BoardDirector, others []models.BoardDirector) (*models.BoardDirector, error) {
		if current != nil {
			return nil, fmt.Errorf("board director %s: %w", d.ID, domain.ErrConflict)
		}
		if err := checkDIN(d, others); err != nil {
			return nil, err
		}
		return d, nil
	}, true)
}

func (r *boardDirectorRepository) Update(ctx context.Context, d *models.BoardDirector) error {
	return r.directors.mutate(ctx, "update board director", d.ID, func(current *models.BoardDirector, others []models.BoardDirector) (*models.BoardDirector, error) {
		if current == nil {
			return nil, fmt.Errorf("board director %s: %w", d.ID, domain.ErrNotFound)
		}
		if err := checkDIN(d, others); err != nil {
			return nil, err
		}
		return d, nil
	}, true)
}

func (r *boardDirectorRepository) Delete(ctx context.Context, id string) error {
	return r.directors.remove(ctx, id)
}

func checkDIN(d *models.BoardDirector, others []models.BoardDirector) error {
	for _, other := range others {
		if other.DIN == d.DIN {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("board director with DIN %s already exists", d.DIN),
				ResourceType: "board_director",
				Field:        "din",
			}
		}
	}
	return nil
}

type promoterRepository struct {
	promoters *collection[models.Promoter]
}

// NewPromoterRepository creates a promoter repository over a Redis hash
func NewPromoterRepository(cfg *Config) repositories.PromoterRepository {
	return &promoterRepository{
		promoters: newCollection[models.Promoter](cfg.Client, cfg.Prefix, string(models.KindPromoter)),
	}
}

func (r *promoterRepository) List(ctx context.Context) ([]models.Promoter, error) {
	all, err := r.promoters.all(ctx)
	if err != nil {
		return nil, err
	}
	models.SortPromoters(all)
	return all, nil
}

func (r *promoterRepository) GetByID(ctx context.Context, id string) (*models.Promoter, error) {
	return r.promoters.get(ctx, id)
}

func (r *promoterRepository) Create(ctx context.Context, p *models.Promoter) error {
	return r.promoters.insert(ctx, p.ID, p)
}

func (r *promoterRepository) Update(ctx context.Context, p *models.Promoter) error {
	return r.promoters.replace(ctx, p.ID, p)
}

func (r *promoterRepository) Delete(ctx context.Context, id string) error {
	return r.promoters.remove(ctx, id)
}
