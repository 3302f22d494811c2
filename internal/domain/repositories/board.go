package repositories

import (
	"context"

	"irportal/internal/domain/models"
)

// BoardDirectorRepository lists directors by sort_order, then name
type BoardDirectorRepository interface {
	List(ctx context.Context) ([]models.BoardDirector, error)
	GetByID(ctx context.Context, id string) (*models.BoardDirector, error)

	// Create returns a *domain.ConflictError when the DIN is already taken
	Create(ctx context.Context, d *models.BoardDirector) error
	Update(ctx context.Context, d *models.BoardDirector) error
	Delete(ctx context.Context, id string) error
}

// PromoterRepository lists promoters by sort_order, then name
type PromoterRepository interface {
	List(ctx context.Context) ([]models.Promoter, error)
	GetByID(ctx context.Context, id string) (*models.Promoter, error)
	Create(ctx context.Context, p *models.Promoter) error
	Update(ctx context.Context, p *models.Promoter) error
	Delete(ctx context.Context, id string) error
}
