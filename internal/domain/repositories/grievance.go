package repositories

import (
	"context"

	"irportal/internal/domain/models"
)

// GrievanceRepository defines data access operations for grievances
type GrievanceRepository interface {
	List(ctx context.Context, filter models.GrievanceFilter) ([]models.Grievance, error)

	// GetByID returns nil, nil when absent
	GetByID(ctx context.Context, id string) (*models.Grievance, error)

	Create(ctx context.Context, g *models.Grievance) error

	// Update wraps domain.ErrNotFound if the grievance is missing
	Update(ctx context.Context, g *models.Grievance) error
}
