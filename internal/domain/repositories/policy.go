package repositories

import (
	"context"
	"time"

	"irportal/internal/domain/models"
)

// PolicyRepository defines data access operations for policies
type PolicyRepository interface {
	List(ctx context.Context, filter models.PolicyFilter) ([]models.Policy, error)

	// GetByID returns inactive policies too; nil, nil when absent
	GetByID(ctx context.Context, id string) (*models.Policy, error)

	Create(ctx context.Context, p *models.Policy) error

	Update(ctx context.Context, p *models.Policy) error

	// SoftDelete clears is_active. Idempotent.
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
