package kv

import (
	"context"
	"time"

	"irportal/internal/domain/models"
	"irportal/internal/domain/repositories"
)

type grievanceRepository struct {
	grievances *collection[models.Grievance]
}

// NewGrievanceRepository creates a grievance repository over a Redis hash
func NewGrievanceRepository(cfg *Config) repositories.GrievanceRepository {
	return &grievanceRepository{
		grievances: newCollection[models.Grievance](cfg.Client, cfg.Prefix, string(models.KindGrievance)),
	}
}

func (r *grievanceRepository) List(ctx context.Context, filter models.GrievanceFilter) ([]models.Grievance, error) {
	all, err := r.grievances.all(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Grievance, 0, len(all))
	for i := range all {
		if filter.Matches(&all[i]) {
			out = append(out, all[i])
		}
	}
	sortNewestFirst(out, func(g *models.Grievance) (time.Time, string) { return g.CreatedAt, g.ID })
	return out, nil
}

func (r *grievanceRepository) GetByID(ctx context.Context, id string) (*models.Grievance, error) {
	return r.grievances.get(ctx, id)
}

func (r *grievanceRepository) Create(ctx context.Context, g *models.Grievance) error {
	return r.grievances.insert(ctx, g.ID, g)
}

func (r *grievanceRepository) Update(ctx context.Context, g *models.Grievance) error {
	return r.grievances.replace(ctx, g.ID, g)
}
