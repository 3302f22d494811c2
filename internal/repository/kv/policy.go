package kv

import (
	"context"
	"time"

	"irportal/internal/domain/models"
	"irportal/internal/domain/repositories"
)

type policyRepository struct {
	policies *collection[models.Policy]
}

// NewPolicyRepository creates a policy repository over a Redis hash
func NewPolicyRepository(cfg *Config) repositories.PolicyRepository {
	return &policyRepository{
		policies: newCollection[models.Policy](cfg.Client, cfg.Prefix, string(models.KindPolicy)),
	}
}

func (r *policyRepository) List(ctx context.Context, filter models.PolicyFilter) ([]models.Policy, error) {
	all, err := r.policies.all(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Policy, 0, len(all))
	for i := range all {
		if filter.Matches(&all[i]) {
			out = append(out, all[i])
		}
	}
	sortNewestFirst(out, func(p *models.Policy) (time.Time, string) { return p.CreatedAt, p.ID })
	return out, nil
}

func (r *policyRepository) GetByID(ctx context.Context, id string) (*models.Policy, error) {
	return r.policies.get(ctx, id)
}

func (r *policyRepository) Create(ctx context.Context, p *models.Policy) error {
	return r.policies.insert(ctx, p.ID, p)
}

func (r *policyRepository) Update(ctx context.Context, p *models.Policy) error {
	return r.policies.replace(ctx, p.ID, p)
}

// SoftDelete flags the policy inactive; missing or already inactive
// policies are left untouched
func (r *policyRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return r.policies.mutate(ctx, "soft delete policy", id, func(p *models.Policy, _ []models.Policy) (*models.Policy, error) {
		if p == nil || !p.IsActive {
			return nil, errSkip
		}
		p.IsActive = false
		p.UpdatedAt = at
		return p, nil
	}, false)
}
