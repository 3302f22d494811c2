package service

import (
	"context"
	"log/slog"
	"time"

	"irportal/internal/domain/models"
	"irportal/internal/domain/repositories"
	"irportal/internal/domain/services"
)

type policyService struct {
	repo   repositories.PolicyRepository
	logger *slog.Logger
}

// NewPolicyService creates a new policy service
func NewPolicyService(repo repositories.PolicyRepository, logger *slog.Logger) services.PolicyService {
	return &policyService{
		repo:   repo,
		logger: logger,
	}
}

func (s *policyService) ListPolicies(ctx context.Context, filter models.PolicyFilter) ([]models.Policy, error) {
	return s.repo.List(ctx, filter)
}

func (s *policyService) GetPolicy(ctx context.Context, id string) (*models.Policy, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *policyService) CreatePolicy(ctx context.Context, req *models.NewPolicy) (*models.Policy, error) {
	trimAll(&req.Title, &req.Description, &req.Category, &req.FileURL, &req.FileName)
	if err := validateNewPolicy(req); err != nil {
		return nil, err
	}

	history := req.ChangeHistory
	if history == nil {
		history = []models.JSONMap{}
	}

	ts := now()
	p := &models.Policy{
		ID:            newID(),
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		FileURL:       req.FileURL,
		FileName:      req.FileName,
		EffectiveDate: req.EffectiveDate.UTC().Truncate(time.Microsecond),
		Version:       1,
		ChangeHistory: history,
		IsActive:      true,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("policy created", "id", p.ID, "category", p.Category)
	return p, nil
}

func (s *policyService) UpdatePolicy(ctx context.Context, id string, patch *models.PolicyPatch) (*models.Policy, error) {
	if err := validatePolicyPatch(patch); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound(models.KindPolicy, id)
	}

	patch.Apply(p)
	p.EffectiveDate = p.EffectiveDate.UTC().Truncate(time.Microsecond)
	p.UpdatedAt = now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("policy updated", "id", id, "is_active", p.IsActive)
	return p, nil
}

// DeletePolicy deactivates the policy; it stays retrievable by ID
func (s *policyService) DeletePolicy(ctx context.Context, id string) error {
	if err := deleteByPolicy(ctx, models.KindPolicy, id, nil, s.repo.SoftDelete); err != nil {
		return err
	}
	s.logger.Info("policy deactivated", "id", id)
	return nil
}
