package service

import (
	"context"
	"log/slog"
	"strings"

	"irportal/internal/domain/models"
	"irportal/internal/domain/repositories"
	"irportal/internal/domain/services"
)

// grievanceService implements the GrievanceService interface
type grievanceService struct {
	repo   repositories.GrievanceRepository
	logger *slog.Logger
}

// NewGrievanceService creates a new grievance service
func NewGrievanceService(repo repositories.GrievanceRepository, logger *slog.Logger) services.GrievanceService {
	return &grievanceService{
		repo:   repo,
		logger: logger,
	}
}

func (s *grievanceService) ListGrievances(ctx context.Context, filter models.GrievanceFilter) ([]models.Grievance, error) {
	return s.repo.List(ctx, filter)
}

func (s *grievanceService) GetGrievance(ctx context.Context, id string) (*models.Grievance, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateGrievance stores a validated grievance with status OPEN
func (s *grievanceService) CreateGrievance(ctx context.Context, req *models.NewGrievance) (*models.Grievance, error) {
	trimAll(&req.Name, &req.Email, &req.Phone, &req.Subject, &req.Description)
	if err := validateNewGrievance(req); err != nil {
		return nil, err
	}

	var grievanceType *string
	if req.GrievanceType != nil && strings.TrimSpace(*req.GrievanceType) != "" {
		t := strings.TrimSpace(*req.GrievanceType)
		grievanceType = &t
	}

	attachments := req.Attachments
	if attachments == nil {
		attachments = []models.Attachment{}
	}

	ts := now()
	g := &models.Grievance{
		ID:            newID(),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		GrievanceType: grievanceType,
		Subject:       req.Subject,
		Description:   req.Description,
		Attachments:   attachments,
		Status:        models.GrievanceOpen,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	s.logger.Info("grievance created",
		"id", g.ID,
		"attachments", len(g.Attachments),
	)
	return g, nil
}

// UpdateGrievance applies an admin patch. Any status may follow any other.
func (s *grievanceService) UpdateGrievance(ctx context.Context, id string, patch *models.GrievancePatch) (*models.Grievance, error) {
	trimPresent(patch.Name, patch.Email, patch.Phone, patch.Subject, patch.Description)
	if err := validateGrievancePatch(patch); err != nil {
		return nil, err
	}

	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, notFound(models.KindGrievance, id)
	}

	previous := g.Status
	patch.Apply(g)
	g.UpdatedAt = now()

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}

	s.logger.Info("grievance updated",
		"id", id,
		"status_from", previous,
		"status_to", g.Status,
	)
	return g, nil
}
