package service

import (
	"context"
	"log/slog"

	"irportal/internal/domain/models"
	"irportal/internal/domain/repositories"
	"irportal/internal/domain/services"
)

type announcementService struct {
	repo   repositories.AnnouncementRepository
	logger *slog.Logger
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(repo repositories.AnnouncementRepository, logger *slog.Logger) services.AnnouncementService {
	return &announcementService{
		repo:   repo,
		logger: logger,
	}
}

func (s *announcementService) ListAnnouncements(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, error) {
	return s.repo.List(ctx, filter)
}

func (s *announcementService) GetAnnouncement(ctx context.Context, id string) (*models.Announcement, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *announcementService) CreateAnnouncement(ctx context.Context, req *models.NewAnnouncement) (*models.Announcement, error) {
	trimAll(&req.Title, &req.Description)
	if err := validateNewAnnouncement(req); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}

	ts := now()
	a := &models.Announcement{
		ID:          newID(),
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Priority:    priority,
		IsPublished: req.IsPublished,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if a.IsPublished {
		a.PublishedAt = &ts
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("announcement created",
		"id", a.ID,
		"priority", a.Priority,
		"published", a.IsPublished,
	)
	return a, nil
}

func (s *announcementService) UpdateAnnouncement(ctx context.Context, id string, patch *models.AnnouncementPatch) (*models.Announcement, error) {
	if err := validateAnnouncementPatch(patch); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, notFound(models.KindAnnouncement, id)
	}

	ts := now()
	patch.Apply(a, ts)
	a.UpdatedAt = ts

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("announcement updated", "id", id, "published", a.IsPublished)
	return a, nil
}

func (s *announcementService) DeleteAnnouncement(ctx context.Context, id string) error {
	if err := deleteByPolicy(ctx, models.KindAnnouncement, id, s.repo.Delete, nil); err != nil {
		return err
	}
	s.logger.Info("announcement deleted", "id", id)
	return nil
}
