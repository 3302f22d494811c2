package repositories

import (
	"context"

	"irportal/internal/domain/models"
)

// AnnouncementRepository defines data access operations for announcements
type AnnouncementRepository interface {
	List(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, error)
	GetByID(ctx context.Context, id string) (*models.Announcement, error)
	Create(ctx context.Context, a *models.Announcement) error
	Update(ctx context.Context, a *models.Announcement) error
	Delete(ctx context.Context, id string) error
}
