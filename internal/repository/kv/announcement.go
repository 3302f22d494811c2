package kv

import (
	"context"
	"time"

	"irportal/internal/domain/models"
	"irportal/internal/domain/repositories"
)

type announcementRepository struct {
	announcements *collection[models.Announcement]
}

// NewAnnouncementRepository creates an announcement repository over a Redis hash
func NewAnnouncementRepository(cfg *Config) repositories.AnnouncementRepository {
	return &announcementRepository{
		announcements: newCollection[models.Announcement](cfg.Client, cfg.Prefix, string(models.KindAnnouncement)),
	}
}

func (r *announcementRepository) List(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, error) {
	all, err := r.announcements.all(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Announcement, 0, len(all))
	for i := range all {
		if filter.Matches(&all[i]) {
			out = append(out, all[i])
		}
	}
	sortNewestFirst(out, func(a *models.Announcement) (time.Time, string) { return a.CreatedAt, a.ID })
	return out, nil
}

func (r *announcementRepository) GetByID(ctx context.Context, id string) (*models.Announcement, error) {
	return r.announcements.get(ctx, id)
}

func (r *announcementRepository) Create(ctx context.Context, a *models.Announcement) error {
	return r.announcements.insert(ctx, a.ID, a)
}

func (r *announcementRepository) Update(ctx context.Context, a *models.Announcement) error {
	return r.announcements.replace(ctx, a.ID, a)
}

func (r *announcementRepository) Delete(ctx context.Context, id string) error {
	return r.announcements.remove(ctx, id)
}
