package repositories

import (
	"context"

	"irportal/internal/domain/models"
)

// StatsRepository aggregates dashboard counters straight from stored records
type StatsRepository interface {
	ComputeStats(ctx context.Context) (*models.Stats, error)
}

// Store bundles every repository of one backend so the server can swap
// the relational and key/value implementations by configuration.
type Store struct {
	Documents      DocumentRepository
	Grievances     GrievanceRepository
	Policies       PolicyRepository
	Announcements  AnnouncementRepository
	BoardDirectors BoardDirectorRepository
	Promoters      PromoterRepository
	Stats          StatsRepository
	Tx             TransactionManager

	// Backend names the implementation ("postgres", "kv")
	Backend string

	Ping  func(ctx context.Context) error
	Close func()
}
