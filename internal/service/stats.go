package service

import (
	"context"
	"fmt"
	"log/slog"

	"irportal/internal/domain/models"
	"irportal/internal/domain/repositories"
	"irportal/internal/domain/services"
)

// statsService computes dashboard counters on every call. No snapshot is
// cached, so the numbers always match the repositories at call time.
type statsService struct {
	repo   repositories.StatsRepository
	logger *slog.Logger
}

// NewStatsService creates the aggregation reporter
func NewStatsService(repo repositories.StatsRepository, logger *slog.Logger) services.StatsService {
	return &statsService{
		repo:   repo,
		logger: logger,
	}
}

func (s *statsService) ComputeStats(ctx context.Context) (*models.Stats, error) {
	stats, err := s.repo.ComputeStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute stats: %w", err)
	}

	s.logger.Debug("stats computed",
		"total_documents", stats.TotalDocuments,
		"active_grievances", stats.ActiveGrievances,
		"monthly_downloads", stats.MonthlyDownloads,
		"total_policies", stats.TotalPolicies,
	)
	return stats, nil
}
