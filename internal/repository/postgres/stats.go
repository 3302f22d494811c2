package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"irportal/internal/domain/models"
	"irportal/internal/domain/repositories"
)

// PostgresStatsRepository aggregates the dashboard counters
type PostgresStatsRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(config *RepositoryConfig) repositories.StatsRepository {
	return &PostgresStatsRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// ComputeStats reads all four counters in one statement so they share a snapshot
func (r *PostgresStatsRepository) ComputeStats(ctx context.Context) (*models.Stats, error) {
	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %[1]s),
			(SELECT COUNT(*) FROM %[2]s WHERE status IN ('%[4]s', '%[5]s')),
			(SELECT COALESCE(SUM(downloads), 0) FROM %[1]s),
			(SELECT COUNT(*) FROM %[3]s WHERE is_active)
	`, r.tables.Documents, r.tables.Grievances, r.tables.Policies,
		models.GrievanceOpen, models.GrievanceInProgress)

	var totalDocuments, activeGrievances, downloads, totalPolicies int64
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query).Scan(
		&totalDocuments,
		&activeGrievances,
		&downloads,
		&totalPolicies,
	)
	if err != nil {
		return nil, storageErr("compute stats", err)
	}

	return &models.Stats{
		TotalDocuments:   int(totalDocuments),
		ActiveGrievances: int(activeGrievances),
		MonthlyDownloads: int(downloads),
		TotalPolicies:    int(totalPolicies),
	}, nil
}
