package kv

import (
	"context"

	"github.com/redis/go-redis/v9"

	"irportal/internal/domain"
	"irportal/internal/domain/models"
	"irportal/internal/domain/repositories"
)

type statsRepository struct {
	client     *redis.Client
	documents  string
	grievances string
	policies   string
}

// NewStatsRepository creates the live stats aggregator for the kv backend
func NewStatsRepository(cfg *Config) repositories.StatsRepository {
	return &statsRepository{
		client:     cfg.Client,
		documents:  cfg.Prefix + string(models.KindDocument),
		grievances: cfg.Prefix + string(models.KindGrievance),
		policies:   cfg.Prefix + string(models.KindPolicy),
	}
}

// ComputeStats reads the three collections in one MULTI block so the
// counters describe a single point in time
func (r *statsRepository) ComputeStats(ctx context.Context) (*models.Stats, error) {
	var docsCmd, grievancesCmd, policiesCmd *redis.StringSliceCmd

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		docsCmd = pipe.HVals(ctx, r.documents)
		grievancesCmd = pipe.HVals(ctx, r.grievances)
		policiesCmd = pipe.HVals(ctx, r.policies)
		return nil
	})
	if err != nil {
		return nil, domain.NewStorageError("compute stats", err)
	}

	docs, err := decodeAll[models.Document]("documents", docsCmd.Val())
	if err != nil {
		return nil, err
	}
	grievances, err := decodeAll[models.Grievance]("grievances", grievancesCmd.Val())
	if err != nil {
		return nil, err
	}
	policies, err := decodeAll[models.Policy]("policies", policiesCmd.Val())
	if err != nil {
		return nil, err
	}

	stats := &models.Stats{TotalDocuments: len(docs)}
	for _, doc := range docs {
		stats.MonthlyDownloads += doc.Downloads
	}
	for _, g := range grievances {
		if g.Status.Active() {
			stats.ActiveGrievances++
		}
	}
	for _, p := range policies {
		if p.IsActive {
			stats.TotalPolicies++
		}
	}
	return stats, nil
}
