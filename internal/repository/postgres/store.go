package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"irportal/internal/domain/repositories"
)

// NewStore bundles the relational repositories over one pool
func NewStore(pool *pgxpool.Pool, logger *slog.Logger) *repositories.Store {
	cfg := &RepositoryConfig{
		Pool:   pool,
		Tables: DefaultTableNames(),
		Logger: logger,
	}

	return &repositories.Store{
		Documents:      NewDocumentRepository(cfg),
		Grievances:     NewGrievanceRepository(cfg),
		Policies:       NewPolicyRepository(cfg),
		Announcements:  NewAnnouncementRepository(cfg),
		BoardDirectors: NewBoardDirectorRepository(cfg),
		Promoters:      NewPromoterRepository(cfg),
		Stats:          NewStatsRepository(cfg),
		Tx:             NewTransactionManager(pool, logger),
		Backend:        "postgres",
		Ping:           func(ctx context.Context) error { return pool.Ping(ctx) },
		Close:          pool.Close,
	}
}
