package kv

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"irportal/internal/domain/repositories"
)

// Config holds what every kv repository needs
type Config struct {
	Client *redis.Client
	Prefix string // e.g. "dev_", prepended to every collection key
	Logger *slog.Logger
}

// NewStore bundles the kv repositories over one Redis client
func NewStore(client *redis.Client, prefix string, logger *slog.Logger) *repositories.Store {
	cfg := &Config{Client: client, Prefix: prefix, Logger: logger}

	return &repositories.Store{
		Documents:      NewDocumentRepository(cfg),
		Grievances:     NewGrievanceRepository(cfg),
		Policies:       NewPolicyRepository(cfg),
		Announcements:  NewAnnouncementRepository(cfg),
		BoardDirectors: NewBoardDirectorRepository(cfg),
		Promoters:      NewPromoterRepository(cfg),
		Stats:          NewStatsRepository(cfg),
		Tx:             transactionManager{},
		Backend:        "kv",
		Ping:           func(ctx context.Context) error { return client.Ping(ctx).Err() },
		Close:          func() { _ = client.Close() },
	}
}

// transactionManager runs fn directly. Each kv write is already atomic
// on its own; there is no multi-key rollback.
type transactionManager struct{}

func (transactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}
