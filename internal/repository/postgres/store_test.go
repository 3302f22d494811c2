package postgres

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"irportal/internal/domain/repositories"
	"irportal/internal/service/gatewaytest"
)

// setupTestDB starts PostgreSQL in a container and applies the migrations
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("skipping integration test: TEST_INTEGRATION not set")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("irportal_test"),
		postgres.WithUsername("irportal"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := Migrate(dsn, logger); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// Applying twice must be a no-op
	if err := Migrate(dsn, logger); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	pool, err := CreateConnectionPool(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

func truncateAll(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	tables := DefaultTableNames()
	query := fmt.Sprintf("TRUNCATE %s, %s, %s, %s, %s, %s",
		tables.Documents, tables.Grievances, tables.Policies,
		tables.Announcements, tables.BoardDirectors, tables.Promoters)
	if _, err := pool.Exec(context.Background(), query); err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func TestGatewayContract(t *testing.T) {
	pool := setupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	gatewaytest.Run(t, func(t *testing.T) *repositories.Store {
		truncateAll(t, pool)
		store := NewStore(pool, logger)
		// The pool outlives each subtest
		store.Close = func() {}
		return store
	})
}

func TestExecTx_RollsBackOnError(t *testing.T) {
	pool := setupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewStore(pool, logger)
	ctx := context.Background()

	boom := fmt.Errorf("boom")
	err := store.Tx.ExecTx(ctx, func(txCtx context.Context) error {
		_, err := GetExecutor(txCtx, pool).Exec(txCtx,
			`INSERT INTO promoters (id, name, category, sort_order, created_at, updated_at)
			 VALUES ('p-1', 'Meera Rao', 'Individual', 0, now(), now())`)
		if err != nil {
			return err
		}
		return boom
	})
	if err != boom {
		t.Fatalf("expected boom, got %v", err)
	}

	promoters, err := store.Promoters.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(promoters) != 0 {
		t.Errorf("expected rollback to discard the insert, got %d promoters", len(promoters))
	}
}
