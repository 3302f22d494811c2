package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"irportal/internal/config"
)

func TestOpen(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := miniredis.RunT(t)

	t.Run("kv backend", func(t *testing.T) {
		cfg := &config.Config{StorageBackend: config.BackendKV, RedisURL: "redis://" + s.Addr(), KeyPrefix: "test_"}
		store, err := Open(context.Background(), cfg, logger)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		defer store.Close()

		if store.Backend != config.BackendKV {
			t.Errorf("backend = %q", store.Backend)
		}
		if err := store.Ping(context.Background()); err != nil {
			t.Errorf("Ping failed: %v", err)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := &config.Config{StorageBackend: "sqlite"}
		if _, err := Open(context.Background(), cfg, logger); err == nil {
			t.Error("expected error for unknown backend")
		}
	})
}
