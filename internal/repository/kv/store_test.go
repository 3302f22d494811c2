package kv

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"irportal/internal/domain"
	"irportal/internal/domain/models"
	"irportal/internal/domain/repositories"
	"irportal/internal/service/gatewaytest"
)

func setupTestStore(t *testing.T) (*repositories.Store, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)

	client, err := Connect(context.Background(), "redis://"+s.Addr())
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	store := NewStore(client, "test_", slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(store.Close)
	return store, s
}

func TestGatewayContract(t *testing.T) {
	gatewaytest.Run(t, func(t *testing.T) *repositories.Store {
		store, _ := setupTestStore(t)
		return store
	})
}

func TestConnect_BadURL(t *testing.T) {
	if _, err := Connect(context.Background(), "not a url"); err == nil {
		t.Error("expected error for malformed url")
	}
}

func TestStore_KeysUsePrefix(t *testing.T) {
	store, s := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	err := store.Promoters.Create(ctx, &models.Promoter{
		ID:        "p-1",
		Name:      "Meera Rao",
		Category:  models.PromoterIndividual,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !s.Exists("test_promoters") {
		t.Errorf("expected hash test_promoters, keys: %v", s.Keys())
	}
	if got := s.HGet("test_promoters", "p-1"); got == "" {
		t.Error("expected record stored under its id")
	}
}

func TestCreate_DuplicateID(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	doc := &models.Document{ID: "doc-1", Title: "Annual Report", Type: models.DocumentAnnualReport}
	if err := store.Documents.Create(ctx, doc); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.Documents.Create(ctx, doc); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestUpdate_Missing(t *testing.T) {
	store, _ := setupTestStore(t)

	err := store.Grievances.Update(context.Background(), &models.Grievance{ID: "missing"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestIncrementDownloads_Concurrent(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	doc := &models.Document{ID: "doc-1", Title: "Annual Report", Type: models.DocumentAnnualReport}
	if err := store.Documents.Create(ctx, doc); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	const workers, perWorker = 8, 5
	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if err := store.Documents.IncrementDownloads(ctx, doc.ID, time.Now().UTC()); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("IncrementDownloads failed: %v", err)
	}

	got, err := store.Documents.GetByID(ctx, doc.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Downloads != workers*perWorker {
		t.Errorf("expected %d downloads, got %d", workers*perWorker, got.Downloads)
	}
}

func TestCorruptRecord_IsStorageError(t *testing.T) {
	store, s := setupTestStore(t)
	s.HSet("test_documents", "broken", "{not json")

	_, err := store.Documents.GetByID(context.Background(), "broken")
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	var se *domain.StorageError
	if !errors.As(err, &se) || errors.Unwrap(err) == nil {
		t.Error("expected the decode cause to be preserved")
	}

	if _, err := store.Stats.ComputeStats(context.Background()); !errors.Is(err, domain.ErrStorage) {
		t.Errorf("expected ErrStorage from stats, got %v", err)
	}
}

func TestStore_Unreachable(t *testing.T) {
	store, s := setupTestStore(t)
	s.Close()

	_, err := store.Documents.List(context.Background(), models.DocumentFilter{})
	if !errors.Is(err, domain.ErrStorage) {
		t.Errorf("expected ErrStorage when redis is down, got %v", err)
	}
	if err := store.Ping(context.Background()); err == nil {
		t.Error("expected Ping to fail")
	}
}
