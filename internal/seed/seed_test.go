package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"irportal/internal/domain/models"
	"irportal/internal/repository/kv"
	"irportal/internal/service"
)

func TestLoadDefault(t *testing.T) {
	d, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}

	if len(d.BoardDirectors) == 0 || len(d.Promoters) == 0 || len(d.Policies) == 0 {
		t.Fatalf("default seed is missing sections: %+v", d)
	}

	dins := map[string]bool{}
	for _, dir := range d.BoardDirectors {
		if dins[dir.DIN] {
			t.Errorf("duplicate DIN %s", dir.DIN)
		}
		dins[dir.DIN] = true
	}

	want := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	if !d.Policies[0].EffectiveDate.Equal(want) {
		t.Errorf("effective date = %v, want %v", d.Policies[0].EffectiveDate, want)
	}
	if d.Promoters[2].Category != models.PromoterCompany {
		t.Errorf("category = %q, want Company", d.Promoters[2].Category)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("board_directors: [unclosed")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestApply_Idempotent(t *testing.T) {
	s := miniredis.RunT(t)
	client, err := kv.Connect(context.Background(), "redis://"+s.Addr())
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := kv.NewStore(client, "test_", logger)
	t.Cleanup(store.Close)
	gw := service.NewGateway(store, logger)
	ctx := context.Background()

	d, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}
	total := len(d.BoardDirectors) + len(d.Promoters) + len(d.Policies) + len(d.Announcements)

	first, err := Apply(ctx, gw, store.Tx, d, logger)
	if err != nil {
		t.Fatalf("first Apply failed: %v", err)
	}
	if first.Created != total || first.Skipped != 0 {
		t.Errorf("first run = %+v, want %d created", first, total)
	}

	second, err := Apply(ctx, gw, store.Tx, d, logger)
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if second.Created != 0 || second.Skipped != total {
		t.Errorf("second run = %+v, want %d skipped", second, total)
	}

	directors, _ := gw.Board.ListBoardDirectors(ctx)
	if len(directors) != len(d.BoardDirectors) {
		t.Fatalf("directors = %d", len(directors))
	}
	if directors[0].SortOrder != 1 {
		t.Errorf("directors not ordered by sortOrder: first is %+v", directors[0])
	}
}
