package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"irportal/internal/domain"
	"irportal/internal/domain/models"
)

func TestDeleteByPolicy(t *testing.T) {
	tests := []struct {
		kind     models.EntityKind
		wantHard bool
		wantSoft bool
		wantErr  error
	}{
		{kind: models.KindDocument, wantHard: true},
		{kind: models.KindAnnouncement, wantHard: true},
		{kind: models.KindBoardDirector, wantHard: true},
		{kind: models.KindPromoter, wantHard: true},
		{kind: models.KindPolicy, wantSoft: true},
		{kind: models.KindGrievance, wantErr: domain.ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			var hardCalled, softCalled bool
			hard := func(ctx context.Context, id string) error { hardCalled = true; return nil }
			soft := func(ctx context.Context, id string, at time.Time) error { softCalled = true; return nil }

			err := deleteByPolicy(context.Background(), tt.kind, "id-1", hard, soft)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if hardCalled != tt.wantHard {
				t.Errorf("hard delete called = %v, want %v", hardCalled, tt.wantHard)
			}
			if softCalled != tt.wantSoft {
				t.Errorf("soft delete called = %v, want %v", softCalled, tt.wantSoft)
			}
		})
	}
}

func TestDeleteByPolicy_MissingImplementation(t *testing.T) {
	err := deleteByPolicy(context.Background(), models.KindPolicy, "id-1", nil, nil)

	var unsupported *domain.UnsupportedOperationError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedOperationError, got %v", err)
	}
	if unsupported.Verb != "DELETE" || unsupported.Path != "/policies/id-1" {
		t.Errorf("unexpected operation %s %s", unsupported.Verb, unsupported.Path)
	}
}

func TestNow_IsUTCMicroseconds(t *testing.T) {
	ts := now()
	if ts.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", ts.Location())
	}
	if ts.Nanosecond()%1000 != 0 {
		t.Errorf("expected microsecond precision, got %d ns", ts.Nanosecond())
	}
}
