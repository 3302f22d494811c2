package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"irportal/internal/domain"
	"irportal/internal/domain/models"
	"irportal/internal/domain/repositories"
	"irportal/internal/domain/services"

	"github.com/google/uuid"
)

// NewGateway wires every service on top of one backend's repositories
func NewGateway(store *repositories.Store, logger *slog.Logger) *services.Gateway {
	return &services.Gateway{
		Documents:     NewDocumentService(store.Documents, logger),
		Grievances:    NewGrievanceService(store.Grievances, logger),
		Policies:      NewPolicyService(store.Policies, logger),
		Announcements: NewAnnouncementService(store.Announcements, logger),
		Board:         NewBoardService(store.BoardDirectors, store.Promoters, logger),
		Stats:         NewStatsService(store.Stats, logger),
	}
}

// now returns the timestamp used for created_at/updated_at. Truncated to
// microseconds so records round-trip identically through PostgreSQL and
// the key/value store.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func newID() string {
	return uuid.NewString()
}

func notFound(kind models.EntityKind, id string) error {
	return &domain.NotFoundError{Resource: kind.Singular(), ID: id}
}

// deleteByPolicy removes a record according to the kind's deletion policy.
// Kinds that cannot be deleted report an unsupported operation.
func deleteByPolicy(
	ctx context.Context,
	kind models.EntityKind,
	id string,
	hard func(ctx context.Context, id string) error,
	soft func(ctx context.Context, id string, at time.Time) error,
) error {
	switch kind.DeletionPolicy() {
	case models.DeletionHard:
		if hard != nil {
			return hard(ctx, id)
		}
	case models.DeletionSoft:
		if soft != nil {
			return soft(ctx, id, now())
		}
	}
	return &domain.UnsupportedOperationError{
		Verb: "DELETE",
		Path: fmt.Sprintf("/%s/%s", kind, id),
	}
}
