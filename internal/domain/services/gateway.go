package services

import (
	"context"

	"irportal/internal/domain/models"
)

// The services below form the persistence gateway: one uniform CRUD and
// query surface per entity kind that behaves identically whichever
// storage backend is active. Get* methods return nil, nil when the record
// does not exist; absence is only an error for update and delete targets.

// DocumentService handles the investor document repository
type DocumentService interface {
	ListDocuments(ctx context.Context, filter models.DocumentFilter) ([]models.Document, error)
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	CreateDocument(ctx context.Context, req *models.NewDocument) (*models.Document, error)
	UpdateDocument(ctx context.Context, id string, patch *models.DocumentPatch) (*models.Document, error)
	DeleteDocument(ctx context.Context, id string) error

	// IncrementDownloads adds exactly one download. Silently does nothing
	// when the document does not exist.
	IncrementDownloads(ctx context.Context, id string) error

	// RecordDownload counts a download and returns the updated document,
	// reporting a NotFoundError when it does not exist.
	RecordDownload(ctx context.Context, id string) (*models.Document, error)

	// SearchDocuments returns no results for an empty query
	SearchDocuments(ctx context.Context, query string) ([]models.Document, error)
}

// GrievanceService handles investor grievances
type GrievanceService interface {
	ListGrievances(ctx context.Context, filter models.GrievanceFilter) ([]models.Grievance, error)
	GetGrievance(ctx context.Context, id string) (*models.Grievance, error)
	CreateGrievance(ctx context.Context, req *models.NewGrievance) (*models.Grievance, error)
	UpdateGrievance(ctx context.Context, id string, patch *models.GrievancePatch) (*models.Grievance, error)
}

// PolicyService handles corporate policies (soft delete)
type PolicyService interface {
	ListPolicies(ctx context.Context, filter models.PolicyFilter) ([]models.Policy, error)
	GetPolicy(ctx context.Context, id string) (*models.Policy, error)
	CreatePolicy(ctx context.Context, req *models.NewPolicy) (*models.Policy, error)
	UpdatePolicy(ctx context.Context, id string, patch *models.PolicyPatch) (*models.Policy, error)
	DeletePolicy(ctx context.Context, id string) error
}

// AnnouncementService handles site announcements (hard delete)
type AnnouncementService interface {
	ListAnnouncements(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, error)
	GetAnnouncement(ctx context.Context, id string) (*models.Announcement, error)
	CreateAnnouncement(ctx context.Context, req *models.NewAnnouncement) (*models.Announcement, error)
	UpdateAnnouncement(ctx context.Context, id string, patch *models.AnnouncementPatch) (*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id string) error
}

// BoardService handles board directors and promoters
type BoardService interface {
	ListBoardDirectors(ctx context.Context) ([]models.BoardDirector, error)
	GetBoardDirector(ctx context.Context, id string) (*models.BoardDirector, error)
	CreateBoardDirector(ctx context.Context, req *models.NewBoardDirector) (*models.BoardDirector, error)
	UpdateBoardDirector(ctx context.Context, id string, patch *models.BoardDirectorPatch) (*models.BoardDirector, error)
	DeleteBoardDirector(ctx context.Context, id string) error

	ListPromoters(ctx context.Context) ([]models.Promoter, error)
	GetPromoter(ctx context.Context, id string) (*models.Promoter, error)
	CreatePromoter(ctx context.Context, req *models.NewPromoter) (*models.Promoter, error)
	UpdatePromoter(ctx context.Context, id string, patch *models.PromoterPatch) (*models.Promoter, error)
	DeletePromoter(ctx context.Context, id string) error
}

// StatsService is the aggregation reporter behind the admin dashboard.
// Counters are computed live on every call.
type StatsService interface {
	ComputeStats(ctx context.Context) (*models.Stats, error)
}

// Gateway groups every service so callers depend on one value
type Gateway struct {
	Documents     DocumentService
	Grievances    GrievanceService
	Policies      PolicyService
	Announcements AnnouncementService
	Board         BoardService
	Stats         StatsService
}
