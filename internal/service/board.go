package service

import (
	"context"
	"log/slog"

	"irportal/internal/domain/models"
	"irportal/internal/domain/repositories"
	"irportal/internal/domain/services"
)

// boardService manages the governance page: board directors and promoters
type boardService struct {
	directors repositories.BoardDirectorRepository
	promoters repositories.PromoterRepository
	logger    *slog.Logger
}

// NewBoardService creates a new board service
func NewBoardService(
	directors repositories.BoardDirectorRepository,
	promoters repositories.PromoterRepository,
	logger *slog.Logger,
) services.BoardService {
	return &boardService{
		directors: directors,
		promoters: promoters,
		logger:    logger,
	}
}

func (s *boardService) ListBoardDirectors(ctx context.Context) ([]models.BoardDirector, error) {
	return s.directors.List(ctx)
}

func (s *boardService) GetBoardDirector(ctx context.Context, id string) (*models.BoardDirector, error) {
	return s.directors.GetByID(ctx, id)
}

func (s *boardService) CreateBoardDirector(ctx context.Context, req *models.NewBoardDirector) (*models.BoardDirector, error) {
	trimAll(&req.Name, &req.Address, &req.Designation, &req.DIN, &req.Experience)
	if err := validateNewBoardDirector(req); err != nil {
		return nil, err
	}

	ts := now()
	d := &models.BoardDirector{
		ID:          newID(),
		Name:        req.Name,
		Address:     req.Address,
		Designation: req.Designation,
		DIN:         req.DIN,
		Experience:  req.Experience,
		SortOrder:   req.SortOrder,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	if err := s.directors.Create(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info("board director created", "id", d.ID, "din", d.DIN)
	return d, nil
}

func (s *boardService) UpdateBoardDirector(ctx context.Context, id string, patch *models.BoardDirectorPatch) (*models.BoardDirector, error) {
	if err := validateBoardDirectorPatch(patch); err != nil {
		return nil, err
	}

	d, err := s.directors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, notFound(models.KindBoardDirector, id)
	}

	patch.Apply(d)
	d.UpdatedAt = now()

	if err := s.directors.Update(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info("board director updated", "id", id)
	return d, nil
}

func (s *boardService) DeleteBoardDirector(ctx context.Context, id string) error {
	return deleteByPolicy(ctx, models.KindBoardDirector, id, s.directors.Delete, nil)
}

func (s *boardService) ListPromoters(ctx context.Context) ([]models.Promoter, error) {
	return s.promoters.List(ctx)
}

func (s *boardService) GetPromoter(ctx context.Context, id string) (*models.Promoter, error) {
	return s.promoters.GetByID(ctx, id)
}

func (s *boardService) CreatePromoter(ctx context.Context, req *models.NewPromoter) (*models.Promoter, error) {
	trimAll(&req.Name)
	if err := validateNewPromoter(req); err != nil {
		return nil, err
	}

	ts := now()
	p := &models.Promoter{
		ID:        newID(),
		Name:      req.Name,
		Category:  req.Category,
		SortOrder: req.SortOrder,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	if err := s.promoters.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("promoter created", "id", p.ID, "category", p.Category)
	return p, nil
}

func (s *boardService) UpdatePromoter(ctx context.Context, id string, patch *models.PromoterPatch) (*models.Promoter, error) {
	if err := validatePromoterPatch(patch); err != nil {
		return nil, err
	}

	p, err := s.promoters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound(models.KindPromoter, id)
	}

	patch.Apply(p)
	p.UpdatedAt = now()

	if err := s.promoters.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *boardService) DeletePromoter(ctx context.Context, id string) error {
	return deleteByPolicy(ctx, models.KindPromoter, id, s.promoters.Delete, nil)
}
