package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"irportal/internal/domain/models"
	"irportal/internal/domain/repositories"
	"irportal/internal/domain/services"
)

// documentService implements the DocumentService interface
type documentService struct {
	repo   repositories.DocumentRepository
	logger *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(repo repositories.DocumentRepository, logger *slog.Logger) services.DocumentService {
	return &documentService{
		repo:   repo,
		logger: logger,
	}
}

func (s *documentService) ListDocuments(ctx context.Context, filter models.DocumentFilter) ([]models.Document, error) {
	return s.repo.List(ctx, filter)
}

func (s *documentService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateDocument validates and stores a new document with zero downloads at version 1
func (s *documentService) CreateDocument(ctx context.Context, req *models.NewDocument) (*models.Document, error) {
	trimAll(&req.Title, &req.Description, &req.FileURL, &req.FileName)
	if err := validateNewDocument(req); err != nil {
		return nil, err
	}

	metadata := req.Metadata
	if metadata == nil {
		metadata = models.JSONMap{}
	}

	ts := now()
	doc := &models.Document{
		ID:          newID(),
		Title:       req.Title,
		Type:        req.Type,
		Description: req.Description,
		FiscalYear:  req.FiscalYear,
		FileURL:     req.FileURL,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		Downloads:   0,
		Version:     1,
		Metadata:    metadata,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", doc.ID,
		"type", doc.Type,
		"fiscal_year", doc.FiscalYear,
	)
	return doc, nil
}

func (s *documentService) UpdateDocument(ctx context.Context, id string, patch *models.DocumentPatch) (*models.Document, error) {
	if err := validateDocumentPatch(patch); err != nil {
		return nil, err
	}

	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, notFound(models.KindDocument, id)
	}

	patch.Apply(doc)
	doc.UpdatedAt = now()

	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document updated", "id", id)
	return doc, nil
}

func (s *documentService) DeleteDocument(ctx context.Context, id string) error {
	if err := deleteByPolicy(ctx, models.KindDocument, id, s.repo.Delete, nil); err != nil {
		return err
	}
	s.logger.Info("document deleted", "id", id)
	return nil
}

func (s *documentService) IncrementDownloads(ctx context.Context, id string) error {
	return s.repo.IncrementDownloads(ctx, id, now())
}

func (s *documentService) RecordDownload(ctx context.Context, id string) (*models.Document, error) {
	if err := s.repo.IncrementDownloads(ctx, id, now()); err != nil {
		return nil, fmt.Errorf("record download: %w", err)
	}

	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, notFound(models.KindDocument, id)
	}

	s.logger.Debug("document downloaded", "id", id, "downloads", doc.Downloads)
	return doc, nil
}

func (s *documentService) SearchDocuments(ctx context.Context, query string) ([]models.Document, error) {
	if strings.TrimSpace(query) == "" {
		return []models.Document{}, nil
	}
	return s.repo.Search(ctx, query)
}
