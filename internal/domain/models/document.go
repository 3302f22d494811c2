package models

import (
	"time"
)

// DocumentType classifies repository documents
type DocumentType string

const (
	DocumentAnnualReport       DocumentType = "ANNUAL_REPORT"
	DocumentQuarterlyResult    DocumentType = "QUARTERLY_RESULT"
	DocumentAnnouncement       DocumentType = "ANNOUNCEMENT"
	DocumentGovernance         DocumentType = "GOVERNANCE"
	DocumentPolicy             DocumentType = "POLICY"
	DocumentInvestorGrievances DocumentType = "INVESTOR_GRIEVANCES"
)

// DocumentTypes lists every valid DocumentType
var DocumentTypes = []DocumentType{
	DocumentAnnualReport,
	DocumentQuarterlyResult,
	DocumentAnnouncement,
	DocumentGovernance,
	DocumentPolicy,
	DocumentInvestorGrievances,
}

// Valid reports whether t is a known document type
func (t DocumentType) Valid() bool {
	for _, known := range DocumentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Document is a downloadable file in the investor document repository.
// Downloads only ever increments.
type Document struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Type        DocumentType `json:"type"`
	Description string       `json:"description"`
	FiscalYear  *int         `json:"fiscalYear"` // nil = not fiscal-year scoped
	FileURL     string       `json:"fileUrl"`
	FileName    string       `json:"fileName"`
	FileSize    int64        `json:"fileSize"`
	Downloads   int          `json:"downloads"`
	Version     int          `json:"version"`
	Metadata    JSONMap      `json:"metadata"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// NewDocument is the insertable shape of a Document
type NewDocument struct {
	Title       string       `json:"title"`
	Type        DocumentType `json:"type"`
	Description string       `json:"description"`
	FiscalYear  *int         `json:"fiscalYear,omitempty"`
	FileURL     string       `json:"fileUrl"`
	FileName    string       `json:"fileName"`
	FileSize    int64        `json:"fileSize"`
	Metadata    JSONMap      `json:"metadata,omitempty"`
}

// DocumentPatch is a partial update; nil fields are left unchanged
type DocumentPatch struct {
	Title       *string       `json:"title,omitempty"`
	Type        *DocumentType `json:"type,omitempty"`
	Description *string       `json:"description,omitempty"`
	FiscalYear  *int          `json:"fiscalYear,omitempty"`
	FileURL     *string       `json:"fileUrl,omitempty"`
	FileName    *string       `json:"fileName,omitempty"`
	FileSize    *int64        `json:"fileSize,omitempty"`
	Metadata    JSONMap       `json:"metadata,omitempty"`
}

// Apply merges the patch onto doc
func (p *DocumentPatch) Apply(doc *Document) {
	if p.Title != nil {
		doc.Title = *p.Title
	}
	if p.Type != nil {
		doc.Type = *p.Type
	}
	if p.Description != nil {
		doc.Description = *p.Description
	}
	if p.FiscalYear != nil {
		year := *p.FiscalYear
		doc.FiscalYear = &year
	}
	if p.FileURL != nil {
		doc.FileURL = *p.FileURL
	}
	if p.FileName != nil {
		doc.FileName = *p.FileName
	}
	if p.FileSize != nil {
		doc.FileSize = *p.FileSize
	}
	if p.Metadata != nil {
		doc.Metadata = p.Metadata
	}
}

// DocumentFilter selects documents by field equality
type DocumentFilter struct {
	Type       *DocumentType
	FiscalYear *int
}

// Matches reports whether doc satisfies every set field of the filter
func (f DocumentFilter) Matches(doc *Document) bool {
	if f.Type != nil && doc.Type != *f.Type {
		return false
	}
	if f.FiscalYear != nil && (doc.FiscalYear == nil || *doc.FiscalYear != *f.FiscalYear) {
		return false
	}
	return true
}
