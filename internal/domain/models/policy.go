package models

import (
	"time"
)

// Policy is a corporate policy document. Deleting a policy only clears
// IsActive; the record stays retrievable by ID.
type Policy struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	FileURL       string    `json:"fileUrl"`
	FileName      string    `json:"fileName"`
	EffectiveDate time.Time `json:"effectiveDate"`
	Version       int       `json:"version"`
	ChangeHistory []JSONMap `json:"changeHistory"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewPolicy is the insertable shape of a Policy
type NewPolicy struct {
	Title         string    `json:"title" yaml:"title"`
	Description   string    `json:"description" yaml:"description"`
	Category      string    `json:"category" yaml:"category"`
	FileURL       string    `json:"fileUrl" yaml:"file_url"`
	FileName      string    `json:"fileName" yaml:"file_name"`
	EffectiveDate time.Time `json:"effectiveDate" yaml:"effective_date"`
	ChangeHistory []JSONMap `json:"changeHistory,omitempty" yaml:"change_history"`
}

// PolicyPatch is a partial update
type PolicyPatch struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Category      *string    `json:"category,omitempty"`
	FileURL       *string    `json:"fileUrl,omitempty"`
	FileName      *string    `json:"fileName,omitempty"`
	EffectiveDate *time.Time `json:"effectiveDate,omitempty"`
	ChangeHistory []JSONMap  `json:"changeHistory,omitempty"`
	IsActive      *bool      `json:"isActive,omitempty"`
}

// Apply merges the patch onto p
func (p *PolicyPatch) Apply(policy *Policy) {
	if p.Title != nil {
		policy.Title = *p.Title
	}
	if p.Description != nil {
		policy.Description = *p.Description
	}
	if p.Category != nil {
		policy.Category = *p.Category
	}
	if p.FileURL != nil {
		policy.FileURL = *p.FileURL
	}
	if p.FileName != nil {
		policy.FileName = *p.FileName
	}
	if p.EffectiveDate != nil {
		policy.EffectiveDate = *p.EffectiveDate
	}
	if p.ChangeHistory != nil {
		policy.ChangeHistory = p.ChangeHistory
	}
	if p.IsActive != nil {
		policy.IsActive = *p.IsActive
	}
}

// PolicyFilter selects policies. Inactive policies are excluded unless
// IncludeInactive is set.
type PolicyFilter struct {
	Category        *string
	IncludeInactive bool
}

// Matches reports whether p satisfies the filter
func (f PolicyFilter) Matches(p *Policy) bool {
	if !f.IncludeInactive && !p.IsActive {
		return false
	}
	if f.Category != nil && p.Category != *f.Category {
		return false
	}
	return true
}
