package models

import (
	"sort"
	"time"
)

// BoardDirector is a member of the board shown on the governance page.
// SortOrder is a display key only.
type BoardDirector struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Designation string    `json:"designation"`
	DIN         string    `json:"din"` // Director Identification Number, unique
	Experience  string    `json:"experience"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewBoardDirector is the insertable shape of a BoardDirector
type NewBoardDirector struct {
	Name        string `json:"name" yaml:"name"`
	Address     string `json:"address" yaml:"address"`
	Designation string `json:"designation" yaml:"designation"`
	DIN         string `json:"din" yaml:"din"`
	Experience  string `json:"experience" yaml:"experience"`
	SortOrder   int    `json:"sortOrder" yaml:"sort_order"`
}

// BoardDirectorPatch is a partial update; absent fields are left unchanged
type BoardDirectorPatch struct {
	Name        *string `json:"name,omitempty"`
	Address     *string `json:"address,omitempty"`
	Designation *string `json:"designation,omitempty"`
	DIN         *string `json:"din,omitempty"`
	Experience  *string `json:"experience,omitempty"`
	SortOrder   *int    `json:"sortOrder,omitempty"`
}

// Apply merges the patch onto d
func (p *BoardDirectorPatch) Apply(d *BoardDirector) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Address != nil {
		d.Address = *p.Address
	}
	if p.Designation != nil {
		d.Designation = *p.Designation
	}
	if p.DIN != nil {
		d.DIN = *p.DIN
	}
	if p.Experience != nil {
		d.Experience = *p.Experience
	}
	if p.SortOrder != nil {
		d.SortOrder = *p.SortOrder
	}
}

// PromoterCategory distinguishes individual and corporate promoters
type PromoterCategory string

const (
	PromoterIndividual PromoterCategory = "Individual"
	PromoterCompany    PromoterCategory = "Company"
)

// Valid reports whether c is a known category
func (c PromoterCategory) Valid() bool {
	return c == PromoterIndividual || c == PromoterCompany
}

// Promoter is a member of the promoter group
type Promoter struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Category  PromoterCategory `json:"category"`
	SortOrder int              `json:"sortOrder"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// NewPromoter is the insertable shape of a Promoter
type NewPromoter struct {
	Name      string           `json:"name" yaml:"name"`
	Category  PromoterCategory `json:"category" yaml:"category"`
	SortOrder int              `json:"sortOrder" yaml:"sort_order"`
}

// PromoterPatch is a partial update; absent fields are left unchanged
type PromoterPatch struct {
	Name      *string           `json:"name,omitempty"`
	Category  *PromoterCategory `json:"category,omitempty"`
	SortOrder *int              `json:"sortOrder,omitempty"`
}

// Apply merges the patch onto pr
func (p *PromoterPatch) Apply(pr *Promoter) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Category != nil {
		pr.Category = *p.Category
	}
	if p.SortOrder != nil {
		pr.SortOrder = *p.SortOrder
	}
}

// SortBoardDirectors orders directors by SortOrder, then Name
func SortBoardDirectors(directors []BoardDirector) {
	sort.SliceStable(directors, func(i, j int) bool {
		if directors[i].SortOrder != directors[j].SortOrder {
			return directors[i].SortOrder < directors[j].SortOrder
		}
		return directors[i].Name < directors[j].Name
	})
}

// SortPromoters orders promoters by SortOrder, then Name
func SortPromoters(promoters []Promoter) {
	sort.SliceStable(promoters, func(i, j int) bool {
		if promoters[i].SortOrder != promoters[j].SortOrder {
			return promoters[i].SortOrder < promoters[j].SortOrder
		}
		return promoters[i].Name < promoters[j].Name
	})
}
