package models

import (
	"time"
)

// AnnouncementPriority orders announcements on the site
type AnnouncementPriority string

const (
	PriorityHigh   AnnouncementPriority = "HIGH"
	PriorityNormal AnnouncementPriority = "NORMAL"
	PriorityLow    AnnouncementPriority = "LOW"
)

// Valid reports whether p is a known priority
func (p AnnouncementPriority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityNormal, PriorityLow:
		return true
	}
	return false
}

// Announcement is a notice shown on the investor site
type Announcement struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Content     *string              `json:"content"`
	Priority    AnnouncementPriority `json:"priority"`
	IsPublished bool                 `json:"isPublished"`
	PublishedAt *time.Time           `json:"publishedAt"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// NewAnnouncement is the insertable shape of an Announcement
type NewAnnouncement struct {
	Title       string               `json:"title" yaml:"title"`
	Description string               `json:"description" yaml:"description"`
	Content     *string              `json:"content,omitempty" yaml:"content"`
	Priority    AnnouncementPriority `json:"priority,omitempty" yaml:"priority"`
	IsPublished bool                 `json:"isPublished" yaml:"is_published"`
}

// AnnouncementPatch is a partial update; absent fields are left unchanged
type AnnouncementPatch struct {
	Title       *string               `json:"title,omitempty"`
	Description *string               `json:"description,omitempty"`
	Content     OptionalString        `json:"content"`
	Priority    *AnnouncementPriority `json:"priority,omitempty"`
	IsPublished *bool                 `json:"isPublished,omitempty"`
}

// Apply merges the patch onto a. Publishing stamps PublishedAt with now
// the first time an announcement goes live; unpublishing clears it.
func (p *AnnouncementPatch) Apply(a *Announcement, now time.Time) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	p.Content.Apply(&a.Content)
	if p.Priority != nil {
		a.Priority = *p.Priority
	}
	if p.IsPublished != nil {
		switch {
		case *p.IsPublished && !a.IsPublished:
			a.PublishedAt = &now
		case !*p.IsPublished:
			a.PublishedAt = nil
		}
		a.IsPublished = *p.IsPublished
	}
}

// AnnouncementFilter selects announcements by publication state
type AnnouncementFilter struct {
	IsPublished *bool
}

// Matches reports whether a satisfies the filter
func (f AnnouncementFilter) Matches(a *Announcement) bool {
	return f.IsPublished == nil || a.IsPublished == *f.IsPublished
}
