package models

import (
	"time"
)

// GrievanceStatus tracks investor grievance handling.
// No transitions are enforced; any status may follow any other.
type GrievanceStatus string

const (
	GrievanceOpen       GrievanceStatus = "OPEN"
	GrievanceInProgress GrievanceStatus = "IN_PROGRESS"
	GrievanceResolved   GrievanceStatus = "RESOLVED"
)

// GrievanceStatuses lists every valid GrievanceStatus
var GrievanceStatuses = []GrievanceStatus{GrievanceOpen, GrievanceInProgress, GrievanceResolved}

// Valid reports whether s is a known status
func (s GrievanceStatus) Valid() bool {
	switch s {
	case GrievanceOpen, GrievanceInProgress, GrievanceResolved:
		return true
	}
	return false
}

// Active reports whether the grievance still needs attention
func (s GrievanceStatus) Active() bool {
	return s == GrievanceOpen || s == GrievanceInProgress
}

// Attachment is a file uploaded alongside a grievance
type Attachment struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimetype"`
}

// Grievance is an investor complaint submitted through the site
type Grievance struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	GrievanceType *string         `json:"grievanceType"`
	Subject       string          `json:"subject"`
	Description   string          `json:"description"`
	Attachments   []Attachment    `json:"attachments"`
	Status        GrievanceStatus `json:"status"`
	AssignedTo    *string         `json:"assignedTo"`
	Resolution    *string         `json:"resolution"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// NewGrievance is the insertable shape of a Grievance
type NewGrievance struct {
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	Phone         string       `json:"phone"`
	GrievanceType *string      `json:"grievanceType,omitempty"`
	Subject       string       `json:"subject"`
	Description   string       `json:"description"`
	Attachments   []Attachment `json:"attachments,omitempty"`
}

// GrievancePatch is a partial update used by the admin dashboard
type GrievancePatch struct {
	Name          *string          `json:"name,omitempty"`
	Email         *string          `json:"email,omitempty"`
	Phone         *string          `json:"phone,omitempty"`
	Subject       *string          `json:"subject,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Status        *GrievanceStatus `json:"status,omitempty"`
	GrievanceType OptionalString   `json:"grievanceType"`
	AssignedTo    OptionalString   `json:"assignedTo"`
	Resolution    OptionalString   `json:"resolution"`
}

// Apply merges the patch onto g
func (p *GrievancePatch) Apply(g *Grievance) {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Email != nil {
		g.Email = *p.Email
	}
	if p.Phone != nil {
		g.Phone = *p.Phone
	}
	if p.Subject != nil {
		g.Subject = *p.Subject
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.Status != nil {
		g.Status = *p.Status
	}
	p.GrievanceType.Apply(&g.GrievanceType)
	p.AssignedTo.Apply(&g.AssignedTo)
	p.Resolution.Apply(&g.Resolution)
}

// GrievanceFilter selects grievances by field equality
type GrievanceFilter struct {
	Status *GrievanceStatus
}

// Matches reports whether g satisfies the filter
func (f GrievanceFilter) Matches(g *Grievance) bool {
	return f.Status == nil || g.Status == *f.Status
}
