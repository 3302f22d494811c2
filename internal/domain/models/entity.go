package models

import (
	"bytes"
	"encoding/json"
)

// JSONMap is an opaque structured blob stored as JSONB / JSON
type JSONMap map[string]interface{}

// DeletionPolicy describes how an entity kind may be removed
type DeletionPolicy string

const (
	DeletionNone DeletionPolicy = "NONE" // records are never removed
	DeletionHard DeletionPolicy = "HARD" // record is physically removed
	DeletionSoft DeletionPolicy = "SOFT" // record is flagged inactive and hidden from default listings
)

// EntityKind names one of the six record collections
type EntityKind string

const (
	KindDocument      EntityKind = "documents"
	KindGrievance     EntityKind = "grievances"
	KindPolicy        EntityKind = "policies"
	KindAnnouncement  EntityKind = "announcements"
	KindBoardDirector EntityKind = "board_directors"
	KindPromoter      EntityKind = "promoters"
)

// AllKinds lists every entity kind in a stable order
var AllKinds = []EntityKind{
	KindDocument,
	KindGrievance,
	KindPolicy,
	KindAnnouncement,
	KindBoardDirector,
	KindPromoter,
}

var deletionPolicies = map[EntityKind]DeletionPolicy{
	KindDocument:      DeletionHard,
	KindGrievance:     DeletionNone,
	KindPolicy:        DeletionSoft,
	KindAnnouncement:  DeletionHard,
	KindBoardDirector: DeletionHard,
	KindPromoter:      DeletionHard,
}

// DeletionPolicy returns how records of this kind are deleted
func (k EntityKind) DeletionPolicy() DeletionPolicy {
	if p, ok := deletionPolicies[k]; ok {
		return p
	}
	return DeletionNone
}

// Singular returns a human readable singular name used in error messages
func (k EntityKind) Singular() string {
	switch k {
	case KindDocument:
		return "document"
	case KindGrievance:
		return "grievance"
	case KindPolicy:
		return "policy"
	case KindAnnouncement:
		return "announcement"
	case KindBoardDirector:
		return "board director"
	case KindPromoter:
		return "promoter"
	default:
		return string(k)
	}
}

// OptionalString tracks presence and value for JSON PATCH semantics (RFC 7396).
//   - Present=false: field absent from JSON (don't change)
//   - Present=true, Value=nil: field is JSON null (clear)
//   - Present=true, Value=&"text": field has value
type OptionalString struct {
	Present bool
	Value   *string
}

// Set returns a present OptionalString holding v
func Set(v string) OptionalString {
	return OptionalString{Present: true, Value: &v}
}

// UnmarshalJSON implements json.Unmarshaler.
// When this method is called, the field was present in the JSON.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// Apply writes the tri-state value onto dst
func (o OptionalString) Apply(dst **string) {
	if !o.Present {
		return
	}
	if o.Value == nil {
		*dst = nil
		return
	}
	v := *o.Value
	*dst = &v
}
