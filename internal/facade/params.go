package facade

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"irportal/internal/domain"
	"irportal/internal/domain/models"
)

func invalid(field, message string) error {
	return domain.NewValidationError(map[string]string{field: message})
}

// decodePayload extracts a typed body from the request payload
func decodePayload[T any](payload any) (*T, error) {
	var raw []byte
	switch p := payload.(type) {
	case nil:
		return nil, invalid("body", "request body is required")
	case *T:
		return p, nil
	case T:
		return &p, nil
	case json.RawMessage:
		raw = p
	case []byte:
		raw = p
	case string:
		raw = []byte(p)
	default:
		// Generic shapes such as map[string]any from another caller
		b, err := json.Marshal(p)
		if err != nil {
			return nil, invalid("body", "unsupported payload")
		}
		raw = b
	}

	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, invalid("body", "request body is required")
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, invalid("body", fmt.Sprintf("invalid JSON: %v", err))
	}
	return &v, nil
}

func queryInt(q url.Values, name string) (*int, error) {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, invalid(name, "must be an integer")
	}
	return &v, nil
}

func queryBool(q url.Values, name string) (*bool, error) {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, invalid(name, "must be true or false")
	}
	return &v, nil
}

func queryString(q url.Values, name string) *string {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return nil
	}
	return &s
}

func documentFilter(q url.Values) (models.DocumentFilter, error) {
	var filter models.DocumentFilter

	if s := queryString(q, "type"); s != nil {
		t := models.DocumentType(strings.ToUpper(*s))
		if !t.Valid() {
			return filter, invalid("type", fmt.Sprintf("must be one of %v", models.DocumentTypes))
		}
		filter.Type = &t
	}

	year, err := queryInt(q, "fiscalYear")
	if err != nil {
		return filter, err
	}
	filter.FiscalYear = year
	return filter, nil
}

func grievanceFilter(q url.Values) (models.GrievanceFilter, error) {
	var filter models.GrievanceFilter
	if s := queryString(q, "status"); s != nil {
		status := models.GrievanceStatus(strings.ToUpper(*s))
		if !status.Valid() {
			return filter, invalid("status", fmt.Sprintf("must be one of %v", models.GrievanceStatuses))
		}
		filter.Status = &status
	}
	return filter, nil
}
