package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondErrorWithExtras(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorWithExtras(rec, http.StatusBadRequest, "validation failed", map[string]interface{}{
		"fields": []map[string]string{{"field": "email", "message": "must be a valid email address"}},
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("content type = %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["title"] != "Bad Request" || body["detail"] != "validation failed" {
		t.Errorf("unexpected problem %v", body)
	}
	if _, ok := body["fields"]; !ok {
		t.Error("extras should be flattened into the problem object")
	}
}

func TestErrorTypeFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusNotFound, "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.4"},
		{http.StatusMethodNotAllowed, "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.5"},
		{http.StatusTeapot, "about:blank"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			if got := errorTypeFromStatus(tt.status); got != tt.want {
				t.Errorf("errorTypeFromStatus(%d) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{name: "empty", body: "", want: ""},
		{name: "whitespace", body: "  \n", want: ""},
		{name: "object", body: ` {"status":"OPEN"} `, want: `{"status":"OPEN"}`},
		{name: "truncated", body: `{"status":`, wantErr: ErrInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/grievances", strings.NewReader(tt.body))
			got, err := ReadJSON(httptest.NewRecorder(), req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("ReadJSON = %q, want %q", got, tt.want)
			}
			if tt.want == "" && got != nil {
				t.Error("empty body should yield nil")
			}
		})
	}
}
