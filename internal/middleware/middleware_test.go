package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"irportal/internal/httputil"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/health", "/health"},
		{"/api/documents", "/api/documents"},
		{"/api/documents/search", "/api/documents/search"},
		{"/api/documents/6f1c1a0e-5a8b-4c6e-9f57-0d6b7c2e9a41/download", "/api/documents/{id}/download"},
		{"/api/admin/grievances/6f1c1a0e-5a8b-4c6e-9f57-0d6b7c2e9a41", "/api/admin/grievances/{id}"},
		{"/uploads/6f1c1a0e-5a8b-4c6e-9f57-0d6b7c2e9a41.pdf", "/uploads/{name}"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := normalizePath(tt.path); got != tt.want {
				t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	h := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/documents", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(logs.String(), "panic recovered") {
		t.Errorf("expected panic to be logged, got %s", logs.String())
	}
}

func TestRequestLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	var seen string
	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = httputil.RequestID(r.Context())
		w.WriteHeader(http.StatusNotFound)
	}))

	t.Run("generates id", func(t *testing.T) {
		logs.Reset()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/documents/x", nil))

		if seen == "" {
			t.Fatal("expected request id in context")
		}
		if got := rec.Header().Get(httputil.RequestIDHeader); got != seen {
			t.Errorf("response header id %q != context id %q", got, seen)
		}

		var entry map[string]any
		if err := json.Unmarshal(logs.Bytes(), &entry); err != nil {
			t.Fatalf("log line is not JSON: %v", err)
		}
		if entry["level"] != "WARN" {
			t.Errorf("404 should log at WARN, got %v", entry["level"])
		}
		if entry["status"] != float64(http.StatusNotFound) {
			t.Errorf("status = %v", entry["status"])
		}
	})

	t.Run("reuses client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(httputil.RequestIDHeader, "abc-123")
		h.ServeHTTP(httptest.NewRecorder(), req)

		if seen != "abc-123" {
			t.Errorf("request id = %q, want abc-123", seen)
		}
	})
}
