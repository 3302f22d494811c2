package facade

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"irportal/internal/domain"
	"irportal/internal/domain/models"
	"irportal/internal/repository/kv"
	"irportal/internal/service"
)

func setupFacade(t *testing.T) *Facade {
	t.Helper()
	s := miniredis.RunT(t)

	client, err := kv.Connect(context.Background(), "redis://"+s.Addr())
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := kv.NewStore(client, "test_", logger)
	t.Cleanup(store.Close)

	return New(service.NewGateway(store, logger), logger)
}

func dispatch(t *testing.T, f *Facade, verb, path string, query url.Values, payload any) (any, error) {
	t.Helper()
	return f.Dispatch(context.Background(), Request{Verb: verb, Path: path, Query: query, Payload: payload})
}

func TestDispatch_Unsupported(t *testing.T) {
	f := setupFacade(t)

	tests := []struct {
		verb string
		path string
	}{
		{"GET", "/nope"},
		{"DELETE", "/admin/grievances/123"},
		{"PUT", "/admin/documents/123"},
		{"POST", "/documents"},
		{"GET", "/documents/123/download/extra"},
		{"GET", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.verb+" "+tt.path, func(t *testing.T) {
			_, err := dispatch(t, f, tt.verb, tt.path, nil, nil)

			var unsupported *domain.UnsupportedOperationError
			if !errors.As(err, &unsupported) {
				t.Fatalf("expected UnsupportedOperationError, got %v", err)
			}
			if unsupported.Verb != tt.verb || unsupported.Path != tt.path {
				t.Errorf("error names %s %s, want %s %s", unsupported.Verb, unsupported.Path, tt.verb, tt.path)
			}
		})
	}
}

func TestMatch_LiteralBeatsWildcard(t *testing.T) {
	f := setupFacade(t)

	tests := []struct {
		verb        string
		path        string
		wantPattern string
		wantID      string
	}{
		{"GET", "/documents/search", "/documents/search", ""},
		{"GET", "/documents/abc", "/documents/{id}", "abc"},
		{"GET", "/documents/abc/download", "/documents/{id}/download", "abc"},
		{"PATCH", "/admin/grievances/g-1", "/admin/grievances/{id}", "g-1"},
		{"GET", "/admin/stats/", "/admin/stats", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			route, id, ok := f.match(tt.verb, tt.path)
			if !ok {
				t.Fatal("expected a match")
			}
			if route.Pattern != tt.wantPattern {
				t.Errorf("matched %s, want %s", route.Pattern, tt.wantPattern)
			}
			if id != tt.wantID {
				t.Errorf("extracted id %q, want %q", id, tt.wantID)
			}
		})
	}
}

func TestRoutes_OneWildcardEach(t *testing.T) {
	f := setupFacade(t)
	for _, r := range f.routes {
		if r.wildcards > 1 {
			t.Errorf("%s %s has %d wildcards", r.Verb, r.Pattern, r.wildcards)
		}
	}
	if len(f.Routes()) != len(f.routes) {
		t.Error("Routes() must list every route")
	}
}

func TestGrievanceFlow(t *testing.T) {
	f := setupFacade(t)

	body := json.RawMessage(`{
		"name": "Jane Doe",
		"email": "jane@x.com",
		"phone": "9876543210",
		"subject": "Dividend query",
		"description": "I have not received my dividend for Q3 as expected."
	}`)
	out, err := dispatch(t, f, "POST", "/grievances", nil, body)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	g := out.(*models.Grievance)
	if g.Status != models.GrievanceOpen {
		t.Errorf("expected OPEN, got %s", g.Status)
	}

	stats, err := dispatch(t, f, "GET", "/admin/stats", nil, nil)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if active := stats.(*models.Stats).ActiveGrievances; active != 1 {
		t.Errorf("expected 1 active grievance, got %d", active)
	}

	_, err = dispatch(t, f, "PATCH", "/admin/grievances/"+g.ID, nil, []byte(`{"status":"RESOLVED","resolution":"Dividend re-credited"}`))
	if err != nil {
		t.Fatalf("patch failed: %v", err)
	}

	out, err = dispatch(t, f, "GET", "/admin/grievances/"+g.ID, nil, nil)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	got := out.(*models.Grievance)
	if got.Status != models.GrievanceResolved || got.Resolution == nil {
		t.Errorf("patch not applied: %+v", got)
	}

	stats, _ = dispatch(t, f, "GET", "/admin/stats", nil, nil)
	if active := stats.(*models.Stats).ActiveGrievances; active != 0 {
		t.Errorf("expected 0 active grievances, got %d", active)
	}

	out, err = dispatch(t, f, "GET", "/admin/grievances", url.Values{"status": {"resolved"}}, nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if n := len(out.([]models.Grievance)); n != 1 {
		t.Errorf("expected 1 resolved grievance, got %d", n)
	}
}

func TestPayloadForms(t *testing.T) {
	f := setupFacade(t)

	payloads := map[string]any{
		"typed pointer": &models.NewPromoter{Name: "Meera Rao", Category: models.PromoterIndividual},
		"typed value":   models.NewPromoter{Name: "Arjun Rao", Category: models.PromoterIndividual},
		"raw json":      json.RawMessage(`{"name":"Zenith Holdings","category":"Company"}`),
		"map":           map[string]any{"name": "Alpha Trust", "category": "Company", "sortOrder": 3},
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			if _, err := dispatch(t, f, "POST", "/admin/promoters", nil, payload); err != nil {
				t.Fatalf("create failed: %v", err)
			}
		})
	}

	out, err := dispatch(t, f, "GET", "/promoters", nil, nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if n := len(out.([]models.Promoter)); n != len(payloads) {
		t.Errorf("expected %d promoters, got %d", len(payloads), n)
	}
}

func TestBadInput(t *testing.T) {
	f := setupFacade(t)

	tests := []struct {
		name      string
		verb      string
		path      string
		query     url.Values
		payload   any
		wantField string
	}{
		{"missing body", "POST", "/admin/announcements", nil, nil, "body"},
		{"broken json", "POST", "/admin/announcements", nil, []byte(`{"title":`), "body"},
		{"fiscal year not a number", "GET", "/documents", url.Values{"fiscalYear": {"twenty"}}, nil, "fiscalYear"},
		{"unknown document type", "GET", "/documents", url.Values{"type": {"BROCHURE"}}, nil, "type"},
		{"unknown status", "GET", "/admin/grievances", url.Values{"status": {"CLOSED"}}, nil, "status"},
		{"bad isPublished", "GET", "/admin/announcements", url.Values{"isPublished": {"maybe"}}, nil, "isPublished"},
		{"search without q", "GET", "/documents/search", nil, nil, "q"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dispatch(t, f, tt.verb, tt.path, tt.query, tt.payload)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !ve.HasField(tt.wantField) {
				t.Errorf("expected field %q, got %+v", tt.wantField, ve.Fields)
			}
		})
	}
}

func TestDocumentRoutes(t *testing.T) {
	f := setupFacade(t)

	out, err := dispatch(t, f, "POST", "/admin/documents", nil, &models.NewDocument{
		Title:      "Annual Report 2024",
		Type:       models.DocumentAnnualReport,
		FiscalYear: func() *int { y := 2024; return &y }(),
		FileURL:    "/uploads/ar-2024.pdf",
		FileName:   "ar-2024.pdf",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	doc := out.(*models.Document)

	out, err = dispatch(t, f, "GET", "/documents", url.Values{"fiscalYear": {"2024"}, "type": {"annual_report"}}, nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if n := len(out.([]models.Document)); n != 1 {
		t.Errorf("expected 1 document for 2024, got %d", n)
	}

	out, err = dispatch(t, f, "GET", "/documents/search", url.Values{"q": {""}}, nil)
	if err != nil {
		t.Fatalf("empty search failed: %v", err)
	}
	if n := len(out.([]models.Document)); n != 0 {
		t.Errorf("empty query must return nothing, got %d", n)
	}

	out, err = dispatch(t, f, "GET", "/documents/"+doc.ID+"/download", nil, nil)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	if downloads := out.(*models.Document).Downloads; downloads != 1 {
		t.Errorf("expected 1 download, got %d", downloads)
	}

	_, err = dispatch(t, f, "GET", "/documents/missing/download", nil, nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing download, got %v", err)
	}
	_, err = dispatch(t, f, "GET", "/documents/missing", nil, nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing document, got %v", err)
	}

	if _, err := dispatch(t, f, "DELETE", "/admin/documents/"+doc.ID, nil, nil); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	out, _ = dispatch(t, f, "GET", "/admin/documents", nil, nil)
	if n := len(out.([]models.Document)); n != 0 {
		t.Errorf("expected no documents after delete, got %d", n)
	}
}

func TestPolicyRoutes(t *testing.T) {
	f := setupFacade(t)

	out, err := dispatch(t, f, "POST", "/admin/policies", nil, json.RawMessage(`{
		"title": "Code of Conduct",
		"description": "Applies to directors and senior management",
		"category": "Governance",
		"fileUrl": "/uploads/coc.pdf",
		"fileName": "coc.pdf",
		"effectiveDate": "2024-04-01T00:00:00Z"
	}`))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	p := out.(*models.Policy)

	if _, err := dispatch(t, f, "DELETE", "/admin/policies/"+p.ID, nil, nil); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	out, _ = dispatch(t, f, "GET", "/policies", nil, nil)
	if n := len(out.([]models.Policy)); n != 0 {
		t.Errorf("public list must hide inactive policies, got %d", n)
	}
	out, _ = dispatch(t, f, "GET", "/admin/policies", nil, nil)
	if n := len(out.([]models.Policy)); n != 1 {
		t.Errorf("admin list must include inactive policies, got %d", n)
	}

	out, err = dispatch(t, f, "GET", "/policies/"+p.ID+"/download", nil, nil)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	if out.(*models.Policy).IsActive {
		t.Error("expected the soft-deleted policy")
	}
}

func TestAnnouncementRoutes(t *testing.T) {
	f := setupFacade(t)

	for _, body := range []string{
		`{"title":"AGM notice","description":"AGM on 30 September","isPublished":true}`,
		`{"title":"Draft","description":"Not yet public"}`,
	} {
		if _, err := dispatch(t, f, "POST", "/admin/announcements", nil, []byte(body)); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	out, _ := dispatch(t, f, "GET", "/announcements", nil, nil)
	if n := len(out.([]models.Announcement)); n != 1 {
		t.Errorf("expected 1 published announcement, got %d", n)
	}
	out, _ = dispatch(t, f, "GET", "/admin/announcements", url.Values{"isPublished": {"false"}}, nil)
	if n := len(out.([]models.Announcement)); n != 1 {
		t.Errorf("expected 1 draft, got %d", n)
	}
	out, _ = dispatch(t, f, "GET", "/admin/announcements", nil, nil)
	if n := len(out.([]models.Announcement)); n != 2 {
		t.Errorf("expected 2 announcements, got %d", n)
	}
}
