// Package gatewaytest holds the behavioral contract every storage backend
// must satisfy. Backend packages call Run from their own tests.
package gatewaytest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"irportal/internal/domain"
	"irportal/internal/domain/models"
	"irportal/internal/domain/repositories"
	"irportal/internal/domain/services"
	"irportal/internal/service"
)

// NewStoreFunc returns an empty store; it is called once per subtest
type NewStoreFunc func(t *testing.T) *repositories.Store

// Run executes the full contract against the backend built by newStore
func Run(t *testing.T, newStore NewStoreFunc) {
	tests := []struct {
		name string
		fn   func(t *testing.T, gw *services.Gateway, store *repositories.Store)
	}{
		{"DocumentCreateDefaults", testDocumentCreateDefaults},
		{"DocumentGetMissing", testDocumentGetMissing},
		{"DocumentFilter", testDocumentFilter},
		{"DocumentFilterEveryType", testDocumentFilterEveryType},
		{"DocumentUpdateMerges", testDocumentUpdateMerges},
		{"DocumentUpdateMissing", testDocumentUpdateMissing},
		{"DocumentDelete", testDocumentDelete},
		{"IncrementDownloads", testIncrementDownloads},
		{"IncrementDownloadsMissing", testIncrementDownloadsMissing},
		{"SearchDocuments", testSearchDocuments},
		{"ListNewestFirst", testListNewestFirst},
		{"GrievanceValidation", testGrievanceValidation},
		{"GrievanceDescriptionBoundary", testGrievanceDescriptionBoundary},
		{"GrievanceLifecycle", testGrievanceLifecycle},
		{"GrievancePatchNullable", testGrievancePatchNullable},
		{"GrievancePatchSubmitterFields", testGrievancePatchSubmitterFields},
		{"GrievanceStatusFilter", testGrievanceStatusFilter},
		{"PolicySoftDelete", testPolicySoftDelete},
		{"AnnouncementPublish", testAnnouncementPublish},
		{"AnnouncementDelete", testAnnouncementDelete},
		{"BoardDirectorOrdering", testBoardDirectorOrdering},
		{"BoardDirectorDuplicateDIN", testBoardDirectorDuplicateDIN},
		{"PromoterOrdering", testPromoterOrdering},
		{"StatsMatchRecords", testStatsMatchRecords},
		{"SeedInTransaction", testSeedInTransaction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			tt.fn(t, service.NewGateway(store, logger), store)
		})
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func newDocument(title string, docType models.DocumentType, year *int) *models.NewDocument {
	return &models.NewDocument{
		Title:       title,
		Type:        docType,
		Description: "Filed with the exchange",
		FiscalYear:  year,
		FileURL:     "/uploads/" + strings.ReplaceAll(strings.ToLower(title), " ", "-") + ".pdf",
		FileName:    title + ".pdf",
		FileSize:    2048,
	}
}

func mustCreateDocument(t *testing.T, gw *services.Gateway, req *models.NewDocument) *models.Document {
	t.Helper()
	doc, err := gw.Documents.CreateDocument(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateDocument(%q) failed: %v", req.Title, err)
	}
	return doc
}

func janeDoe() *models.NewGrievance {
	return &models.NewGrievance{
		Name:        "Jane Doe",
		Email:       "jane@x.com",
		Phone:       "9876543210",
		Subject:     "Dividend query",
		Description: "I have not received my dividend for Q3 as expected.",
	}
}

func mustStats(t *testing.T, gw *services.Gateway) *models.Stats {
	t.Helper()
	stats, err := gw.Stats.ComputeStats(context.Background())
	if err != nil {
		t.Fatalf("ComputeStats failed: %v", err)
	}
	return stats
}

func testDocumentCreateDefaults(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	doc := mustCreateDocument(t, gw, newDocument("Annual Report 2024", models.DocumentAnnualReport, intPtr(2024)))

	if doc.ID == "" {
		t.Fatal("expected generated id")
	}
	if doc.Downloads != 0 {
		t.Errorf("expected 0 downloads, got %d", doc.Downloads)
	}
	if doc.Version != 1 {
		t.Errorf("expected version 1, got %d", doc.Version)
	}
	if doc.Metadata == nil {
		t.Error("expected empty metadata object, got nil")
	}
	if !doc.CreatedAt.Equal(doc.UpdatedAt) {
		t.Errorf("expected createdAt == updatedAt, got %v and %v", doc.CreatedAt, doc.UpdatedAt)
	}

	got, err := gw.Documents.GetDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored document")
	}
	if got.Title != doc.Title || got.Type != doc.Type || got.FileSize != doc.FileSize {
		t.Errorf("stored document differs: got %+v, want %+v", got, doc)
	}
	if got.FiscalYear == nil || *got.FiscalYear != 2024 {
		t.Errorf("expected fiscal year 2024, got %v", got.FiscalYear)
	}
	if !got.CreatedAt.Equal(doc.CreatedAt) {
		t.Errorf("createdAt changed in storage: got %v, want %v", got.CreatedAt, doc.CreatedAt)
	}
}

func testDocumentGetMissing(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	got, err := gw.Documents.GetDocument(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("expected no error for missing document, got %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func testDocumentFilter(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	mustCreateDocument(t, gw, newDocument("Annual Report 2024", models.DocumentAnnualReport, intPtr(2024)))
	mustCreateDocument(t, gw, newDocument("Annual Report 2023", models.DocumentAnnualReport, intPtr(2023)))
	mustCreateDocument(t, gw, newDocument("Q1 Results 2024", models.DocumentQuarterlyResult, intPtr(2024)))
	mustCreateDocument(t, gw, newDocument("Code of Conduct", models.DocumentGovernance, nil))

	annual := models.DocumentAnnualReport
	tests := []struct {
		name   string
		filter models.DocumentFilter
		want   []string
	}{
		{"no filter", models.DocumentFilter{}, []string{"Annual Report 2023", "Annual Report 2024", "Code of Conduct", "Q1 Results 2024"}},
		{"fiscal year 2024", models.DocumentFilter{FiscalYear: intPtr(2024)}, []string{"Annual Report 2024", "Q1 Results 2024"}},
		{"fiscal year 2023", models.DocumentFilter{FiscalYear: intPtr(2023)}, []string{"Annual Report 2023"}},
		{"type", models.DocumentFilter{Type: &annual}, []string{"Annual Report 2023", "Annual Report 2024"}},
		{"type and year", models.DocumentFilter{Type: &annual, FiscalYear: intPtr(2024)}, []string{"Annual Report 2024"}},
		{"no match", models.DocumentFilter{FiscalYear: intPtr(1999)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := gw.Documents.ListDocuments(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListDocuments failed: %v", err)
			}
			if docs == nil {
				t.Fatal("expected empty slice, got nil")
			}
			assertTitles(t, docs, tt.want)
		})
	}
}

func testDocumentFilterEveryType(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	for _, docType := range models.DocumentTypes {
		mustCreateDocument(t, gw, newDocument(string(docType)+" filing", docType, intPtr(2024)))
	}

	all, err := gw.Documents.ListDocuments(ctx, models.DocumentFilter{})
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(all) != len(models.DocumentTypes) {
		t.Fatalf("expected %d documents, got %d", len(models.DocumentTypes), len(all))
	}

	union := make(map[string]bool, len(all))
	for _, docType := range models.DocumentTypes {
		docType := docType
		docs, err := gw.Documents.ListDocuments(ctx, models.DocumentFilter{Type: &docType})
		if err != nil {
			t.Fatalf("ListDocuments(%s) failed: %v", docType, err)
		}
		if len(docs) != 1 {
			t.Errorf("%s: expected 1 document, got %d", docType, len(docs))
		}
		for _, d := range docs {
			if d.Type != docType {
				t.Errorf("%s filter returned a %s document", docType, d.Type)
			}
			union[d.ID] = true
		}
	}

	if len(union) != len(all) {
		t.Errorf("per-type results cover %d documents, unfiltered list has %d", len(union), len(all))
	}
	for _, d := range all {
		if !union[d.ID] {
			t.Errorf("document %q missing from every per-type result", d.Title)
		}
	}
}

func assertTitles(t *testing.T, docs []models.Document, want []string) {
	t.Helper()
	got := make(map[string]bool, len(docs))
	for _, d := range docs {
		got[d.Title] = true
	}
	if len(docs) != len(want) {
		t.Fatalf("expected %d documents %v, got %d", len(want), want, len(docs))
	}
	for _, title := range want {
		if !got[title] {
			t.Errorf("expected %q in results", title)
		}
	}
}

func testDocumentUpdateMerges(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	doc := mustCreateDocument(t, gw, newDocument("Annual Report 2024", models.DocumentAnnualReport, intPtr(2024)))

	time.Sleep(2 * time.Millisecond)
	updated, err := gw.Documents.UpdateDocument(ctx, doc.ID, &models.DocumentPatch{Title: strPtr("Annual Report FY2024")})
	if err != nil {
		t.Fatalf("UpdateDocument failed: %v", err)
	}

	if updated.Title != "Annual Report FY2024" {
		t.Errorf("expected new title, got %q", updated.Title)
	}
	if updated.FileURL != doc.FileURL || updated.Type != doc.Type {
		t.Error("fields absent from the patch must keep their values")
	}
	if !updated.UpdatedAt.After(doc.UpdatedAt) {
		t.Errorf("expected updatedAt to advance past %v, got %v", doc.UpdatedAt, updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(doc.CreatedAt) {
		t.Error("createdAt must not change on update")
	}

	got, err := gw.Documents.GetDocument(ctx, doc.ID)
	if err != nil || got == nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if got.Title != "Annual Report FY2024" {
		t.Errorf("update not persisted, got title %q", got.Title)
	}
}

func testDocumentUpdateMissing(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	_, err := gw.Documents.UpdateDocument(context.Background(), "missing", &models.DocumentPatch{Title: strPtr("x")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func testDocumentDelete(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	doc := mustCreateDocument(t, gw, newDocument("Q2 Results", models.DocumentQuarterlyResult, intPtr(2024)))

	if err := gw.Documents.DeleteDocument(ctx, doc.ID); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}

	got, err := gw.Documents.GetDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if got != nil {
		t.Error("expected document to be gone after hard delete")
	}

	if err := gw.Documents.DeleteDocument(ctx, doc.ID); err != nil {
		t.Errorf("deleting twice should be a no-op, got %v", err)
	}
}

func testIncrementDownloads(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	doc := mustCreateDocument(t, gw, newDocument("Annual Report 2024", models.DocumentAnnualReport, intPtr(2024)))

	const n = 7
	for i := 0; i < n; i++ {
		if err := gw.Documents.IncrementDownloads(ctx, doc.ID); err != nil {
			t.Fatalf("IncrementDownloads failed: %v", err)
		}
	}

	got, err := gw.Documents.GetDocument(ctx, doc.ID)
	if err != nil || got == nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if got.Downloads != n {
		t.Errorf("expected %d downloads, got %d", n, got.Downloads)
	}

	recorded, err := gw.Documents.RecordDownload(ctx, doc.ID)
	if err != nil {
		t.Fatalf("RecordDownload failed: %v", err)
	}
	if recorded.Downloads != n+1 {
		t.Errorf("expected %d downloads after RecordDownload, got %d", n+1, recorded.Downloads)
	}
}

func testIncrementDownloadsMissing(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	if err := gw.Documents.IncrementDownloads(ctx, "missing"); err != nil {
		t.Errorf("expected silent no-op for missing document, got %v", err)
	}

	_, err := gw.Documents.RecordDownload(ctx, "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound from RecordDownload, got %v", err)
	}
}

func testSearchDocuments(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	mustCreateDocument(t, gw, newDocument("Annual Report 2024", models.DocumentAnnualReport, intPtr(2024)))
	policy := newDocument("Whistle Blower", models.DocumentPolicy, nil)
	policy.Description = "Vigil mechanism for directors and employees"
	mustCreateDocument(t, gw, policy)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty", "", nil},
		{"whitespace", "   ", nil},
		{"title case-insensitive", "ANNUAL", []string{"Annual Report 2024"}},
		{"mixed case", "aNNuAL rEPORT", []string{"Annual Report 2024"}},
		{"description", "vigil", []string{"Whistle Blower"}},
		{"description mixed case", "VIGIL Mechanism", []string{"Whistle Blower"}},
		{"trailing whitespace kept", "2024 ", nil},
		{"surrounding whitespace kept", " Report ", []string{"Annual Report 2024"}},
		{"wildcard literal", "%", nil},
		{"underscore literal", "_", nil},
		{"no match", "dividend", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := gw.Documents.SearchDocuments(ctx, tt.query)
			if err != nil {
				t.Fatalf("SearchDocuments(%q) failed: %v", tt.query, err)
			}
			if docs == nil {
				t.Fatal("expected empty slice, got nil")
			}
			assertTitles(t, docs, tt.want)
		})
	}
}

func testListNewestFirst(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	titles := []string{"First", "Second", "Third"}
	for _, title := range titles {
		mustCreateDocument(t, gw, newDocument(title, models.DocumentAnnouncement, nil))
		time.Sleep(2 * time.Millisecond)
	}

	docs, err := gw.Documents.ListDocuments(ctx, models.DocumentFilter{})
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	for i, want := range []string{"Third", "Second", "First"} {
		if docs[i].Title != want {
			t.Errorf("position %d: expected %q, got %q", i, want, docs[i].Title)
		}
	}
}

func testGrievanceValidation(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	req := &models.NewGrievance{
		Name:        "J",
		Email:       "not-an-email",
		Phone:       "12345",
		Subject:     "Hi",
		Description: "too short",
	}

	_, err := gw.Grievances.CreateGrievance(ctx, req)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"name", "email", "phone", "subject", "description"} {
		if !ve.HasField(field) {
			t.Errorf("expected %q among invalid fields, got %+v", field, ve.Fields)
		}
	}

	list, err := gw.Grievances.ListGrievances(ctx, models.GrievanceFilter{})
	if err != nil {
		t.Fatalf("ListGrievances failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("invalid grievance must not be stored, found %d", len(list))
	}
}

func testGrievanceDescriptionBoundary(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	tests := []struct {
		name    string
		length  int
		wantErr bool
	}{
		{"19 characters", 19, true},
		{"20 characters", 20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := janeDoe()
			req.Description = strings.Repeat("d", tt.length)

			_, err := gw.Grievances.CreateGrievance(context.Background(), req)
			if tt.wantErr {
				var ve *domain.ValidationError
				if !errors.As(err, &ve) || !ve.HasField("description") {
					t.Errorf("expected description ValidationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("expected success, got %v", err)
			}
		})
	}
}

func testGrievanceLifecycle(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	before := mustStats(t, gw)

	g, err := gw.Grievances.CreateGrievance(ctx, janeDoe())
	if err != nil {
		t.Fatalf("CreateGrievance failed: %v", err)
	}
	if g.Status != models.GrievanceOpen {
		t.Errorf("expected status OPEN, got %s", g.Status)
	}
	if g.Attachments == nil {
		t.Error("expected empty attachments list, got nil")
	}

	open := mustStats(t, gw)
	if open.ActiveGrievances != before.ActiveGrievances+1 {
		t.Errorf("expected %d active grievances, got %d", before.ActiveGrievances+1, open.ActiveGrievances)
	}

	resolved := models.GrievanceResolved
	if _, err := gw.Grievances.UpdateGrievance(ctx, g.ID, &models.GrievancePatch{Status: &resolved}); err != nil {
		t.Fatalf("UpdateGrievance failed: %v", err)
	}

	got, err := gw.Grievances.GetGrievance(ctx, g.ID)
	if err != nil || got == nil {
		t.Fatalf("GetGrievance failed: %v", err)
	}
	if got.Status != models.GrievanceResolved {
		t.Errorf("expected RESOLVED, got %s", got.Status)
	}
	if got.Name != "Jane Doe" || got.Email != "jane@x.com" {
		t.Error("submitter fields must survive an admin update")
	}

	after := mustStats(t, gw)
	if after.ActiveGrievances != open.ActiveGrievances-1 {
		t.Errorf("expected active grievances to drop to %d, got %d", open.ActiveGrievances-1, after.ActiveGrievances)
	}

	bogus := models.GrievanceStatus("CLOSED")
	_, err = gw.Grievances.UpdateGrievance(ctx, g.ID, &models.GrievancePatch{Status: &bogus})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for unknown status, got %v", err)
	}
}

func testGrievancePatchNullable(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	req := janeDoe()
	req.Attachments = []models.Attachment{
		{Filename: "statement.pdf", Path: "/uploads/a.pdf", Size: 1024, MimeType: "application/pdf"},
		{Filename: "id.png", Path: "/uploads/b.png", Size: 2048, MimeType: "image/png"},
	}
	g, err := gw.Grievances.CreateGrievance(ctx, req)
	if err != nil {
		t.Fatalf("CreateGrievance failed: %v", err)
	}

	_, err = gw.Grievances.UpdateGrievance(ctx, g.ID, &models.GrievancePatch{AssignedTo: models.Set("Compliance Officer")})
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	got, _ := gw.Grievances.GetGrievance(ctx, g.ID)
	if got.AssignedTo == nil || *got.AssignedTo != "Compliance Officer" {
		t.Fatalf("expected assignee, got %v", got.AssignedTo)
	}
	if len(got.Attachments) != 2 || got.Attachments[1].MimeType != "image/png" {
		t.Errorf("attachments not preserved: %+v", got.Attachments)
	}

	_, err = gw.Grievances.UpdateGrievance(ctx, g.ID, &models.GrievancePatch{AssignedTo: models.OptionalString{Present: true}})
	if err != nil {
		t.Fatalf("unassign failed: %v", err)
	}
	got, _ = gw.Grievances.GetGrievance(ctx, g.ID)
	if got.AssignedTo != nil {
		t.Errorf("expected assignee cleared, got %q", *got.AssignedTo)
	}
}

func testGrievancePatchSubmitterFields(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	g, err := gw.Grievances.CreateGrievance(ctx, janeDoe())
	if err != nil {
		t.Fatalf("CreateGrievance failed: %v", err)
	}

	invalid := []struct {
		name  string
		patch *models.GrievancePatch
	}{
		{"short name", &models.GrievancePatch{Name: strPtr("J")}},
		{"blank name", &models.GrievancePatch{Name: strPtr("   ")}},
		{"bad email", &models.GrievancePatch{Email: strPtr("jane.x.com")}},
		{"short phone", &models.GrievancePatch{Phone: strPtr("12345")}},
		{"short subject", &models.GrievancePatch{Subject: strPtr("Divi")}},
		{"short description", &models.GrievancePatch{Description: strPtr("too short")}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gw.Grievances.UpdateGrievance(ctx, g.ID, tt.patch)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}

	got, _ := gw.Grievances.GetGrievance(ctx, g.ID)
	if got.Name != "Jane Doe" || got.Email != "jane@x.com" || got.Subject != "Dividend query" {
		t.Fatalf("rejected patches must not change the grievance, got %+v", got)
	}

	updated, err := gw.Grievances.UpdateGrievance(ctx, g.ID, &models.GrievancePatch{
		Subject: strPtr("  Unpaid interim dividend  "),
		Email:   strPtr("jane.doe@x.com"),
	})
	if err != nil {
		t.Fatalf("UpdateGrievance failed: %v", err)
	}
	if updated.Subject != "Unpaid interim dividend" {
		t.Errorf("expected trimmed subject, got %q", updated.Subject)
	}

	got, _ = gw.Grievances.GetGrievance(ctx, g.ID)
	if got.Subject != "Unpaid interim dividend" || got.Email != "jane.doe@x.com" {
		t.Errorf("patch not persisted: subject %q email %q", got.Subject, got.Email)
	}
	if got.Name != "Jane Doe" || got.Phone != "9876543210" {
		t.Error("fields absent from the patch must keep their values")
	}
}

func testGrievanceStatusFilter(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	first, err := gw.Grievances.CreateGrievance(ctx, janeDoe())
	if err != nil {
		t.Fatalf("CreateGrievance failed: %v", err)
	}
	if _, err := gw.Grievances.CreateGrievance(ctx, janeDoe()); err != nil {
		t.Fatalf("CreateGrievance failed: %v", err)
	}

	inProgress := models.GrievanceInProgress
	if _, err := gw.Grievances.UpdateGrievance(ctx, first.ID, &models.GrievancePatch{Status: &inProgress}); err != nil {
		t.Fatalf("UpdateGrievance failed: %v", err)
	}

	open := models.GrievanceOpen
	tests := []struct {
		name   string
		status *models.GrievanceStatus
		want   int
	}{
		{"all", nil, 2},
		{"open", &open, 1},
		{"in progress", &inProgress, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := gw.Grievances.ListGrievances(ctx, models.GrievanceFilter{Status: tt.status})
			if err != nil {
				t.Fatalf("ListGrievances failed: %v", err)
			}
			if len(list) != tt.want {
				t.Errorf("expected %d grievances, got %d", tt.want, len(list))
			}
		})
	}
}

func newPolicy(title, category string) *models.NewPolicy {
	return &models.NewPolicy{
		Title:         title,
		Description:   title + " adopted by the board",
		Category:      category,
		FileURL:       "/uploads/policy.pdf",
		FileName:      "policy.pdf",
		EffectiveDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testPolicySoftDelete(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	p, err := gw.Policies.CreatePolicy(ctx, newPolicy("Dividend Distribution Policy", "Finance"))
	if err != nil {
		t.Fatalf("CreatePolicy failed: %v", err)
	}
	if !p.IsActive || p.Version != 1 {
		t.Errorf("expected active version 1, got active=%v version=%d", p.IsActive, p.Version)
	}
	if _, err := gw.Policies.CreatePolicy(ctx, newPolicy("Code of Conduct", "Governance")); err != nil {
		t.Fatalf("CreatePolicy failed: %v", err)
	}

	before := mustStats(t, gw)
	if before.TotalPolicies != 2 {
		t.Fatalf("expected 2 active policies, got %d", before.TotalPolicies)
	}

	if err := gw.Policies.DeletePolicy(ctx, p.ID); err != nil {
		t.Fatalf("DeletePolicy failed: %v", err)
	}
	if err := gw.Policies.DeletePolicy(ctx, p.ID); err != nil {
		t.Errorf("second DeletePolicy should be a no-op, got %v", err)
	}

	active, err := gw.Policies.ListPolicies(ctx, models.PolicyFilter{})
	if err != nil {
		t.Fatalf("ListPolicies failed: %v", err)
	}
	if len(active) != 1 || active[0].Title != "Code of Conduct" {
		t.Errorf("expected only the active policy, got %+v", active)
	}

	all, err := gw.Policies.ListPolicies(ctx, models.PolicyFilter{IncludeInactive: true})
	if err != nil {
		t.Fatalf("ListPolicies failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 policies including inactive, got %d", len(all))
	}

	got, err := gw.Policies.GetPolicy(ctx, p.ID)
	if err != nil || got == nil {
		t.Fatalf("soft-deleted policy must stay retrievable: %v", err)
	}
	if got.IsActive {
		t.Error("expected isActive=false after delete")
	}
	if !got.EffectiveDate.Equal(p.EffectiveDate) {
		t.Errorf("effective date changed: got %v, want %v", got.EffectiveDate, p.EffectiveDate)
	}

	if after := mustStats(t, gw); after.TotalPolicies != 1 {
		t.Errorf("expected 1 active policy in stats, got %d", after.TotalPolicies)
	}

	category := "Governance"
	byCategory, err := gw.Policies.ListPolicies(ctx, models.PolicyFilter{Category: &category})
	if err != nil {
		t.Fatalf("ListPolicies failed: %v", err)
	}
	if len(byCategory) != 1 {
		t.Errorf("expected 1 governance policy, got %d", len(byCategory))
	}
}

func testAnnouncementPublish(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	a, err := gw.Announcements.CreateAnnouncement(ctx, &models.NewAnnouncement{
		Title:       "Board meeting",
		Description: "Board meeting to approve Q3 results",
	})
	if err != nil {
		t.Fatalf("CreateAnnouncement failed: %v", err)
	}
	if a.Priority != models.PriorityNormal {
		t.Errorf("expected default priority NORMAL, got %s", a.Priority)
	}
	if a.IsPublished || a.PublishedAt != nil {
		t.Error("new announcement should be unpublished")
	}

	published := true
	if _, err := gw.Announcements.UpdateAnnouncement(ctx, a.ID, &models.AnnouncementPatch{IsPublished: &published}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	got, err := gw.Announcements.GetAnnouncement(ctx, a.ID)
	if err != nil || got == nil {
		t.Fatalf("GetAnnouncement failed: %v", err)
	}
	if !got.IsPublished || got.PublishedAt == nil {
		t.Errorf("expected published with timestamp, got %+v", got)
	}

	list, err := gw.Announcements.ListAnnouncements(ctx, models.AnnouncementFilter{IsPublished: &published})
	if err != nil {
		t.Fatalf("ListAnnouncements failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 published announcement, got %d", len(list))
	}

	bad := models.AnnouncementPriority("URGENT")
	_, err = gw.Announcements.UpdateAnnouncement(ctx, a.ID, &models.AnnouncementPatch{Priority: &bad})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for unknown priority, got %v", err)
	}
}

func testAnnouncementDelete(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	a, err := gw.Announcements.CreateAnnouncement(ctx, &models.NewAnnouncement{
		Title:       "AGM notice",
		Description: "Annual general meeting on 30 September",
		Priority:    models.PriorityHigh,
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("CreateAnnouncement failed: %v", err)
	}
	if a.PublishedAt == nil {
		t.Error("announcement created as published should carry publishedAt")
	}

	if err := gw.Announcements.DeleteAnnouncement(ctx, a.ID); err != nil {
		t.Fatalf("DeleteAnnouncement failed: %v", err)
	}
	got, err := gw.Announcements.GetAnnouncement(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetAnnouncement failed: %v", err)
	}
	if got != nil {
		t.Error("expected announcement to be gone")
	}
}

func testBoardDirectorOrdering(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	directors := []models.NewBoardDirector{
		{Name: "Ravi Kumar", Designation: "Independent Director", DIN: "00000003", SortOrder: 2},
		{Name: "Anita Shah", Designation: "Managing Director", DIN: "00000001", SortOrder: 1},
		{Name: "Aman Verma", Designation: "Independent Director", DIN: "00000002", SortOrder: 2},
	}
	for i := range directors {
		if _, err := gw.Board.CreateBoardDirector(ctx, &directors[i]); err != nil {
			t.Fatalf("CreateBoardDirector failed: %v", err)
		}
	}

	list, err := gw.Board.ListBoardDirectors(ctx)
	if err != nil {
		t.Fatalf("ListBoardDirectors failed: %v", err)
	}
	want := []string{"Anita Shah", "Aman Verma", "Ravi Kumar"}
	if len(list) != len(want) {
		t.Fatalf("expected %d directors, got %d", len(want), len(list))
	}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, list[i].Name)
		}
	}

	if err := gw.Board.DeleteBoardDirector(ctx, list[0].ID); err != nil {
		t.Fatalf("DeleteBoardDirector failed: %v", err)
	}
	list, _ = gw.Board.ListBoardDirectors(ctx)
	if len(list) != 2 {
		t.Errorf("expected 2 directors after delete, got %d", len(list))
	}
}

func testBoardDirectorDuplicateDIN(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	first := &models.NewBoardDirector{Name: "Anita Shah", Designation: "Managing Director", DIN: "01234567"}
	if _, err := gw.Board.CreateBoardDirector(ctx, first); err != nil {
		t.Fatalf("CreateBoardDirector failed: %v", err)
	}

	dup := &models.NewBoardDirector{Name: "Someone Else", Designation: "Director", DIN: "01234567"}
	_, err := gw.Board.CreateBoardDirector(ctx, dup)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate DIN, got %v", err)
	}

	second, err := gw.Board.CreateBoardDirector(ctx, &models.NewBoardDirector{Name: "Aman Verma", Designation: "Director", DIN: "07654321"})
	if err != nil {
		t.Fatalf("CreateBoardDirector failed: %v", err)
	}
	_, err = gw.Board.UpdateBoardDirector(ctx, second.ID, &models.BoardDirectorPatch{DIN: strPtr("01234567")})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict when updating to a taken DIN, got %v", err)
	}

	_, err = gw.Board.UpdateBoardDirector(ctx, second.ID, &models.BoardDirectorPatch{Experience: strPtr("20 years in banking")})
	if err != nil {
		t.Errorf("updating other fields must not trip the DIN check: %v", err)
	}
}

func testPromoterOrdering(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	promoters := []models.NewPromoter{
		{Name: "Zenith Holdings", Category: models.PromoterCompany, SortOrder: 1},
		{Name: "Meera Rao", Category: models.PromoterIndividual, SortOrder: 0},
		{Name: "Alpha Trust", Category: models.PromoterCompany, SortOrder: 1},
	}
	for i := range promoters {
		if _, err := gw.Board.CreatePromoter(ctx, &promoters[i]); err != nil {
			t.Fatalf("CreatePromoter failed: %v", err)
		}
	}

	list, err := gw.Board.ListPromoters(ctx)
	if err != nil {
		t.Fatalf("ListPromoters failed: %v", err)
	}
	want := []string{"Meera Rao", "Alpha Trust", "Zenith Holdings"}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, list[i].Name)
		}
	}

	_, err = gw.Board.CreatePromoter(ctx, &models.NewPromoter{Name: "Bad Category", Category: "Trust"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for unknown category, got %v", err)
	}
}

func testStatsMatchRecords(t *testing.T, gw *services.Gateway, _ *repositories.Store) {
	ctx := context.Background()
	empty := mustStats(t, gw)
	if *empty != (models.Stats{}) {
		t.Errorf("expected zero stats on an empty store, got %+v", empty)
	}

	a := mustCreateDocument(t, gw, newDocument("Annual Report 2024", models.DocumentAnnualReport, intPtr(2024)))
	b := mustCreateDocument(t, gw, newDocument("Q1 Results 2024", models.DocumentQuarterlyResult, intPtr(2024)))
	for i := 0; i < 3; i++ {
		_ = gw.Documents.IncrementDownloads(ctx, a.ID)
	}
	_ = gw.Documents.IncrementDownloads(ctx, b.ID)

	docs, err := gw.Documents.ListDocuments(ctx, models.DocumentFilter{})
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}

	stats := mustStats(t, gw)
	if stats.TotalDocuments != len(docs) {
		t.Errorf("totalDocuments %d does not match list size %d", stats.TotalDocuments, len(docs))
	}
	if stats.MonthlyDownloads != 4 {
		t.Errorf("expected 4 downloads in total, got %d", stats.MonthlyDownloads)
	}

	if err := gw.Documents.DeleteDocument(ctx, b.ID); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}
	stats = mustStats(t, gw)
	if stats.TotalDocuments != 1 || stats.MonthlyDownloads != 3 {
		t.Errorf("expected stats to reflect the delete immediately, got %+v", stats)
	}
}

// testSeedInTransaction runs several creates as one unit of work, the way
// the seeder loads a seed file
func testSeedInTransaction(t *testing.T, gw *services.Gateway, store *repositories.Store) {
	ctx := context.Background()
	err := store.Tx.ExecTx(ctx, func(txCtx context.Context) error {
		for _, name := range []string{"Meera Rao", "Arjun Rao"} {
			if _, err := gw.Board.CreatePromoter(txCtx, &models.NewPromoter{Name: name, Category: models.PromoterIndividual}); err != nil {
				return err
			}
		}
		_, err := gw.Board.CreateBoardDirector(txCtx, &models.NewBoardDirector{
			Name: "Anita Shah", Designation: "Managing Director", DIN: "00000001",
		})
		return err
	})
	if err != nil {
		t.Fatalf("ExecTx failed: %v", err)
	}

	promoters, err := gw.Board.ListPromoters(ctx)
	if err != nil {
		t.Fatalf("ListPromoters failed: %v", err)
	}
	if len(promoters) != 2 {
		t.Errorf("expected 2 promoters after commit, got %d", len(promoters))
	}
	directors, err := gw.Board.ListBoardDirectors(ctx)
	if err != nil {
		t.Fatalf("ListBoardDirectors failed: %v", err)
	}
	if len(directors) != 1 {
		t.Errorf("expected 1 director after commit, got %d", len(directors))
	}
}
