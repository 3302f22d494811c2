package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"irportal/internal/domain"
	"irportal/internal/domain/models"
)

func validGrievance() *models.NewGrievance {
	return &models.NewGrievance{
		Name:        "Jane Doe",
		Email:       "jane@x.com",
		Phone:       "9876543210",
		Subject:     "Dividend query",
		Description: "I have not received my dividend for Q3 as expected.",
	}
}

func TestValidateNewGrievance(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(g *models.NewGrievance)
		wantFields []string
	}{
		{"valid", func(g *models.NewGrievance) {}, nil},
		{"name too short", func(g *models.NewGrievance) { g.Name = "J" }, []string{"name"}},
		{"name exactly two", func(g *models.NewGrievance) { g.Name = "Jo" }, nil},
		{"bad email", func(g *models.NewGrievance) { g.Email = "jane.x.com" }, []string{"email"}},
		{"phone nine digits", func(g *models.NewGrievance) { g.Phone = "987654321" }, []string{"phone"}},
		{"phone ten digits", func(g *models.NewGrievance) { g.Phone = "9876543210" }, nil},
		{"subject four", func(g *models.NewGrievance) { g.Subject = "Divi" }, []string{"subject"}},
		{"description 19", func(g *models.NewGrievance) { g.Description = strings.Repeat("x", 19) }, []string{"description"}},
		{"description 20", func(g *models.NewGrievance) { g.Description = strings.Repeat("x", 20) }, nil},
		{"six attachments", func(g *models.NewGrievance) { g.Attachments = make([]models.Attachment, 6) }, []string{"attachments"}},
		{"five attachments", func(g *models.NewGrievance) { g.Attachments = make([]models.Attachment, 5) }, nil},
		{
			"everything wrong",
			func(g *models.NewGrievance) { *g = models.NewGrievance{Name: "J", Email: "x", Phone: "1", Subject: "a", Description: "b"} },
			[]string{"description", "email", "name", "phone", "subject"},
		},
		{
			"missing required",
			func(g *models.NewGrievance) { *g = models.NewGrievance{} },
			[]string{"description", "email", "name", "phone", "subject"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validGrievance()
			tt.mutate(g)
			assertFields(t, validateNewGrievance(g), tt.wantFields)
		})
	}
}

// assertFields checks err lists exactly the wanted fields
func assertFields(t *testing.T, err error, want []string) {
	t.Helper()
	if len(want) == 0 {
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		return
	}

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Error("expected errors.Is(err, ErrValidation)")
	}
	if len(ve.Fields) != len(want) {
		t.Fatalf("expected fields %v, got %+v", want, ve.Fields)
	}
	for i, field := range want {
		if ve.Fields[i].Field != field {
			t.Errorf("field %d: expected %q, got %q", i, field, ve.Fields[i].Field)
		}
		if ve.Fields[i].Message == "" {
			t.Errorf("field %q has no message", field)
		}
	}
}

func TestValidateNewDocument(t *testing.T) {
	year := func(y int) *int { return &y }
	valid := func() *models.NewDocument {
		return &models.NewDocument{
			Title:    "Annual Report 2024",
			Type:     models.DocumentAnnualReport,
			FileURL:  "/uploads/a.pdf",
			FileName: "a.pdf",
		}
	}

	tests := []struct {
		name       string
		mutate     func(d *models.NewDocument)
		wantFields []string
	}{
		{"valid", func(d *models.NewDocument) {}, nil},
		{"with fiscal year", func(d *models.NewDocument) { d.FiscalYear = year(2024) }, nil},
		{"three digit year", func(d *models.NewDocument) { d.FiscalYear = year(999) }, []string{"fiscalYear"}},
		{"five digit year", func(d *models.NewDocument) { d.FiscalYear = year(20245) }, []string{"fiscalYear"}},
		{"zero year", func(d *models.NewDocument) { d.FiscalYear = year(0) }, []string{"fiscalYear"}},
		{"negative year", func(d *models.NewDocument) { d.FiscalYear = year(-2024) }, []string{"fiscalYear"}},
		{"unknown type", func(d *models.NewDocument) { d.Type = "BROCHURE" }, []string{"type"}},
		{"negative size", func(d *models.NewDocument) { d.FileSize = -1 }, []string{"fileSize"}},
		{"missing file", func(d *models.NewDocument) { d.FileURL, d.FileName = "", "" }, []string{"fileName", "fileUrl"}},
		{"missing title and type", func(d *models.NewDocument) { d.Title, d.Type = "", "" }, []string{"title", "type"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid()
			tt.mutate(d)
			assertFields(t, validateNewDocument(d), tt.wantFields)
		})
	}
}

func TestValidatePatches(t *testing.T) {
	blank := "  "
	title := "New title"
	badType := models.DocumentType("BROCHURE")
	badStatus := models.GrievanceStatus("CLOSED")
	resolved := models.GrievanceResolved
	badPriority := models.AnnouncementPriority("URGENT")
	badDIN := "AB12"
	badCategory := models.PromoterCategory("Trust")
	zeroYear, lowYear, fourDigits := 0, 999, 1000
	shortName, badEmail, shortPhone := "J", "jane.x.com", "12345"
	shortSubject, shortDescription := "Divi", "too short"

	tests := []struct {
		name       string
		err        error
		wantFields []string
	}{
		{"empty document patch", validateDocumentPatch(&models.DocumentPatch{}), nil},
		{"document title", validateDocumentPatch(&models.DocumentPatch{Title: &title}), nil},
		{"blank document title", validateDocumentPatch(&models.DocumentPatch{Title: &blank}), []string{"title"}},
		{"bad document type", validateDocumentPatch(&models.DocumentPatch{Type: &badType}), []string{"type"}},
		{"zero fiscal year", validateDocumentPatch(&models.DocumentPatch{FiscalYear: &zeroYear}), []string{"fiscalYear"}},
		{"three digit fiscal year", validateDocumentPatch(&models.DocumentPatch{FiscalYear: &lowYear}), []string{"fiscalYear"}},
		{"smallest fiscal year", validateDocumentPatch(&models.DocumentPatch{FiscalYear: &fourDigits}), nil},
		{"grievance status", validateGrievancePatch(&models.GrievancePatch{Status: &resolved}), nil},
		{"bad grievance status", validateGrievancePatch(&models.GrievancePatch{Status: &badStatus}), []string{"status"}},
		{"grievance name", validateGrievancePatch(&models.GrievancePatch{Name: &title}), nil},
		{"blank grievance name", validateGrievancePatch(&models.GrievancePatch{Name: &blank}), []string{"name"}},
		{"short grievance name", validateGrievancePatch(&models.GrievancePatch{Name: &shortName}), []string{"name"}},
		{"bad grievance email", validateGrievancePatch(&models.GrievancePatch{Email: &badEmail}), []string{"email"}},
		{"short grievance phone", validateGrievancePatch(&models.GrievancePatch{Phone: &shortPhone}), []string{"phone"}},
		{
			"short grievance subject and description",
			validateGrievancePatch(&models.GrievancePatch{Subject: &shortSubject, Description: &shortDescription}),
			[]string{"description", "subject"},
		},
		{"blank policy category", validatePolicyPatch(&models.PolicyPatch{Category: &blank}), []string{"category"}},
		{"bad priority", validateAnnouncementPatch(&models.AnnouncementPatch{Priority: &badPriority}), []string{"priority"}},
		{"non-numeric din", validateBoardDirectorPatch(&models.BoardDirectorPatch{DIN: &badDIN}), []string{"din"}},
		{"bad promoter category", validatePromoterPatch(&models.PromoterPatch{Category: &badCategory}), []string{"category"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertFields(t, tt.err, tt.wantFields)
		})
	}
}

func TestValidateNewPolicy(t *testing.T) {
	err := validateNewPolicy(&models.NewPolicy{Title: "Code of Conduct"})
	assertFields(t, err, []string{"category", "description", "effectiveDate", "fileName", "fileUrl"})

	ok := &models.NewPolicy{
		Title:         "Code of Conduct",
		Description:   "Applies to all employees",
		Category:      "Governance",
		FileURL:       "/uploads/coc.pdf",
		FileName:      "coc.pdf",
		EffectiveDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	assertFields(t, validateNewPolicy(ok), nil)
}

func TestValidateNewBoardAndPromoter(t *testing.T) {
	assertFields(t, validateNewBoardDirector(&models.NewBoardDirector{Name: "A", DIN: "12x"}),
		[]string{"designation", "din", "name"})
	assertFields(t, validateNewBoardDirector(&models.NewBoardDirector{Name: "Anita Shah", Designation: "MD", DIN: "00012345"}), nil)

	assertFields(t, validateNewPromoter(&models.NewPromoter{Name: "Meera Rao", Category: "Trust"}), []string{"category"})
	assertFields(t, validateNewPromoter(&models.NewPromoter{Name: "Meera Rao", Category: models.PromoterIndividual}), nil)
}

func TestTrimAll(t *testing.T) {
	a, b := "  Jane Doe ", "\tjane@x.com\n"
	trimAll(&a, &b)
	if a != "Jane Doe" || b != "jane@x.com" {
		t.Errorf("unexpected trim result %q %q", a, b)
	}

	c := " Dividend query "
	trimPresent(nil, &c)
	if c != "Dividend query" {
		t.Errorf("unexpected trim result %q", c)
	}
}
