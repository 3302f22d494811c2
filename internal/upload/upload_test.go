package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"irportal/internal/domain"
	"irportal/internal/storage/files"
)

// formFiles builds real multipart headers for name -> content pairs
func formFiles(t *testing.T, field string, pairs ...string) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for i := 0; i+1 < len(pairs); i += 2 {
		part, err := w.CreateFormFile(field, pairs[i])
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		io.WriteString(part, pairs[i+1])
	}
	w.Close()

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("ReadForm: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File[field]
}

func TestRules_Check(t *testing.T) {
	small := Rules{MaxFiles: 2, MaxFileSize: 8, AllowedExtensions: []string{"pdf", "png"}}

	tests := []struct {
		name       string
		files      []string
		wantFields []string
	}{
		{"no files", nil, nil},
		{"allowed", []string{"a.pdf", "1234", "b.PNG", "12345678"}, nil},
		{"bad extension", []string{"run.exe", "x"}, []string{"attachments[0]"}},
		{"no extension", []string{"README", "x"}, []string{"attachments[0]"}},
		{"too large", []string{"a.pdf", "123456789"}, []string{"attachments[0]"}},
		{"too many", []string{"a.pdf", "1", "b.pdf", "2", "c.exe", "3"}, []string{"attachments", "attachments[2]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fhs := formFiles(t, "attachments", tt.files...)
			err := small.Check("attachments", fhs)

			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(ve.Fields) != len(tt.wantFields) {
				t.Fatalf("got fields %+v, want %v", ve.Fields, tt.wantFields)
			}
			for _, f := range tt.wantFields {
				if !ve.HasField(f) {
					t.Errorf("missing violation for %s in %+v", f, ve.Fields)
				}
			}
		})
	}
}

func TestGrievanceRules(t *testing.T) {
	if GrievanceRules.MaxFiles != 5 {
		t.Errorf("grievance max files = %d, want 5", GrievanceRules.MaxFiles)
	}
	if GrievanceRules.MaxFileSize != 10<<20 {
		t.Errorf("grievance max size = %d, want 10MB", GrievanceRules.MaxFileSize)
	}
	if DocumentRules.MaxFiles != 1 || PolicyRules.MaxFiles != 1 {
		t.Error("document and policy uploads take a single file")
	}

	six := formFiles(t, "attachments",
		"1.pdf", "x", "2.pdf", "x", "3.pdf", "x", "4.pdf", "x", "5.pdf", "x", "6.pdf", "x")
	if err := GrievanceRules.Check("attachments", six); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("six attachments should fail, got %v", err)
	}
}

func TestSave(t *testing.T) {
	store, err := files.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	ctx := context.Background()

	fhs := formFiles(t, "attachments", "dir/Scan.PNG", "png-bytes", "letter.pdf", "pdf")
	saved, err := Save(ctx, store, fhs)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("saved %d files, want 2", len(saved))
	}

	first := saved[0].Attachment()
	if first.Filename != "Scan.PNG" {
		t.Errorf("filename = %q, want Scan.PNG", first.Filename)
	}
	if !strings.HasPrefix(first.Path, files.URLPrefix) || !strings.HasSuffix(first.Path, ".png") {
		t.Errorf("unexpected path %q", first.Path)
	}
	if first.MimeType != "image/png" {
		t.Errorf("mimetype = %q, want image/png", first.MimeType)
	}
	if first.Size != int64(len("png-bytes")) {
		t.Errorf("size = %d", first.Size)
	}

	rc, _, err := store.Open(ctx, saved[1].Name)
	if err != nil {
		t.Fatalf("Open saved file: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "pdf" {
		t.Errorf("stored content = %q", data)
	}

	Discard(ctx, store, saved)
	if _, _, err := store.Open(ctx, saved[0].Name); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected discarded file to be gone, got %v", err)
	}
}
