package files

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"irportal/internal/domain"
)

func TestDiskStore_SaveOpenDelete(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}
	ctx := context.Background()

	name := NewName("Annual Report.PDF")
	if !strings.HasSuffix(name, ".pdf") {
		t.Errorf("expected lower-cased extension, got %s", name)
	}

	content := "%PDF-1.7 annual report"
	if err := store.Save(ctx, name, strings.NewReader(content), int64(len(content)), "application/pdf"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	rc, obj, err := store.Open(ctx, name)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()

	if string(data) != content {
		t.Errorf("read back %q, want %q", data, content)
	}
	if obj.Size != int64(len(content)) {
		t.Errorf("size %d, want %d", obj.Size, len(content))
	}
	if obj.ContentType != "application/pdf" {
		t.Errorf("content type %q, want application/pdf", obj.ContentType)
	}

	if err := store.Save(ctx, name, strings.NewReader("again"), 5, ""); !errors.Is(err, domain.ErrStorage) {
		t.Errorf("expected overwriting to fail with ErrStorage, got %v", err)
	}

	if err := store.Delete(ctx, name); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, name); err != nil {
		t.Errorf("second Delete should be a no-op, got %v", err)
	}
	if _, _, err := store.Open(ctx, name); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCheckName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"3f2b.pdf", false},
		{"", true},
		{".", true},
		{"..", true},
		{"../etc/passwd", true},
		{`..\secret`, true},
		{"dir/file.pdf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
		})
	}
}

func TestURLAndContentType(t *testing.T) {
	if got := URL("a.pdf"); got != "/uploads/a.pdf" {
		t.Errorf("URL = %q", got)
	}
	if got := ContentType("scan.PNG"); got != "image/png" {
		t.Errorf("ContentType(png) = %q", got)
	}
	if got := ContentType("blob.unknownext"); got != "application/octet-stream" {
		t.Errorf("ContentType(unknown) = %q", got)
	}
}
