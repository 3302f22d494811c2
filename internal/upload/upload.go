// Package upload checks multipart files against per-form limits and
// persists accepted files to a files.Store.
package upload

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"

	"irportal/internal/config"
	"irportal/internal/domain"
	"irportal/internal/domain/models"
	"irportal/internal/storage/files"
)

// Rules bound the files accepted by one form field
type Rules struct {
	MaxFiles          int
	MaxFileSize       int64
	AllowedExtensions []string
}

var (
	// GrievanceRules apply to the public grievance form
	GrievanceRules = Rules{
		MaxFiles:          config.MaxGrievanceAttachments,
		MaxFileSize:       config.MaxUploadFileSize,
		AllowedExtensions: config.AllowedUploadExtensions,
	}

	// DocumentRules apply to admin document uploads
	DocumentRules = Rules{
		MaxFiles:          1,
		MaxFileSize:       config.MaxUploadFileSize,
		AllowedExtensions: config.AllowedUploadExtensions,
	}

	// PolicyRules apply to admin policy uploads
	PolicyRules = DocumentRules
)

// Check validates files submitted under field. Offending files are reported
// as field[i] so the client can point at the exact upload.
func (r Rules) Check(field string, fhs []*multipart.FileHeader) error {
	violations := map[string]string{}

	if r.MaxFiles > 0 && len(fhs) > r.MaxFiles {
		violations[field] = fmt.Sprintf("at most %d file(s) allowed", r.MaxFiles)
	}

	for i, fh := range fhs {
		key := fmt.Sprintf("%s[%d]", field, i)
		ext := Extension(fh.Filename)

		switch {
		case ext == "" || !slices.Contains(r.AllowedExtensions, ext):
			violations[key] = fmt.Sprintf("%q: allowed types are %s", fh.Filename, strings.Join(r.AllowedExtensions, ", "))
		case r.MaxFileSize > 0 && fh.Size > r.MaxFileSize:
			violations[key] = fmt.Sprintf("%q exceeds %d MB", fh.Filename, r.MaxFileSize>>20)
		}
	}

	if len(violations) > 0 {
		return domain.NewValidationError(violations)
	}
	return nil
}

// Extension returns the lower-cased extension without the dot
func Extension(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// Saved is a file that reached the store
type Saved struct {
	Name     string
	Original string
	URL      string
	Size     int64
	MimeType string
}

// Attachment converts a saved file to the grievance attachment shape
func (s Saved) Attachment() models.Attachment {
	return models.Attachment{
		Filename: s.Original,
		Path:     s.URL,
		Size:     s.Size,
		MimeType: s.MimeType,
	}
}

// Save writes every file to store. If one fails, the ones already written
// are removed again.
func Save(ctx context.Context, store files.Store, fhs []*multipart.FileHeader) ([]Saved, error) {
	saved := make([]Saved, 0, len(fhs))

	for _, fh := range fhs {
		s, err := saveOne(ctx, store, fh)
		if err != nil {
			Discard(ctx, store, saved)
			return nil, err
		}
		saved = append(saved, s)
	}
	return saved, nil
}

// Discard removes files written by Save, ignoring errors
func Discard(ctx context.Context, store files.Store, saved []Saved) {
	for _, s := range saved {
		_ = store.Delete(ctx, s.Name)
	}
}

func saveOne(ctx context.Context, store files.Store, fh *multipart.FileHeader) (Saved, error) {
	f, err := fh.Open()
	if err != nil {
		return Saved{}, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = files.ContentType(fh.Filename)
	}

	name := files.NewName(fh.Filename)
	if err := store.Save(ctx, name, f, fh.Size, mimeType); err != nil {
		return Saved{}, err
	}

	return Saved{
		Name:     name,
		Original: filepath.Base(fh.Filename),
		URL:      files.URL(name),
		Size:     fh.Size,
		MimeType: mimeType,
	}, nil
}
