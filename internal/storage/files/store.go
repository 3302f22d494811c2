// Package files keeps uploaded documents and grievance attachments,
// either on local disk or in a MinIO / S3 bucket.
package files

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"irportal/internal/domain"
)

// URLPrefix is where stored files are served from
const URLPrefix = "/uploads/"

// Object describes a stored file
type Object struct {
	Name        string
	Size        int64
	ContentType string
}

// Store saves and serves uploaded files by generated name
type Store interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, *Object, error)
	Delete(ctx context.Context, name string) error
}

// NewName returns a collision-free stored name that keeps the original extension
func NewName(original string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(original))
}

// URL returns the public path of a stored file
func URL(name string) string {
	return URLPrefix + name
}

// ContentType guesses a MIME type from the file extension
func ContentType(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// checkName rejects anything that is not a plain file name
func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("invalid file name %q: %w", name, domain.ErrValidation)
	}
	return nil
}

func notFound(name string) error {
	return &domain.NotFoundError{Resource: "file", ID: name}
}
