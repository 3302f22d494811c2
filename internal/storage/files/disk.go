package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"irportal/internal/domain"
)

// DiskStore keeps files in one local directory
type DiskStore struct {
	dir string
}

// NewDiskStore creates dir if needed
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(_ context.Context, name string, r io.Reader, _ int64, _ string) error {
	if err := checkName(name); err != nil {
		return err
	}

	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return domain.NewStorageError("save file", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return domain.NewStorageError("save file", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return domain.NewStorageError("save file", err)
	}
	return nil
}

func (s *DiskStore) Open(_ context.Context, name string) (io.ReadCloser, *Object, error) {
	if err := checkName(name); err != nil {
		return nil, nil, err
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, notFound(name)
		}
		return nil, nil, domain.NewStorageError("open file", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, domain.NewStorageError("stat file", err)
	}

	return f, &Object{Name: name, Size: info.Size(), ContentType: ContentType(name)}, nil
}

// Delete removes a file; a missing file is not an error
func (s *DiskStore) Delete(_ context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domain.NewStorageError("delete file", err)
	}
	return nil
}
