package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"eventticketing/internal/domain"
)

// MaxFileSize is the largest accepted upload (5 MB).
const MaxFileSize = 5 << 20

// DiskStore saves uploaded event images to a local directory. Files are
// renamed to a random UUID plus the original extension and served back as
// static content under the /uploads/ prefix.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed and returns a store.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory files are stored in.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes the uploaded file to disk and returns the path string persisted
// on the event record (relative, e.g. "uploads/<uuid>.png").
func (s *DiskStore) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > MaxFileSize {
		return "", fmt.Errorf("%w: file too large: %d bytes (max %d)", domain.ErrInvalidInput, header.Size, MaxFileSize)
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, MaxFileSize+1)); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	return filepath.ToSlash(filepath.Join(filepath.Base(s.dir), name)), nil
}
