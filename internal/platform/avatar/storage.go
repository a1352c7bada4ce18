package avatar

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage writes uploaded avatar images to a directory on disk under a
// random filename. Only the returned filename is persisted with the user;
// thumbnailing or other image processing is not done here.
type Storage struct {
	dir string
}

func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating avatar dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Save stores the uploaded content and returns the generated filename. The
// original filename contributes only its extension.
func (s *Storage) Save(src io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
	default:
		return "", fmt.Errorf("unsupported avatar extension %q", ext)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating avatar file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("writing avatar file: %w", err)
	}
	return name, nil
}
