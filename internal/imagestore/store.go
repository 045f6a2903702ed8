// Package imagestore maps opaque generated filenames to binary image content
// under a single directory.
package imagestore

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store writes and resolves uploaded images.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates an image store rooted at dir, creating it if needed.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating images dir: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the images directory.
func (s *Store) Dir() string {
	return s.dir
}

// Store writes image bytes under a collision-resistant generated name that
// preserves the original extension, and returns the generated name. On write
// failure the caller must treat the image as not attached.
func (s *Store) Store(data []byte, originalName string) (string, error) {
	u := uuid.New()
	name := hex.EncodeToString(u[:]) + filepath.Ext(originalName)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		s.logger.Error("failed to save image", "name", originalName, "error", err)
		return "", fmt.Errorf("saving image: %w", err)
	}
	return name, nil
}

// Resolve maps a stored filename to its on-disk path. An empty name resolves
// to nothing; no existence check is made here.
func (s *Store) Resolve(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	return filepath.Join(s.dir, name), true
}

// ReadInline reads a stored image and returns its base64 encoding for inline
// embedding. A missing or unreadable file is logged and reported as absent,
// never as an error.
func (s *Store) ReadInline(name string) (string, bool) {
	path, ok := s.Resolve(name)
	if !ok {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warn("failed to read image", "name", name, "error", err)
		return "", false
	}
	return base64.StdEncoding.EncodeToString(data), true
}
