// Package storage abstracts the object store holding PDFs, proofs and attachments.
package storage

import (
	"fmt"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// ObjectStore persists binary objects under hierarchical keys.
type ObjectStore interface {
	Put(key string, data []byte, contentType string) error
	Get(key string) ([]byte, string, error)
	Delete(key string) error
}

// FileStore keeps objects on an afero filesystem rooted at basePath.
// The content type is derived from the key extension on read.
type FileStore struct {
	fs       afero.Fs
	basePath string
}

func NewFileStore(fs afero.Fs, basePath string) *FileStore {
	return &FileStore{fs: fs, basePath: basePath}
}

func (s *FileStore) fullPath(key string) (string, error) {
	clean := path.Clean("/" + key)
	if strings.Contains(clean, "..") {
		return "", fmt.Errorf("invalid object key: %s", key)
	}
	return path.Join(s.basePath, clean), nil
}

func (s *FileStore) Put(key string, data []byte, contentType string) error {
	p, err := s.fullPath(key)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(path.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create object directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, p, data, 0o644); err != nil {
		return fmt.Errorf("write object %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Get(key string) ([]byte, string, error) {
	p, err := s.fullPath(key)
	if err != nil {
		return nil, "", err
	}
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		return nil, "", fmt.Errorf("read object %s: %w", key, err)
	}
	return data, contentTypeFor(key), nil
}

func (s *FileStore) Delete(key string) error {
	p, err := s.fullPath(key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(p); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func contentTypeFor(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
