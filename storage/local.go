package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore implements BlobStore on the local filesystem, for development.
// Keys resolve under a configured base URL served by a static file handler.
type LocalStore struct {
	basePath string
	baseURL  string
}

// NewLocalStore creates a new local blob store
func NewLocalStore(basePath, baseURL string) (*LocalStore, error) {
	// Create base directory if it doesn't exist
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStore{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload stores the bytes locally and returns the key's public URL
func (s *LocalStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))

	// Create directory structure
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		os.Remove(fullPath) // clean up on error
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.PublicURL(key), nil
}

// PublicURL returns the URL a key is served under
func (s *LocalStore) PublicURL(key string) string {
	return s.baseURL + "/" + key
}
