package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"
)

// BlobStore interface for uploading publicly served assets
type BlobStore interface {
	// Upload stores the bytes under key and returns a publicly resolvable URL
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// PublicURL returns the URL a stored key resolves to
	PublicURL(key string) string
}

// StoreType represents the storage backend type
type StoreType string

const (
	StoreTypeLocal StoreType = "local"
	StoreTypeS3    StoreType = "s3"
)

// StoreConfig holds configuration for the blob store
type StoreConfig struct {
	Type         StoreType
	LocalPath    string // for local storage
	LocalBaseURL string // URL prefix local keys resolve under
	S3Bucket     string
	S3Region     string
	AWSAccessKey string
	AWSSecretKey string
}

// NewBlobStore creates a blob store based on configuration
func NewBlobStore(cfg StoreConfig) (BlobStore, error) {
	switch cfg.Type {
	case StoreTypeLocal:
		return NewLocalStore(cfg.LocalPath, cfg.LocalBaseURL)
	case StoreTypeS3:
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// NewBlobStoreFromEnv creates a blob store from environment variables
func NewBlobStoreFromEnv() (BlobStore, error) {
	storeType := os.Getenv("STORAGE_TYPE")
	if storeType == "" {
		storeType = "local" // default to local for development
	}

	switch StoreType(storeType) {
	case StoreTypeLocal:
		localPath := os.Getenv("STORAGE_LOCAL_PATH")
		if localPath == "" {
			localPath = "./storage/files"
		}
		baseURL := os.Getenv("STORAGE_LOCAL_BASE_URL")
		if baseURL == "" {
			baseURL = "http://localhost:8080/uploads"
		}
		return NewLocalStore(localPath, baseURL)

	case StoreTypeS3:
		cfg := StoreConfig{
			Type:         StoreTypeS3,
			S3Bucket:     os.Getenv("AWS_S3_BUCKET"),
			S3Region:     os.Getenv("AWS_REGION"),
			AWSAccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		}
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1"
		}
		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET environment variable is required for S3 storage")
		}
		return NewS3Store(cfg)

	default:
		return nil, fmt.Errorf("unknown storage type: %s", storeType)
	}
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9.-]`)

// SanitizeFilename replaces every character outside [A-Za-z0-9.-] with an
// underscore. Idempotent: sanitizing a sanitized name is a no-op.
func SanitizeFilename(name string) string {
	return unsafeKeyChars.ReplaceAllString(name, "_")
}

// BuildKey builds a collision-free storage key from the namespace, a
// millisecond timestamp (plus an index for multi-file slots) and the
// sanitized original filename.
func BuildKey(namespace, filename string, now time.Time, index int) string {
	safe := SanitizeFilename(filename)
	if index >= 0 {
		return fmt.Sprintf("%s/%d_%d_%s", namespace, now.UnixMilli(), index, safe)
	}
	return fmt.Sprintf("%s/%d_%s", namespace, now.UnixMilli(), safe)
}
