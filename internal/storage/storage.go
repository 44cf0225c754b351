package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxUploadSize is the upload cap for product images (5MB).
const MaxUploadSize = 5 * 1024 * 1024

var (
	ErrInvalidFileType = errors.New("invalid file type, only JPEG, PNG, and WebP are allowed")
	ErrFileTooLarge    = errors.New("file too large, maximum size is 5MB")
	ErrInvalidURL      = errors.New("invalid storage URL")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// BlobStore is the blob-storage collaborator for product images.
type BlobStore interface {
	// Upload stores the object and returns its public URL.
	Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error)
	Remove(ctx context.Context, name string) error
	// NameFromURL recovers the object name from a URL previously returned
	// by Upload.
	NameFromURL(rawURL string) (string, error)
}

// ValidateImage checks content type and declared size before any bytes are
// written to the blob store.
func ValidateImage(contentType string, size int64) error {
	if _, ok := allowedImageTypes[contentType]; !ok {
		return ErrInvalidFileType
	}
	if size > MaxUploadSize {
		return ErrFileTooLarge
	}
	return nil
}

// ObjectName builds a collision-free object name keyed by upload time.
func ObjectName(contentType string) string {
	ext := allowedImageTypes[contentType]
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%d_%s.%s", time.Now().UnixMilli(), uuid.New().String(), ext)
}

// nameAfterBucket extracts the object name following "/<bucket>/" in the URL
// path, mirroring how the upload URLs are built.
func nameAfterBucket(rawURL, bucket string) (string, error) {
	marker := "/" + bucket + "/"
	idx := strings.Index(rawURL, marker)
	if idx < 0 {
		return "", ErrInvalidURL
	}

	name := rawURL[idx+len(marker):]
	if name == "" || name != path.Base(name) {
		return "", ErrInvalidURL
	}

	return name, nil
}
