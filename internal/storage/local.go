package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const localBucket = "uploads"

type localStore struct {
	dir     string
	baseURL string
}

// NewLocalStore returns a BlobStore writing to a directory on disk, served
// under <baseURL>/uploads/. Meant for development deployments.
func NewLocalStore(dir, baseURL string) (BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}

	return &localStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *localStore) Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	// object names are generated, but never trust them as paths
	name = filepath.Base(name)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", name, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.baseURL, localBucket, name), nil
}

func (s *localStore) Remove(ctx context.Context, name string) error {
	name = filepath.Base(name)

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("failed to remove file %s: %w", name, err)
	}
	return nil
}

func (s *localStore) NameFromURL(rawURL string) (string, error) {
	return nameAfterBucket(rawURL, localBucket)
}
