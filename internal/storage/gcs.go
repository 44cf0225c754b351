package storage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type gcsStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore returns a BlobStore over a public Google Cloud Storage bucket.
// keyPath may be empty, in which case ambient credentials are used.
func NewGCSStore(ctx context.Context, bucket, keyPath string) (BlobStore, error) {
	var opts []option.ClientOption
	if keyPath != "" {
		opts = append(opts, option.WithCredentialsFile(keyPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS storage client: %w", err)
	}

	return &gcsStore{client: client, bucket: bucket}, nil
}

func (s *gcsStore) Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	obj := s.client.Bucket(s.bucket).Object(name)
	writer := obj.NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = "public, max-age=3600"

	if _, err := io.Copy(writer, r); err != nil {
		return "", fmt.Errorf("failed to write object %s: %w", name, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer for %s: %w", name, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, name), nil
}

func (s *gcsStore) Remove(ctx context.Context, name string) error {
	if err := s.client.Bucket(s.bucket).Object(name).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", name, err)
	}
	return nil
}

func (s *gcsStore) NameFromURL(rawURL string) (string, error) {
	return nameAfterBucket(rawURL, s.bucket)
}
