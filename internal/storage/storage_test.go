package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImage(t *testing.T) {
	t.Run("AllowedTypes", func(t *testing.T) {
		for _, ct := range []string{"image/jpeg", "image/jpg", "image/png", "image/webp"} {
			assert.NoError(t, ValidateImage(ct, 1024), ct)
		}
	})

	t.Run("RejectedType", func(t *testing.T) {
		assert.ErrorIs(t, ValidateImage("image/gif", 1024), ErrInvalidFileType)
		assert.ErrorIs(t, ValidateImage("application/pdf", 1024), ErrInvalidFileType)
	})

	t.Run("SizeLimit", func(t *testing.T) {
		assert.NoError(t, ValidateImage("image/png", MaxUploadSize))
		assert.ErrorIs(t, ValidateImage("image/png", MaxUploadSize+1), ErrFileTooLarge)
	})
}

func TestObjectName(t *testing.T) {
	name := ObjectName("image/png")
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.NotEqual(t, name, ObjectName("image/png"))
}

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewLocalStore(dir, "http://localhost:8080/")
	require.NoError(t, err)

	t.Run("UploadAndRemove", func(t *testing.T) {
		url, err := store.Upload(ctx, "123_abc.png", "image/png", strings.NewReader("fake-png"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/uploads/123_abc.png", url)

		data, err := os.ReadFile(filepath.Join(dir, "123_abc.png"))
		require.NoError(t, err)
		assert.Equal(t, "fake-png", string(data))

		name, err := store.NameFromURL(url)
		require.NoError(t, err)
		assert.Equal(t, "123_abc.png", name)

		require.NoError(t, store.Remove(ctx, name))
		_, err = os.Stat(filepath.Join(dir, "123_abc.png"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("RemoveMissing", func(t *testing.T) {
		assert.Error(t, store.Remove(ctx, "never-uploaded.png"))
	})

	t.Run("PathTraversalNeutralized", func(t *testing.T) {
		url, err := store.Upload(ctx, "../../etc/evil.png", "image/png", strings.NewReader("x"))
		require.NoError(t, err)
		assert.Contains(t, url, "/uploads/evil.png")

		_, err = os.Stat(filepath.Join(dir, "evil.png"))
		assert.NoError(t, err)
	})
}

func TestNameFromURL(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	t.Run("WrongBucket", func(t *testing.T) {
		_, err := store.NameFromURL("http://localhost:8080/other/img.png")
		assert.ErrorIs(t, err, ErrInvalidURL)
	})

	t.Run("NestedPathRejected", func(t *testing.T) {
		_, err := store.NameFromURL("http://localhost:8080/uploads/a/b.png")
		assert.ErrorIs(t, err, ErrInvalidURL)
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := store.NameFromURL("http://localhost:8080/uploads/")
		assert.ErrorIs(t, err, ErrInvalidURL)
	})
}
