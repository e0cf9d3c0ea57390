package photo

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pluqqy/pluqqy-account/internal/config"
)

// ObjectStore stores uploaded photo bytes and returns a URL for them.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// NewObjectStore builds the backend selected by cfg.
func NewObjectStore(ctx context.Context, cfg config.PhotoConfig) (ObjectStore, error) {
	switch cfg.Backend {
	case config.PhotoBackendS3:
		return NewS3Store(ctx, cfg)
	case config.PhotoBackendDir:
		return NewDirStore(cfg.Dir), nil
	default:
		return nil, fmt.Errorf("unknown photo backend %q", cfg.Backend)
	}
}

// DirStore keeps photos in a local directory and hands out file:// URLs.
type DirStore struct {
	root string
}

// NewDirStore returns a DirStore rooted at root.
func NewDirStore(root string) *DirStore {
	return &DirStore{root: root}
}

func (d *DirStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	dest := filepath.Join(d.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("failed to create photo directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write photo: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	abs, err := filepath.Abs(dest)
	if err != nil {
		return "", err
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}
