// Package storage provides blob storage for uploaded images, backed by the local
// filesystem or Azure Blob Storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/JaimeStill/mariner/pkg/lifecycle"
)

// Meta describes a stored blob.
type Meta struct {
	Key         string    `json:"key"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	ModTime     time.Time `json:"mod_time"`
}

// Blob is a readable stored object. The caller must close Body.
type Blob struct {
	Meta
	Body io.ReadCloser
}

// System manages blob storage operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that prepares the root directory or container.
	Start(lc *lifecycle.Coordinator) error
	// Upload streams data to a blob at the given key with the specified content type.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (*Meta, error)
	// Download returns the blob at the given key. Returns ErrNotFound if it does not exist.
	Download(ctx context.Context, key string) (*Blob, error)
	// Stat returns blob metadata without reading content. Returns ErrNotFound if it does not exist.
	Stat(ctx context.Context, key string) (*Meta, error)
	// Delete removes the blob at the given key. Returns ErrNotFound if the blob does not exist.
	Delete(ctx context.Context, key string) error
	// Exists reports whether a blob exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)
}

// New creates the storage system selected by cfg.Provider.
// No I/O happens until Start is called.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	logger = logger.With("system", "storage", "provider", cfg.Provider)

	switch cfg.Provider {
	case ProviderLocal:
		return newLocal(cfg.Root, logger), nil
	case ProviderAzure:
		a, err := newAzure(cfg, logger)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}

// ContentTypeFor returns the MIME type implied by the key's extension,
// or application/octet-stream when unknown.
func ContentTypeFor(key string) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(key))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return ErrInvalidKey
	}
	return nil
}
