package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/JaimeStill/mariner/pkg/lifecycle"
)

type local struct {
	root   string
	logger *slog.Logger
}

func newLocal(root string, logger *slog.Logger) *local {
	return &local{
		root:   root,
		logger: logger,
	}
}

func (l *local) Start(lc *lifecycle.Coordinator) error {
	l.logger.Info("starting storage system")

	lc.OnStartup(func() error {
		if err := os.MkdirAll(l.root, 0o755); err != nil {
			l.logger.Error("storage root initialization failed", "error", err)
			return fmt.Errorf("create storage root: %w", err)
		}

		l.logger.Info("storage root ready", "root", l.root)
		return nil
	})

	return nil
}

func (l *local) Upload(ctx context.Context, key string, reader io.Reader, contentType string) (*Meta, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	target := l.path(key)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("upload blob %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("upload blob %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, contextReader{ctx: ctx, r: reader}); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("upload blob %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("upload blob %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return nil, fmt.Errorf("upload blob %s: %w", key, err)
	}

	meta, err := l.Stat(ctx, key)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		meta.ContentType = contentType
	}
	return meta, nil
}

func (l *local) Download(ctx context.Context, key string) (*Blob, error) {
	meta, err := l.Stat(ctx, key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(l.path(key))
	if err != nil {
		return nil, mapLocalError(key, "download", err)
	}

	return &Blob{Meta: *meta, Body: f}, nil
}

func (l *local) Stat(ctx context.Context, key string) (*Meta, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	info, err := os.Stat(l.path(key))
	if err != nil {
		return nil, mapLocalError(key, "stat", err)
	}
	if info.IsDir() {
		return nil, ErrNotFound
	}

	return &Meta{
		Key:         key,
		Size:        info.Size(),
		ContentType: ContentTypeFor(key),
		ModTime:     info.ModTime(),
	}, nil
}

func (l *local) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := os.Remove(l.path(key)); err != nil {
		return mapLocalError(key, "delete", err)
	}
	return nil
}

func (l *local) Exists(ctx context.Context, key string) (bool, error) {
	_, err := l.Stat(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (l *local) path(key string) string {
	return filepath.Join(l.root, filepath.FromSlash(key))
}

func mapLocalError(key, op string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return fmt.Errorf("%s blob %s: %w", op, key, err)
}

// contextReader stops a copy once ctx is cancelled.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
