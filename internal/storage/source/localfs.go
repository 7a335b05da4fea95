package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalFS reads objects from a directory on local disk
type LocalFS struct {
	basePath string
}

// NewLocalFS creates a LocalFS rooted at basePath. The directory is not
// created; a missing directory behaves like a missing object.
func NewLocalFS(basePath string) *LocalFS {
	return &LocalFS{basePath: basePath}
}

func (l *LocalFS) Name() string { return "localfs" }

func (l *LocalFS) fullPath(key string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	if clean == string(filepath.Separator) {
		return "", fmt.Errorf("empty key")
	}
	return filepath.Join(l.basePath, strings.TrimPrefix(clean, string(filepath.Separator))), nil
}

func (l *LocalFS) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := l.fullPath(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func (l *LocalFS) Exists(ctx context.Context, key string) (bool, error) {
	path, err := l.fullPath(key)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}
