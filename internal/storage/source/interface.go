// Package source provides read-only access to the analysis snapshot artifact.
package source

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when the requested object does not exist.
var ErrNotFound = errors.New("object not found")

// Source is a read-only object store the snapshot is fetched from
type Source interface {
	// Name identifies the backend in logs and metrics
	Name() string

	// Read returns the object at key, or an error wrapping ErrNotFound
	Read(ctx context.Context, key string) ([]byte, error)

	// Exists checks if an object exists at key
	Exists(ctx context.Context, key string) (bool, error)
}
