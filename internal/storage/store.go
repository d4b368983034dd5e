package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrObjectNotFound is returned when deleting or reading a key that holds no object.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore is a durable blob store addressed by key.
type ObjectStore interface {
	// Put writes body at key, overwriting any existing object, and returns its public URL.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string, metadata map[string]string) (string, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a temporary URL that downloads key as filename.
	PresignGet(ctx context.Context, key, filename string, expires time.Duration) (string, error)
}

// PublicURL joins the public bucket prefix and key.
func PublicURL(base, key string) string {
	if base == "" {
		return "/" + key
	}
	return base + "/" + key
}
