// Package blob abstracts the object storage used for session state and
// item images. Objects live under a container name and a slash-separated
// key; writes always overwrite.
package blob

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("blob not found")

type Store interface {
	Upload(ctx context.Context, container, key string, data []byte, contentType string) error
	Download(ctx context.Context, container, key string) ([]byte, error)
	// SignedURL mints a read-only URL that expires after ttl.
	SignedURL(ctx context.Context, container, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, container, key string) error
}
