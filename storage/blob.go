// Package storage is the blob-store collaborator. The API layer only
// validates type and size before delegating; everything about where
// the bytes land lives here.
package storage

import (
	"context"
	"time"
)

// BlobStore accepts raw bytes plus a content type and hands back a
// publicly fetchable, time-limited URL.
type BlobStore interface {
	// EnsureBucket provisions the private bucket if it is missing.
	// Idempotent.
	EnsureBucket(ctx context.Context) error

	// BucketExists reports bucket presence for health checks.
	BucketExists(ctx context.Context) (bool, error)

	// Upload stores the object under name.
	Upload(ctx context.Context, name string, data []byte, contentType string) error

	// SignedURL returns a time-limited read URL for a stored object.
	SignedURL(ctx context.Context, name string, ttl time.Duration) (string, error)
}
