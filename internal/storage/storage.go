package storage

import (
	"context"
	"io"
	"time"
)

// Package storage contains the object storage gateway for S3-compatible
// backends. Implementations must avoid local disk and rely on streaming I/O.

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and
// the implementation will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size"`
	ETag         string            `json:"etag,omitempty"`
	ContentType  string            `json:"content_type,omitempty"`
	LastModified time.Time         `json:"last_modified"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Storage is the gateway every orchestration component depends on. All object
// mutations are delegated to the backend's native API; there is no buffering,
// chunking or retry layer on top, each call is a single attempt.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// List returns every object in the bucket. An empty bucket yields an
	// empty slice, not an error.
	List(ctx context.Context) ([]ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL usable to download the object
	// without credentials, bypassing this service for the data transfer.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	// PresignPut returns a time-limited URL usable to upload an object
	// directly to the backend. The content type is bound into the signature;
	// the backend rejects uploads that declare a different one.
	PresignPut(ctx context.Context, key string, contentType string, expiry time.Duration) (string, error)
}
