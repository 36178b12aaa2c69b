package repository

import (
	"context"
	"io"
	"time"
)

// MediaDescriptor is what the blob store returns for a stored object.
// DurationSeconds is zero for non-video media.
type MediaDescriptor struct {
	URL             string
	DurationSeconds float64
}

// MediaStorage defines the interface for blob storage operations.
// Implementations should be provided by the infrastructure layer (e.g., MinIO, S3).
type MediaStorage interface {
	// Store uploads an object and returns its descriptor.
	// key is the object path within the bucket (e.g., "videos/{id}/source.mp4").
	Store(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*MediaDescriptor, error)

	// GeneratePresignedDownloadURL creates a presigned URL for downloading
	// an object, valid for the specified duration.
	GeneratePresignedDownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Delete removes an object from the storage.
	Delete(ctx context.Context, key string) error

	// Exists checks if an object exists in the storage.
	Exists(ctx context.Context, key string) (bool, error)
}
