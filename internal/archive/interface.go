// Package archive stores session transcripts outside the process: on the
// local filesystem by default, or in an S3-compatible bucket.
package archive

import "context"

// Storage defines the interface for transcript storage backends
type Storage interface {
	// Write stores data under the given key
	Write(ctx context.Context, key string, data []byte) error

	// Read retrieves the data stored under the given key
	Read(ctx context.Context, key string) ([]byte, error)

	// List returns all keys matching the prefix
	List(ctx context.Context, prefix string) ([]string, error)
}
