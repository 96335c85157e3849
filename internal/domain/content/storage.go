package content

import (
	"context"
	"io"
)

// ObjectStorage keeps media attachments in an S3-compatible bucket.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) (Media, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// Embedder turns text into vectors for the search index.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
