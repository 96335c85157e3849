package content

import (
	"context"
	"errors"
)

var (
	// ErrSlugExists indicates a duplicate slug on create.
	ErrSlugExists = errors.New("slug already exists")
	// ErrNotFound indicates the post does not exist.
	ErrNotFound = errors.New("post not found")
)

// Repository persists posts and their search embeddings.
type Repository interface {
	Insert(ctx context.Context, post Post, embedding []float32) (Post, error)
	Update(ctx context.Context, post Post, embedding []float32) (Post, error)
	GetBySlug(ctx context.Context, slug string) (Post, bool, error)
	List(ctx context.Context, publishedOnly bool) ([]Post, error)
	Delete(ctx context.Context, slug string) error
	// SearchNearest returns published posts ordered by embedding distance.
	SearchNearest(ctx context.Context, embedding []float32, limit int) ([]SearchResult, error)
}
