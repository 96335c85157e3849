package contentrepo

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/evanlin/lifeboard/internal/domain/content"
)

// MemoryRepository keeps posts in process, with brute-force vector search.
type MemoryRepository struct {
	mu         sync.RWMutex
	nextID     int64
	posts      map[string]content.Post
	embeddings map[string][]float32
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID:     1,
		posts:      make(map[string]content.Post),
		embeddings: make(map[string][]float32),
	}
}

func (r *MemoryRepository) Insert(_ context.Context, post content.Post, embedding []float32) (content.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.posts[post.Slug]; exists {
		return content.Post{}, content.ErrSlugExists
	}
	post.ID = r.nextID
	r.nextID++
	r.posts[post.Slug] = post
	r.embeddings[post.Slug] = embedding
	return post, nil
}

func (r *MemoryRepository) Update(_ context.Context, post content.Post, embedding []float32) (content.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, exists := r.posts[post.Slug]
	if !exists {
		return content.Post{}, content.ErrNotFound
	}
	post.ID = existing.ID
	r.posts[post.Slug] = post
	r.embeddings[post.Slug] = embedding
	return post, nil
}

func (r *MemoryRepository) GetBySlug(_ context.Context, slug string) (content.Post, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	post, ok := r.posts[slug]
	return post, ok, nil
}

func (r *MemoryRepository) List(_ context.Context, publishedOnly bool) ([]content.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var posts []content.Post
	for _, post := range r.posts {
		if publishedOnly && !post.Published {
			continue
		}
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (r *MemoryRepository) Delete(_ context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[slug]; !ok {
		return content.ErrNotFound
	}
	delete(r.posts, slug)
	delete(r.embeddings, slug)
	return nil
}

func (r *MemoryRepository) SearchNearest(_ context.Context, embedding []float32, limit int) ([]content.SearchResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var results []content.SearchResult
	for slug, post := range r.posts {
		if !post.Published {
			continue
		}
		results = append(results, content.SearchResult{
			Post:     post,
			Distance: euclidean(embedding, r.embeddings[slug]),
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Distance < results[j].Distance })
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func euclidean(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

var _ content.Repository = (*MemoryRepository)(nil)
