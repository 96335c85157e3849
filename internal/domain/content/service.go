package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/evanlin/lifeboard/pkg/errors"
	"github.com/evanlin/lifeboard/pkg/util"
)

// Config tunes content behavior.
type Config struct {
	SearchLimit int
	// MaxMediaBytes caps a single upload.
	MaxMediaBytes int64
}

// Service exposes the CMS workflows.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (Post, error)
	Update(ctx context.Context, slug string, req UpdateRequest) (Post, error)
	Get(ctx context.Context, slug string, includeDrafts bool) (Post, error)
	List(ctx context.Context, includeDrafts bool) ([]Post, error)
	Delete(ctx context.Context, slug string) error
	Search(ctx context.Context, query string) ([]SearchResult, error)
	AttachMedia(ctx context.Context, slug, filename string, data []byte, mimeType string) (Media, error)
	OpenMedia(ctx context.Context, key string) (io.ReadCloser, error)
}

type service struct {
	cfg      Config
	repo     Repository
	storage  ObjectStorage
	embedder Embedder
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs the content service.
func NewService(cfg Config, repo Repository, storage ObjectStorage, embedder Embedder, logger *slog.Logger) Service {
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 5
	}
	if cfg.MaxMediaBytes <= 0 {
		cfg.MaxMediaBytes = 10 << 20
	}
	return &service{
		cfg:      cfg,
		repo:     repo,
		storage:  storage,
		embedder: embedder,
		logger:   logger.With("component", "content.service"),
		now:      util.NowUTC,
	}
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func (s *service) Create(ctx context.Context, req CreateRequest) (Post, error) {
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if !slugPattern.MatchString(slug) {
		return Post{}, apperrors.Wrap("invalid_input", "slug must be lowercase words separated by hyphens", nil)
	}
	if strings.TrimSpace(req.Title) == "" {
		return Post{}, apperrors.Wrap("invalid_input", "title cannot be empty", nil)
	}

	now := s.now().UTC()
	post := Post{
		Slug:      slug,
		Title:     strings.TrimSpace(req.Title),
		Body:      req.Body,
		Summary:   strings.TrimSpace(req.Summary),
		Tags:      normalizeTags(req.Tags),
		Published: req.Publish,
		CreatedAt: now,
		UpdatedAt: now,
	}
	embedding, err := s.embedText(ctx, post)
	if err != nil {
		return Post{}, err
	}
	stored, err := s.repo.Insert(ctx, post, embedding)
	if err != nil {
		if errors.Is(err, ErrSlugExists) {
			return Post{}, apperrors.Wrap("slug_exists", "a post with this slug already exists", err)
		}
		return Post{}, apperrors.Wrap("storage_error", "failed to create post", err)
	}
	s.logger.Info("post created", "slug", stored.Slug, "published", stored.Published)
	return stored, nil
}

func (s *service) Update(ctx context.Context, slug string, req UpdateRequest) (Post, error) {
	post, found, err := s.repo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return Post{}, apperrors.Wrap("storage_error", "failed to load post", err)
	}
	if !found {
		return Post{}, apperrors.Wrap("not_found", "post not found", nil)
	}
	if strings.TrimSpace(req.Title) != "" {
		post.Title = strings.TrimSpace(req.Title)
	}
	if req.Body != "" {
		post.Body = req.Body
	}
	if req.Summary != "" {
		post.Summary = strings.TrimSpace(req.Summary)
	}
	if req.Tags != nil {
		post.Tags = normalizeTags(req.Tags)
	}
	if req.Publish != nil {
		post.Published = *req.Publish
	}
	post.UpdatedAt = s.now().UTC()

	embedding, err := s.embedText(ctx, post)
	if err != nil {
		return Post{}, err
	}
	stored, err := s.repo.Update(ctx, post, embedding)
	if err != nil {
		return Post{}, apperrors.Wrap("storage_error", "failed to update post", err)
	}
	return stored, nil
}

func (s *service) Get(ctx context.Context, slug string, includeDrafts bool) (Post, error) {
	post, found, err := s.repo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return Post{}, apperrors.Wrap("storage_error", "failed to load post", err)
	}
	if !found || (!post.Published && !includeDrafts) {
		return Post{}, apperrors.Wrap("not_found", "post not found", nil)
	}
	return post, nil
}

func (s *service) List(ctx context.Context, includeDrafts bool) ([]Post, error) {
	posts, err := s.repo.List(ctx, !includeDrafts)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to list posts", err)
	}
	return posts, nil
}

func (s *service) Delete(ctx context.Context, slug string) error {
	if err := s.repo.Delete(ctx, strings.ToLower(strings.TrimSpace(slug))); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperrors.Wrap("not_found", "post not found", err)
		}
		return apperrors.Wrap("storage_error", "failed to delete post", err)
	}
	return nil
}

func (s *service) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.Wrap("invalid_input", "query cannot be empty", nil)
	}
	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, apperrors.Wrap("search_error", "failed to embed query", err)
	}
	results, err := s.repo.SearchNearest(ctx, vectors[0], s.cfg.SearchLimit)
	if err != nil {
		return nil, apperrors.Wrap("search_error", "nearest neighbour lookup failed", err)
	}
	return results, nil
}

func (s *service) AttachMedia(ctx context.Context, slug, filename string, data []byte, mimeType string) (Media, error) {
	post, found, err := s.repo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return Media{}, apperrors.Wrap("storage_error", "failed to load post", err)
	}
	if !found {
		return Media{}, apperrors.Wrap("not_found", "post not found", nil)
	}
	if len(data) == 0 {
		return Media{}, apperrors.Wrap("invalid_input", "upload is empty", nil)
	}
	if int64(len(data)) > s.cfg.MaxMediaBytes {
		return Media{}, apperrors.Wrap("invalid_input", "upload exceeds the size limit", nil)
	}

	key := fmt.Sprintf("posts/%s/%s%s", post.Slug, uuid.NewString(), path.Ext(filename))
	media, err := s.storage.Put(ctx, key, data, mimeType)
	if err != nil {
		return Media{}, apperrors.Wrap("storage_error", "failed to store media", err)
	}
	media.PostSlug = post.Slug
	s.logger.Info("media attached", "slug", post.Slug, "key", media.Key, "bytes", media.Size)
	return media, nil
}

func (s *service) OpenMedia(ctx context.Context, key string) (io.ReadCloser, error) {
	if strings.TrimSpace(key) == "" {
		return nil, apperrors.Wrap("invalid_input", "key is required", nil)
	}
	reader, err := s.storage.Get(ctx, key)
	if err != nil {
		return nil, apperrors.Wrap("not_found", "media not found", err)
	}
	return reader, nil
}

// embedText indexes the searchable text of a post. Draft posts are embedded
// too; the repository filters them out of search results.
func (s *service) embedText(ctx context.Context, post Post) ([]float32, error) {
	text := post.Title + "\n" + post.Summary + "\n" + post.Body
	vectors, err := s.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, apperrors.Wrap("search_error", "failed to embed post", err)
	}
	return vectors[0], nil
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		clean := strings.ToLower(strings.TrimSpace(tag))
		if clean == "" {
			continue
		}
		if _, dup := seen[clean]; dup {
			continue
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	return out
}
