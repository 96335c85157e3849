package contentrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/evanlin/lifeboard/internal/domain/content"
)

// PostgresRepository persists posts and their search embeddings using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const postColumns = `id, slug, title, body, summary, tags, published, created_at, updated_at`

// Insert creates a new post row with its embedding.
func (r *PostgresRepository) Insert(ctx context.Context, post content.Post, embedding []float32) (content.Post, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (slug, title, body, summary, tags, published, embedding, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+postColumns+`
	`, post.Slug, post.Title, post.Body, post.Summary, post.Tags, post.Published,
		pgvector.NewVector(embedding), post.CreatedAt, post.UpdatedAt)
	stored, err := scanPost(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return content.Post{}, content.ErrSlugExists
		}
		return content.Post{}, err
	}
	return stored, nil
}

// Update rewrites a post row and refreshes its embedding.
func (r *PostgresRepository) Update(ctx context.Context, post content.Post, embedding []float32) (content.Post, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE posts
		SET title = $2, body = $3, summary = $4, tags = $5, published = $6,
		    embedding = $7, updated_at = $8
		WHERE slug = $1
		RETURNING `+postColumns+`
	`, post.Slug, post.Title, post.Body, post.Summary, post.Tags, post.Published,
		pgvector.NewVector(embedding), post.UpdatedAt)
	stored, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return content.Post{}, content.ErrNotFound
		}
		return content.Post{}, err
	}
	return stored, nil
}

// GetBySlug fetches one post.
func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (content.Post, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE slug = $1
		LIMIT 1
	`, slug)
	if err != nil {
		return content.Post{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return content.Post{}, false, rows.Err()
	}
	post, err := scanPost(rows)
	if err != nil {
		return content.Post{}, false, err
	}
	return post, true, rows.Err()
}

// List returns posts newest first.
func (r *PostgresRepository) List(ctx context.Context, publishedOnly bool) ([]content.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts`
	if publishedOnly {
		query += ` WHERE published`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []content.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// Delete removes a post.
func (r *PostgresRepository) Delete(ctx context.Context, slug string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE slug = $1`, slug)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return content.ErrNotFound
	}
	return nil
}

// SearchNearest returns published posts ordered by embedding distance.
func (r *PostgresRepository) SearchNearest(ctx context.Context, embedding []float32, limit int) ([]content.SearchResult, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+postColumns+`, embedding <-> $1 AS distance
		FROM posts
		WHERE published
		ORDER BY embedding <-> $1
		LIMIT $2
	`, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []content.SearchResult
	for rows.Next() {
		var distance float64
		post, err := scanPost(rows, &distance)
		if err != nil {
			return nil, err
		}
		results = append(results, content.SearchResult{Post: post, Distance: distance})
	}
	return results, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner, extras ...any) (content.Post, error) {
	var (
		post    content.Post
		created time.Time
		updated time.Time
	)
	args := []any{&post.ID, &post.Slug, &post.Title, &post.Body, &post.Summary, &post.Tags, &post.Published, &created, &updated}
	args = append(args, extras...)
	if err := row.Scan(args...); err != nil {
		return content.Post{}, err
	}
	post.CreatedAt = created.UTC()
	post.UpdatedAt = updated.UTC()
	return post, nil
}

var _ content.Repository = (*PostgresRepository)(nil)
