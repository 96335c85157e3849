package content

import "time"

// Post is one blog/CMS page.
type Post struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Summary   string    `json:"summary,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Media describes an uploaded attachment living in object storage.
type Media struct {
	Key      string `json:"key"`
	PostSlug string `json:"postSlug"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	ETag     string `json:"etag,omitempty"`
}

// CreateRequest is the authoring payload.
type CreateRequest struct {
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Body    string   `json:"body"`
	Summary string   `json:"summary,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Publish bool     `json:"publish,omitempty"`
}

// UpdateRequest mirrors CreateRequest against an existing slug.
type UpdateRequest struct {
	Title   string   `json:"title"`
	Body    string   `json:"body"`
	Summary string   `json:"summary,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Publish *bool    `json:"publish,omitempty"`
}

// SearchResult pairs a post with its embedding distance (smaller is closer).
type SearchResult struct {
	Post     Post    `json:"post"`
	Distance float64 `json:"distance"`
}
