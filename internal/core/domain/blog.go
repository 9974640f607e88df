package domain

import "time"

// Blog is a Markdown post. BodyHTML is a pure function of Body under a fixed
// allow-list of tags and is recomputed on every write, never edited directly.
type Blog struct {
	ID        int64     `json:"id" db:"id"`
	Body      string    `json:"body" db:"body"`
	BodyHTML  string    `json:"body_html" db:"body_html"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	AuthorID  int64     `json:"author_id" db:"author_id"`

	// AuthorName is populated by listing queries for display.
	AuthorName string `json:"author_name,omitempty" db:"author_name"`
}

// Comment belongs to a blog. Disabled is the moderation flag; hiding disabled
// comments from listings is a presentation concern.
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Disabled  bool      `json:"disabled" db:"disabled"`
	AuthorID  int64     `json:"author_id" db:"author_id"`
	BlogID    int64     `json:"blog_id" db:"blog_id"`

	AuthorName string `json:"author_name,omitempty" db:"author_name"`
}
