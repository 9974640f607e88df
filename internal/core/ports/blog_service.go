package ports

import (
	"context"

	"github.com/q815101630/flaska/internal/core/domain"
)

// BlogPage is one page of a blog listing.
type BlogPage struct {
	Items      []domain.Blog
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// BlogService implements blog authoring and the listings built on the follow
// graph. Page parameters are 1-based; out-of-range pages return an empty
// page, never an error.
type BlogService interface {
	// Create renders the Markdown body to sanitized HTML and stores both.
	Create(ctx context.Context, author *domain.User, body string) (*domain.Blog, error)

	// Update replaces the body and re-renders the HTML. Only the author or
	// an administrator may edit.
	Update(ctx context.Context, actor *domain.User, blogID int64, body string) (*domain.Blog, error)

	Get(ctx context.Context, id int64) (*domain.Blog, error)
	List(ctx context.Context, page int) (*BlogPage, error)
	ByAuthor(ctx context.Context, authorName string, page int) (*BlogPage, error)

	// Feed lists blogs authored by users the given user follows.
	Feed(ctx context.Context, user *domain.User, page int) (*BlogPage, error)
}

// CommentPage is one page of a comment listing.
type CommentPage struct {
	Items      []domain.Comment
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CommentService implements commenting and moderation.
type CommentService interface {
	Create(ctx context.Context, author *domain.User, blogID int64, body string) (*domain.Comment, error)
	ListByBlog(ctx context.Context, blogID int64, page int) (*CommentPage, error)

	// SetDisabled flips the moderation flag. The actor must hold the
	// moderate permission.
	SetDisabled(ctx context.Context, actor *domain.User, commentID int64, disabled bool) (*domain.Comment, error)
}
