package ports

import (
	"context"

	"github.com/q815101630/flaska/internal/core/domain"
)

// BlogRepository persists blogs. Listing methods return rows newest first
// with the author name populated; lookups that miss return
// domain.ErrBlogNotFound.
type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) (*domain.Blog, error)
	FindByID(ctx context.Context, id int64) (*domain.Blog, error)

	// Update persists body and body_html.
	Update(ctx context.Context, blog *domain.Blog) error

	List(ctx context.Context, limit, offset int) ([]domain.Blog, error)
	Count(ctx context.Context) (int64, error)

	ByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]domain.Blog, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)

	// Feed lists blogs authored by anyone the given user follows.
	Feed(ctx context.Context, followerID int64, limit, offset int) ([]domain.Blog, error)
	CountFeed(ctx context.Context, followerID int64) (int64, error)
}

// CommentRepository persists comments; lookups that miss return
// domain.ErrCommentNotFound.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id int64) (*domain.Comment, error)

	// ByBlog lists a blog's comments newest first, disabled ones included.
	ByBlog(ctx context.Context, blogID int64, limit, offset int) ([]domain.Comment, error)
	CountByBlog(ctx context.Context, blogID int64) (int64, error)

	SetDisabled(ctx context.Context, id int64, disabled bool) error
}
