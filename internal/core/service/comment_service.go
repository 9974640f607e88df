package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/q815101630/flaska/internal/pkg/metrics"
	"github.com/q815101630/flaska/internal/core/domain"
	"github.com/q815101630/flaska/internal/core/ports"
)

// CommentService implements commenting and comment moderation.
type CommentService struct {
	comments ports.CommentRepository
	blogs    ports.BlogRepository
	pageSize int
	log      zerolog.Logger
}

func NewCommentService(comments ports.CommentRepository, blogs ports.BlogRepository, pageSize int, log zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, blogs: blogs, pageSize: pageSize, log: log}
}

func (s *CommentService) Create(ctx context.Context, author *domain.User, blogID int64, body string) (*domain.Comment, error) {
	if _, err := s.blogs.FindByID(ctx, blogID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		Body:      body,
		CreatedAt: time.Now().UTC(),
		AuthorID:  author.ID,
		BlogID:    blogID,
	}

	created, err := s.comments.Create(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	created.AuthorName = author.Name

	metrics.CommentsCreatedTotal.Inc()
	s.log.Info().Int64("comment_id", created.ID).Int64("blog_id", blogID).Int64("author_id", author.ID).Msg("comment posted")
	return created, nil
}

// ListByBlog returns a page of a blog's comments, newest first. Disabled
// comments are included with their flag set; hiding them is up to the
// presentation layer.
func (s *CommentService) ListByBlog(ctx context.Context, blogID int64, page int) (*ports.CommentPage, error) {
	if _, err := s.blogs.FindByID(ctx, blogID); err != nil {
		return nil, err
	}

	items, err := s.comments.ByBlog(ctx, blogID, s.pageSize, pageOffset(page, s.pageSize))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	total, err := s.comments.CountByBlog(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("list comments: count: %w", err)
	}

	return &ports.CommentPage{
		Items:      items,
		Total:      total,
		Page:       normalizePage(page),
		Limit:      s.pageSize,
		TotalPages: totalPages(total, s.pageSize),
	}, nil
}

// SetDisabled flips the moderation flag. The actor must hold the moderate
// permission; toggling has no effect beyond the flag itself.
func (s *CommentService) SetDisabled(ctx context.Context, actor *domain.User, commentID int64, disabled bool) (*domain.Comment, error) {
	if !actor.IsModerator() {
		return nil, domain.ErrForbidden
	}

	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.Disabled == disabled {
		return comment, nil
	}

	if err := s.comments.SetDisabled(ctx, commentID, disabled); err != nil {
		return nil, fmt.Errorf("set comment disabled: %w", err)
	}
	comment.Disabled = disabled

	s.log.Info().Int64("comment_id", commentID).Bool("disabled", disabled).Int64("moderator_id", actor.ID).Msg("comment moderation changed")
	return comment, nil
}
