package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/q815101630/flaska/internal/pkg/metrics"
	"github.com/q815101630/flaska/internal/core/domain"
	"github.com/q815101630/flaska/internal/core/ports"
	"github.com/q815101630/flaska/internal/pkg/markdown"
)

// BlogService implements blog authoring and the listings built on the follow
// graph. Every write re-renders body_html from the Markdown body, so the
// stored HTML is always a pure function of the current body.
type BlogService struct {
	blogs    ports.BlogRepository
	users    ports.UserRepository
	pageSize int
	log      zerolog.Logger
}

func NewBlogService(blogs ports.BlogRepository, users ports.UserRepository, pageSize int, log zerolog.Logger) *BlogService {
	return &BlogService{blogs: blogs, users: users, pageSize: pageSize, log: log}
}

func (s *BlogService) Create(ctx context.Context, author *domain.User, body string) (*domain.Blog, error) {
	blog := &domain.Blog{
		Body:      body,
		BodyHTML:  markdown.Render(body),
		CreatedAt: time.Now().UTC(),
		AuthorID:  author.ID,
	}

	created, err := s.blogs.Create(ctx, blog)
	if err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	created.AuthorName = author.Name

	metrics.BlogsCreatedTotal.Inc()
	s.log.Info().Int64("blog_id", created.ID).Int64("author_id", author.ID).Msg("blog published")
	return created, nil
}

// Update replaces the body and re-renders the HTML. Only the author or an
// administrator may edit.
func (s *BlogService) Update(ctx context.Context, actor *domain.User, blogID int64, body string) (*domain.Blog, error) {
	blog, err := s.blogs.FindByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog.AuthorID != actor.ID && !actor.IsAdministrator() {
		return nil, domain.ErrForbidden
	}

	blog.Body = body
	blog.BodyHTML = markdown.Render(body)
	if err := s.blogs.Update(ctx, blog); err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}

	s.log.Info().Int64("blog_id", blog.ID).Int64("actor_id", actor.ID).Msg("blog updated")
	return blog, nil
}

func (s *BlogService) Get(ctx context.Context, id int64) (*domain.Blog, error) {
	return s.blogs.FindByID(ctx, id)
}

// List returns a page of all blogs, newest first.
func (s *BlogService) List(ctx context.Context, page int) (*ports.BlogPage, error) {
	items, err := s.blogs.List(ctx, s.pageSize, pageOffset(page, s.pageSize))
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	total, err := s.blogs.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blogs: count: %w", err)
	}
	return s.blogPage(items, total, page), nil
}

// ByAuthor returns a page of the named user's blogs, newest first.
func (s *BlogService) ByAuthor(ctx context.Context, authorName string, page int) (*ports.BlogPage, error) {
	author, err := s.users.FindByName(ctx, authorName)
	if err != nil {
		return nil, err
	}

	items, err := s.blogs.ByAuthor(ctx, author.ID, s.pageSize, pageOffset(page, s.pageSize))
	if err != nil {
		return nil, fmt.Errorf("blogs by author: %w", err)
	}
	total, err := s.blogs.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, fmt.Errorf("blogs by author: count: %w", err)
	}
	return s.blogPage(items, total, page), nil
}

// Feed returns a page of blogs authored by users the given user follows,
// newest first.
func (s *BlogService) Feed(ctx context.Context, user *domain.User, page int) (*ports.BlogPage, error) {
	items, err := s.blogs.Feed(ctx, user.ID, s.pageSize, pageOffset(page, s.pageSize))
	if err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}
	total, err := s.blogs.CountFeed(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("feed: count: %w", err)
	}
	return s.blogPage(items, total, page), nil
}

func (s *BlogService) blogPage(items []domain.Blog, total int64, page int) *ports.BlogPage {
	return &ports.BlogPage{
		Items:      items,
		Total:      total,
		Page:       normalizePage(page),
		Limit:      s.pageSize,
		TotalPages: totalPages(total, s.pageSize),
	}
}
