package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/q815101630/flaska/internal/core/domain"
)

// BlogRepository is the Postgres implementation of ports.BlogRepository.
type BlogRepository struct {
	db *sqlx.DB
}

func NewBlogRepository(db *sqlx.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

const blogSelect = `
SELECT b.id, b.body, b.body_html, b.author_id, b.created_at,
       u.name AS author_name
  FROM blogs b
  JOIN users u ON u.id = b.author_id`

func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog) (*domain.Blog, error) {
	const query = `
INSERT INTO blogs (body, body_html, author_id, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		blog.Body, blog.BodyHTML, blog.AuthorID, blog.CreatedAt,
	).Scan(&blog.ID)
	if err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return blog, nil
}

func (r *BlogRepository) FindByID(ctx context.Context, id int64) (*domain.Blog, error) {
	var blog domain.Blog
	if err := r.db.GetContext(ctx, &blog, blogSelect+" WHERE b.id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, fmt.Errorf("find blog: %w", err)
	}
	return &blog, nil
}

func (r *BlogRepository) Update(ctx context.Context, blog *domain.Blog) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE blogs SET body = $2, body_html = $3 WHERE id = $1`,
		blog.ID, blog.Body, blog.BodyHTML)
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrBlogNotFound
	}
	return nil
}

func (r *BlogRepository) List(ctx context.Context, limit, offset int) ([]domain.Blog, error) {
	return r.list(ctx, blogSelect+` ORDER BY b.created_at DESC, b.id DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *BlogRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM blogs`)
}

func (r *BlogRepository) ByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]domain.Blog, error) {
	query := blogSelect + ` WHERE b.author_id = $3 ORDER BY b.created_at DESC, b.id DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset, authorID)
}

func (r *BlogRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM blogs WHERE author_id = $1`, authorID)
}

// Feed selects blogs whose author is followed by followerID.
func (r *BlogRepository) Feed(ctx context.Context, followerID int64, limit, offset int) ([]domain.Blog, error) {
	query := blogSelect + `
  JOIN follows f ON f.followed_id = b.author_id
 WHERE f.follower_id = $3
 ORDER BY b.created_at DESC, b.id DESC
 LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset, followerID)
}

func (r *BlogRepository) CountFeed(ctx context.Context, followerID int64) (int64, error) {
	const query = `
SELECT COUNT(*)
  FROM blogs b
  JOIN follows f ON f.followed_id = b.author_id
 WHERE f.follower_id = $1`
	return r.count(ctx, query, followerID)
}

func (r *BlogRepository) list(ctx context.Context, query string, args ...any) ([]domain.Blog, error) {
	var blogs []domain.Blog
	if err := r.db.SelectContext(ctx, &blogs, query, args...); err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, nil
}

func (r *BlogRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("count blogs: %w", err)
	}
	return n, nil
}
