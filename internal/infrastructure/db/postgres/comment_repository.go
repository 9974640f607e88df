package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/q815101630/flaska/internal/core/domain"
)

// CommentRepository is the Postgres implementation of ports.CommentRepository.
type CommentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentSelect = `
SELECT c.id, c.body, c.disabled, c.author_id, c.blog_id, c.created_at,
       u.name AS author_name
  FROM comments c
  JOIN users u ON u.id = c.author_id`

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	const query = `
INSERT INTO comments (body, disabled, author_id, blog_id, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		comment.Body, comment.Disabled, comment.AuthorID, comment.BlogID, comment.CreatedAt,
	).Scan(&comment.ID)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.GetContext(ctx, &comment, commentSelect+" WHERE c.id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return &comment, nil
}

func (r *CommentRepository) ByBlog(ctx context.Context, blogID int64, limit, offset int) ([]domain.Comment, error) {
	query := commentSelect + ` WHERE c.blog_id = $1 ORDER BY c.created_at DESC, c.id DESC LIMIT $2 OFFSET $3`
	var comments []domain.Comment
	if err := r.db.SelectContext(ctx, &comments, query, blogID, limit, offset); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (r *CommentRepository) CountByBlog(ctx context.Context, blogID int64) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM comments WHERE blog_id = $1`, blogID); err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return n, nil
}

func (r *CommentRepository) SetDisabled(ctx context.Context, id int64, disabled bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE comments SET disabled = $2 WHERE id = $1`, id, disabled)
	if err != nil {
		return fmt.Errorf("set comment disabled: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}
