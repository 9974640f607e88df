package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/q815101630/flaska/internal/core/ports"
)

// FollowRepository is the Postgres implementation of ports.FollowRepository.
// The composite primary key on (follower_id, followed_id) makes concurrent
// inserts of the same edge collapse into one row.
type FollowRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) Insert(ctx context.Context, followerID, followedID int64) error {
	const query = `
INSERT INTO follows (follower_id, followed_id)
VALUES ($1, $2)
ON CONFLICT (follower_id, followed_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, followerID, followedID); err != nil {
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

func (r *FollowRepository) Delete(ctx context.Context, followerID, followedID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`, followerID, followedID)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	return nil
}

func (r *FollowRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2)`,
		followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("follow exists: %w", err)
	}
	return exists, nil
}

// edgeRow joins a follow edge with the user on the far end.
type edgeRow struct {
	userRow
	EdgeCreatedAt time.Time `db:"edge_created_at"`
}

const edgeSelect = `
SELECT u.id, u.name, u.email, u.password_hash, u.confirmed, u.role_id,
       u.age, u.gender, u.phone, u.location, u.about_me,
       u.avatar_hash, u.small_avatar_hash, u.created_at, u.last_seen,
       r.name AS role_name, r.is_default AS role_is_default, r.permissions AS role_permissions,
       f.created_at AS edge_created_at
  FROM follows f
  JOIN users u ON u.id = %s
  JOIN roles r ON r.id = u.role_id
 WHERE %s = $1
 ORDER BY f.created_at DESC, u.id
 LIMIT $2 OFFSET $3`

func (r *FollowRepository) Followers(ctx context.Context, userID int64, limit, offset int) ([]ports.FollowEdge, error) {
	query := fmt.Sprintf(edgeSelect, "f.follower_id", "f.followed_id")
	return r.listEdges(ctx, query, userID, limit, offset)
}

func (r *FollowRepository) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	return r.countEdges(ctx, `SELECT COUNT(*) FROM follows WHERE followed_id = $1`, userID)
}

func (r *FollowRepository) Following(ctx context.Context, userID int64, limit, offset int) ([]ports.FollowEdge, error) {
	query := fmt.Sprintf(edgeSelect, "f.followed_id", "f.follower_id")
	return r.listEdges(ctx, query, userID, limit, offset)
}

func (r *FollowRepository) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	return r.countEdges(ctx, `SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID)
}

func (r *FollowRepository) listEdges(ctx context.Context, query string, userID int64, limit, offset int) ([]ports.FollowEdge, error) {
	var rows []edgeRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("list follow edges: %w", err)
	}
	edges := make([]ports.FollowEdge, 0, len(rows))
	for _, row := range rows {
		edges = append(edges, ports.FollowEdge{User: *row.toUser(), CreatedAt: row.EdgeCreatedAt})
	}
	return edges, nil
}

func (r *FollowRepository) countEdges(ctx context.Context, query string, userID int64) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, query, userID); err != nil {
		return 0, fmt.Errorf("count follow edges: %w", err)
	}
	return n, nil
}
