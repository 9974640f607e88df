package ports

import (
	"context"
	"time"

	"github.com/q815101630/flaska/internal/core/domain"
)

// FollowEdge is a follow relation joined with the user on the far end, the
// shape the follower/following listings render.
type FollowEdge struct {
	User      domain.User
	CreatedAt time.Time
}

// FollowRepository persists the directed follow graph. Insert and Delete are
// idempotent: inserting an existing edge or deleting a missing one is a no-op.
type FollowRepository interface {
	Insert(ctx context.Context, followerID, followedID int64) error
	Delete(ctx context.Context, followerID, followedID int64) error
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)

	// Followers lists users following userID, newest edge first.
	Followers(ctx context.Context, userID int64, limit, offset int) ([]FollowEdge, error)
	CountFollowers(ctx context.Context, userID int64) (int64, error)

	// Following lists users userID follows, newest edge first.
	Following(ctx context.Context, userID int64, limit, offset int) ([]FollowEdge, error)
	CountFollowing(ctx context.Context, userID int64) (int64, error)
}
