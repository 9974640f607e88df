package ports

import (
	"context"

	"github.com/q815101630/flaska/internal/core/domain"
)

// FollowPage is one page of a follower/following listing.
type FollowPage struct {
	Items      []FollowEdge
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// FollowService implements the follow graph operations. Follow and Unfollow
// are idempotent: repeating either leaves the graph unchanged.
type FollowService interface {
	Follow(ctx context.Context, follower *domain.User, followedName string) error
	Unfollow(ctx context.Context, follower *domain.User, followedName string) error

	IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error)
	IsFollowedBy(ctx context.Context, userID, followerID int64) (bool, error)

	Followers(ctx context.Context, name string, page int) (*FollowPage, error)
	Following(ctx context.Context, name string, page int) (*FollowPage, error)
}
