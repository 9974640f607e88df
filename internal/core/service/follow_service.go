package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/q815101630/flaska/internal/pkg/metrics"
	"github.com/q815101630/flaska/internal/core/domain"
	"github.com/q815101630/flaska/internal/core/ports"
)

// FollowService implements the directed follow graph. Both mutations are
// idempotent; the composite primary key in storage guarantees at most one
// edge per ordered pair even under concurrent requests.
type FollowService struct {
	follows  ports.FollowRepository
	users    ports.UserRepository
	pageSize int
	log      zerolog.Logger
}

func NewFollowService(follows ports.FollowRepository, users ports.UserRepository, pageSize int, log zerolog.Logger) *FollowService {
	return &FollowService{follows: follows, users: users, pageSize: pageSize, log: log}
}

// Follow adds an edge from follower to the named user. Following someone
// already followed is a no-op; following yourself is rejected.
func (s *FollowService) Follow(ctx context.Context, follower *domain.User, followedName string) error {
	followed, err := s.users.FindByName(ctx, followedName)
	if err != nil {
		return err
	}
	if followed.ID == follower.ID {
		return domain.ErrSelfFollow
	}

	if err := s.follows.Insert(ctx, follower.ID, followed.ID); err != nil {
		return fmt.Errorf("follow: %w", err)
	}

	metrics.FollowsTotal.WithLabelValues("follow").Inc()
	s.log.Info().Int64("follower_id", follower.ID).Int64("followed_id", followed.ID).Msg("follow edge added")
	return nil
}

// Unfollow removes the edge if present; removing a missing edge is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, follower *domain.User, followedName string) error {
	followed, err := s.users.FindByName(ctx, followedName)
	if err != nil {
		return err
	}

	if err := s.follows.Delete(ctx, follower.ID, followed.ID); err != nil {
		return fmt.Errorf("unfollow: %w", err)
	}

	metrics.FollowsTotal.WithLabelValues("unfollow").Inc()
	s.log.Info().Int64("follower_id", follower.ID).Int64("followed_id", followed.ID).Msg("follow edge removed")
	return nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	return s.follows.Exists(ctx, followerID, followedID)
}

func (s *FollowService) IsFollowedBy(ctx context.Context, userID, followerID int64) (bool, error) {
	return s.follows.Exists(ctx, followerID, userID)
}

// Followers returns a page of users who follow the named user.
func (s *FollowService) Followers(ctx context.Context, name string, page int) (*ports.FollowPage, error) {
	user, err := s.users.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	items, err := s.follows.Followers(ctx, user.ID, s.pageSize, pageOffset(page, s.pageSize))
	if err != nil {
		return nil, fmt.Errorf("followers: %w", err)
	}
	total, err := s.follows.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("followers: count: %w", err)
	}
	return s.followPage(items, total, page), nil
}

// Following returns a page of users the named user follows.
func (s *FollowService) Following(ctx context.Context, name string, page int) (*ports.FollowPage, error) {
	user, err := s.users.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	items, err := s.follows.Following(ctx, user.ID, s.pageSize, pageOffset(page, s.pageSize))
	if err != nil {
		return nil, fmt.Errorf("following: %w", err)
	}
	total, err := s.follows.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("following: count: %w", err)
	}
	return s.followPage(items, total, page), nil
}

func (s *FollowService) followPage(items []ports.FollowEdge, total int64, page int) *ports.FollowPage {
	return &ports.FollowPage{
		Items:      items,
		Total:      total,
		Page:       normalizePage(page),
		Limit:      s.pageSize,
		TotalPages: totalPages(total, s.pageSize),
	}
}
