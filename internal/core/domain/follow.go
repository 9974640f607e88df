package domain

import "time"

// Follow is a directed edge meaning "follower observes followed's posts".
// The (FollowerID, FollowedID) pair is the composite primary key, so at most
// one edge exists per ordered pair.
type Follow struct {
	FollowerID int64     `json:"follower_id" db:"follower_id"`
	FollowedID int64     `json:"followed_id" db:"followed_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
