package entity

import "time"

// FollowAction is the outcome of a follow toggle.
type FollowAction string

const (
	ActionFollowed   FollowAction = "followed"
	ActionUnfollowed FollowAction = "unfollowed"
)

// Following reports the pair state after the action was applied.
func (a FollowAction) Following() bool { return a == ActionFollowed }

// FollowEdge is a directed follower -> followed relationship. Edges are never
// updated; a toggle either creates or removes one.
type FollowEdge struct {
	FollowerID string
	FollowedID string
	CreatedAt  time.Time
}

// ConnectionKind selects which side of the edge set to list.
type ConnectionKind string

const (
	ConnectionFollowers ConnectionKind = "followers"
	ConnectionFollowing ConnectionKind = "following"
)

func (k ConnectionKind) Valid() bool {
	return k == ConnectionFollowers || k == ConnectionFollowing
}

// FollowEvent is emitted after every successful toggle.
type FollowEvent struct {
	FollowerID string       `json:"follower_id"`
	FollowedID string       `json:"followed_id"`
	Action     FollowAction `json:"action"`
	OccurredAt time.Time    `json:"occurred_at"`
}
