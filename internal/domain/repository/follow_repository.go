package repository

import (
	"context"

	"github.com/nexstu/socialgraph/internal/domain/entity"
)

// FollowRepository exclusively owns the follow edge set.
type FollowRepository interface {
	// Toggle atomically flips the (follower, followed) pair: it creates the
	// edge when absent and deletes it when present. Concurrent toggles on the
	// same pair are serialized.
	Toggle(ctx context.Context, followerID, followedID string) (entity.FollowAction, error)
	IsFollowing(ctx context.Context, followerID, followedID string) (bool, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
	ListFollowers(ctx context.Context, userID string, limit, offset int) ([]entity.UserSummary, error)
	ListFollowing(ctx context.Context, userID string, limit, offset int) ([]entity.UserSummary, error)
}
