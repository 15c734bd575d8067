package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nexstu/socialgraph/internal/domain/entity"
	repo "github.com/nexstu/socialgraph/internal/domain/repository"
	"github.com/nexstu/socialgraph/internal/domain/shared"
	"github.com/nexstu/socialgraph/pkg/metrics"
)

type RelationshipService struct {
	Users   repo.UserRepository
	Follows repo.FollowRepository
	Events  EventPublisher
	Logger  *logrus.Logger

	now func() time.Time
}

// ToggleResult is what the caller sees after a follow toggle. FollowersCount
// is nil when the flip committed but the recount failed.
type ToggleResult struct {
	Action         entity.FollowAction `json:"action"`
	IsFollowing    bool                `json:"is_following"`
	FollowersCount *int64              `json:"followers_count,omitempty"`
}

func NewRelationshipService(users repo.UserRepository, follows repo.FollowRepository, events EventPublisher, logger *logrus.Logger) *RelationshipService {
	if events == nil {
		events = NopPublisher{}
	}
	return &RelationshipService{
		Users:   users,
		Follows: follows,
		Events:  events,
		Logger:  logger,
		now:     time.Now,
	}
}

// Toggle flips the caller's follow edge towards target and reports the new
// state together with the target's follower count.
func (s *RelationshipService) Toggle(ctx context.Context, callerID, targetID string) (*ToggleResult, error) {
	const op = "relationship.Toggle"
	if callerID == "" {
		return nil, shared.E(op, shared.ErrUnauthenticated, "Authentication required", nil)
	}
	if targetID == "" {
		return nil, shared.E(op, shared.ErrValidation, "target_user_id is required", nil)
	}
	if callerID == targetID {
		return nil, shared.E(op, shared.ErrSelfFollow, "Cannot follow yourself", nil)
	}

	ok, err := s.Users.Exists(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.E(op, shared.ErrUnauthenticated, "Unknown caller", nil)
	}
	ok, err = s.Users.Exists(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.E(op, shared.ErrNotFound, "User not found", nil)
	}

	action, err := s.Follows.Toggle(ctx, callerID, targetID)
	if err != nil {
		if s.Logger != nil && shared.KindOf(err) != shared.ErrSelfFollow {
			s.Logger.WithError(err).WithFields(logrus.Fields{"follower_id": callerID, "followed_id": targetID}).Warn("follow toggle failed")
		}
		return nil, err
	}
	metrics.Get().FollowTogglesTotal.WithLabelValues(string(action)).Inc()

	// the edge is committed from here on; nothing below may turn it into an error
	s.publish(ctx, entity.FollowEvent{
		FollowerID: callerID,
		FollowedID: targetID,
		Action:     action,
		OccurredAt: s.now().UTC(),
	})

	res := &ToggleResult{Action: action, IsFollowing: action.Following()}
	followers, err := s.Follows.CountFollowers(ctx, targetID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("followed_id", targetID).Warn("follower recount failed after toggle")
		}
		return res, nil
	}
	res.FollowersCount = &followers
	return res, nil
}

// IsFollowing is a pure existence check.
func (s *RelationshipService) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	if followerID == "" || followedID == "" {
		return false, nil
	}
	return s.Follows.IsFollowing(ctx, followerID, followedID)
}

// Counts returns follower and following cardinalities for userID.
func (s *RelationshipService) Counts(ctx context.Context, userID string) (followers, following int64, err error) {
	if followers, err = s.Follows.CountFollowers(ctx, userID); err != nil {
		return 0, 0, err
	}
	if following, err = s.Follows.CountFollowing(ctx, userID); err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}

func (s *RelationshipService) publish(ctx context.Context, ev entity.FollowEvent) {
	status := "ok"
	if err := s.Events.PublishFollow(ctx, ev); err != nil {
		status = "error"
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{
				"follower_id": ev.FollowerID,
				"followed_id": ev.FollowedID,
				"action":      ev.Action,
			}).Warn("follow event publish failed")
		}
	}
	metrics.Get().EventsPublishedTotal.WithLabelValues(status).Inc()
}
