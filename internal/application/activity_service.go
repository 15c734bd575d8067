package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nexstu/socialgraph/internal/domain/entity"
	repo "github.com/nexstu/socialgraph/internal/domain/repository"
	"github.com/nexstu/socialgraph/internal/domain/shared"
	"github.com/nexstu/socialgraph/pkg/metrics"
)

const defaultActivityLimit = 50

type ActivityService struct {
	Activities repo.ActivityRepository
	Logger     *logrus.Logger
}

func NewActivityService(activities repo.ActivityRepository, logger *logrus.Logger) *ActivityService {
	return &ActivityService{Activities: activities, Logger: logger}
}

// Recent returns the newest activities addressed to userID.
func (s *ActivityService) Recent(ctx context.Context, userID string, limit int) ([]entity.Activity, error) {
	if userID == "" {
		return nil, shared.E("activity.Recent", shared.ErrUnauthenticated, "Authentication required", nil)
	}
	if limit <= 0 || limit > defaultActivityLimit {
		limit = defaultActivityLimit
	}
	out, err := s.Activities.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []entity.Activity{}
	}
	return out, nil
}

// RecordFollow stores a follow activity for the followed user. Unfollows
// produce nothing.
func (s *ActivityService) RecordFollow(ctx context.Context, ev entity.FollowEvent) error {
	if ev.Action != entity.ActionFollowed {
		return nil
	}
	err := s.Activities.Create(ctx, &entity.Activity{
		UserID:    ev.FollowedID,
		ActorID:   ev.FollowerID,
		Type:      entity.ActivityFollow,
		CreatedAt: ev.OccurredAt,
	})
	status := "ok"
	if err != nil {
		status = "error"
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{
				"user_id":  ev.FollowedID,
				"actor_id": ev.FollowerID,
			}).Error("record follow activity failed")
		}
	}
	metrics.Get().ActivitiesRecorded.WithLabelValues(status).Inc()
	return err
}
