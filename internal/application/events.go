package application

import (
	"context"

	"github.com/nexstu/socialgraph/internal/domain/entity"
)

// EventPublisher hands follow events to whatever transport is configured.
type EventPublisher interface {
	PublishFollow(ctx context.Context, ev entity.FollowEvent) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishFollow(context.Context, entity.FollowEvent) error { return nil }
