// Package messaging carries follow events over RabbitMQ.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nexstu/socialgraph/internal/domain/entity"
)

// FollowEventType is the AMQP message type of a follow event.
const FollowEventType = "follow_event"

const publishTimeout = 2 * time.Second

// JSONPublisher is satisfied by helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, messageType string, body any) error
}

type FollowEventPublisher struct {
	pub JSONPublisher
}

func NewFollowEventPublisher(pub JSONPublisher) *FollowEventPublisher {
	return &FollowEventPublisher{pub: pub}
}

func (p *FollowEventPublisher) PublishFollow(ctx context.Context, ev entity.FollowEvent) error {
	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	return p.pub.PublishJSON(c, FollowEventType, ev)
}

// DecodeFollowEvent parses a delivery body and checks the fields the worker needs.
func DecodeFollowEvent(body []byte) (entity.FollowEvent, error) {
	var ev entity.FollowEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return ev, fmt.Errorf("decode follow event: %w", err)
	}
	if ev.FollowerID == "" || ev.FollowedID == "" {
		return ev, fmt.Errorf("decode follow event: missing ids")
	}
	switch ev.Action {
	case entity.ActionFollowed, entity.ActionUnfollowed:
	default:
		return ev, fmt.Errorf("decode follow event: unknown action %q", ev.Action)
	}
	return ev, nil
}
