package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexstu/socialgraph/internal/domain/entity"
)

type capturePublisher struct {
	typ  string
	body any
	err  error
}

func (c *capturePublisher) PublishJSON(_ context.Context, messageType string, body any) error {
	c.typ, c.body = messageType, body
	return c.err
}

func TestPublishFollowRoundTrip(t *testing.T) {
	cp := &capturePublisher{}
	pub := NewFollowEventPublisher(cp)
	ev := entity.FollowEvent{FollowerID: "a", FollowedID: "b", Action: entity.ActionFollowed, OccurredAt: time.Unix(1700000000, 0).UTC()}

	require.NoError(t, pub.PublishFollow(context.Background(), ev))
	assert.Equal(t, FollowEventType, cp.typ)

	raw, err := json.Marshal(cp.body)
	require.NoError(t, err)
	got, err := DecodeFollowEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, ev, got)
}

func TestPublishFollowPropagatesError(t *testing.T) {
	pub := NewFollowEventPublisher(&capturePublisher{err: errors.New("channel closed")})
	assert.Error(t, pub.PublishFollow(context.Background(), entity.FollowEvent{}))
}

func TestDecodeFollowEventRejectsGarbage(t *testing.T) {
	_, err := DecodeFollowEvent([]byte(`not json`))
	assert.Error(t, err)

	_, err = DecodeFollowEvent([]byte(`{"follower_id":"a","followed_id":"b","action":"poked"}`))
	assert.Error(t, err)

	_, err = DecodeFollowEvent([]byte(`{"followed_id":"b","action":"followed"}`))
	assert.Error(t, err)
}
