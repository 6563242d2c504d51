package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/butlerian/directory/internal/testhelpers"
)

func newTestPublisher(t *testing.T) (*Publisher, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewPublisher(client, testhelpers.NewTestLogger()), client
}

func TestPublish_AppendsToStream(t *testing.T) {
	pub, client := newTestPublisher(t)
	ctx := context.Background()

	event := ModerationEvent{
		EventID:      uuid.New(),
		EventType:    SubmissionApproved,
		SubmissionID: "sub-1",
		Kind:         "resource",
		Reviewer:     "alice",
		Timestamp:    time.Now().UTC(),
	}
	require.NoError(t, pub.Publish(ctx, event))

	entries, err := client.XRange(ctx, StreamName, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var got ModerationEvent
	require.NoError(t, json.Unmarshal([]byte(entries[0].Values["event"].(string)), &got))
	assert.Equal(t, event.EventID, got.EventID)
	assert.Equal(t, SubmissionApproved, got.EventType)
	assert.Equal(t, "sub-1", got.SubmissionID)
	assert.Equal(t, "resource", got.Kind)
	assert.Equal(t, "alice", got.Reviewer)
}

func TestPublish_FillsDefaults(t *testing.T) {
	pub, client := newTestPublisher(t)
	ctx := context.Background()

	require.NoError(t, pub.Publish(ctx, ModerationEvent{
		EventType:    SubmissionRejected,
		SubmissionID: "sub-2",
		Kind:         "company",
	}))

	entries, err := client.XRange(ctx, StreamName, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var got ModerationEvent
	require.NoError(t, json.Unmarshal([]byte(entries[0].Values["event"].(string)), &got))
	assert.NotEqual(t, uuid.Nil, got.EventID)
	assert.WithinDuration(t, time.Now().UTC(), got.Timestamp, time.Minute)
}

func TestPublisher_NilIsNoop(t *testing.T) {
	var pub *Publisher

	assert.NoError(t, pub.Publish(context.Background(), ModerationEvent{}))
	pub.PublishAsync(ModerationEvent{}) // must not panic

	assert.Nil(t, NewPublisher(nil, nil))
}
