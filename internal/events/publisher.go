// Package events publishes moderation lifecycle events to Redis Streams.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/butlerian/directory/internal/logger"
)

// StreamName is the Redis stream for moderation events.
const StreamName = "moderation-events"

// EventType represents the kind of moderation event.
type EventType string

const (
	SubmissionApproved EventType = "SUBMISSION_APPROVED"
	SubmissionRejected EventType = "SUBMISSION_REJECTED"
	SubmissionDeleted  EventType = "SUBMISSION_DELETED"
)

// ModerationEvent is the envelope for moderation lifecycle events.
type ModerationEvent struct {
	EventID      uuid.UUID `json:"event_id"`
	EventType    EventType `json:"event_type"`
	SubmissionID string    `json:"submission_id"`
	Kind         string    `json:"kind"` // "resource" or "company"
	Reviewer     string    `json:"reviewer,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// asyncPublishTimeout is the context timeout for async publish operations.
const asyncPublishTimeout = 5 * time.Second

// Publisher publishes moderation events to a Redis stream. A nil *Publisher
// is a no-op so event publishing stays optional.
type Publisher struct {
	client *redis.Client
	log    logger.Logger
}

func NewPublisher(client *redis.Client, log logger.Logger) *Publisher {
	if client == nil {
		return nil
	}
	return &Publisher{
		client: client,
		log:    log,
	}
}

// Publish sends an event to the stream.
func (p *Publisher) Publish(ctx context.Context, event ModerationEvent) error {
	if p == nil || p.client == nil {
		return nil
	}

	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamName,
		Values: map[string]any{
			"event": string(payload),
		},
	})

	if publishErr := result.Err(); publishErr != nil {
		if p.log != nil {
			p.log.Error("Failed to publish event",
				logger.String("event_type", string(event.EventType)),
				logger.String("submission_id", event.SubmissionID),
				logger.Error(publishErr),
			)
		}
		return fmt.Errorf("publish to stream: %w", publishErr)
	}

	if p.log != nil {
		p.log.Info("Published moderation event",
			logger.String("event_type", string(event.EventType)),
			logger.String("submission_id", event.SubmissionID),
			logger.String("stream_id", result.Val()),
		)
	}

	return nil
}

// PublishAsync publishes an event in the background. Errors are logged, not
// returned; moderation never waits on the stream.
func (p *Publisher) PublishAsync(event ModerationEvent) {
	if p == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncPublishTimeout)
		defer cancel()

		if err := p.Publish(ctx, event); err != nil && p.log != nil {
			p.log.Error("Async publish failed",
				logger.String("event_type", string(event.EventType)),
				logger.String("submission_id", event.SubmissionID),
				logger.Error(err),
			)
		}
	}()
}
