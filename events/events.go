// Package events emits domain events to external collaborators (notification
// dispatch, analytics). The engine only publishes; whoever consumes the
// channel is out of scope.
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Envelope is the wire shape of a published event.
type Envelope struct {
	ID         string    `json:"id"`
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// RedisPublisher publishes envelopes on a redis pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event string, payload any) error {
	data, err := json.Marshal(Envelope{
		ID:         uuid.NewString(),
		Event:      event,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, data).Err()
}

// LogPublisher is the fallback when no broker is configured; events land in
// the process log instead of disappearing.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	log.Printf("event %s: %s", event, data)
	return nil
}
