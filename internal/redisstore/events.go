package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/stayhub/hotel-booking-backend/internal/config"
	"github.com/stayhub/hotel-booking-backend/internal/model"
)

// EventBus fans role-permission changes out over Redis pub/sub so every
// replica can push them to its WebSocket clients.
type EventBus struct {
	rdb *redis.Client
}

// NewEventBus creates an EventBus.
func NewEventBus(rdb *redis.Client) *EventBus {
	return &EventBus{rdb: rdb}
}

// Publish sends the event to the role-permission channel.
func (b *EventBus) Publish(ctx context.Context, event model.RolePermissionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.rdb.Publish(ctx, config.CacheKey.RolePermissionChannel(), payload).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Subscribe returns a subscription to the role-permission channel. The
// caller closes it.
func (b *EventBus) Subscribe(ctx context.Context) *redis.PubSub {
	return b.rdb.Subscribe(ctx, config.CacheKey.RolePermissionChannel())
}

// Events subscribes to the role-permission channel and decodes each message.
// The channel is closed once ctx is done.
func (b *EventBus) Events(ctx context.Context) (<-chan model.RolePermissionEvent, error) {
	pubsub := b.Subscribe(ctx)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	out := make(chan model.RolePermissionEvent)
	go func() {
		defer close(out)
		defer pubsub.Close()

		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				event, err := DecodeEvent(msg.Payload)
				if err != nil {
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// DecodeEvent parses a message received on the role-permission channel.
func DecodeEvent(payload string) (model.RolePermissionEvent, error) {
	var event model.RolePermissionEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return event, fmt.Errorf("decode event: %w", err)
	}
	return event, nil
}
