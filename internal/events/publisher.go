// Package events fans session events out to listeners over redis pub/sub.
// The event-feed websocket and any other room observer subscribe to the
// session channel.
package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Channel names the pub/sub channel carrying one session's events.
func Channel(sessionID string) string {
	return "session:" + sessionID + ":events"
}

// RedisPublisher publishes events for a single session.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

func NewRedisPublisher(rdb *redis.Client, sessionID string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: Channel(sessionID)}
}

func (p *RedisPublisher) PublishEvent(ctx context.Context, event any) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, p.channel, string(b)).Err()
}

// Publish is the unbound form used by components that serve many sessions.
func Publish(ctx context.Context, rdb *redis.Client, sessionID string, event any) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return rdb.Publish(ctx, Channel(sessionID), string(b)).Err()
}
