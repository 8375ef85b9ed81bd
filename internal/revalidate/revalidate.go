// Package revalidate signals the presentation layer that a rendered route is stale.
package revalidate

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Well-known routes invalidated after writes.
const (
	HomePath = "/"
)

// ProfilePath is the route of a user's profile page.
func ProfilePath(handle string) string {
	return "/profile/" + handle
}

// Revalidator marks a route as stale.
type Revalidator interface {
	Revalidate(ctx context.Context, path string) error
}

// Event is the payload published for each invalidated route.
type Event struct {
	Path string    `json:"path"`
	At   time.Time `json:"at"`
}

// RedisRevalidator publishes invalidation events on a Redis channel.
type RedisRevalidator struct {
	rdb     *redis.Client
	channel string
}

// NewRedisRevalidator creates a RedisRevalidator. A nil client makes every call a no-op.
func NewRedisRevalidator(rdb *redis.Client, channel string) *RedisRevalidator {
	return &RedisRevalidator{rdb: rdb, channel: channel}
}

func (r *RedisRevalidator) Revalidate(ctx context.Context, path string) error {
	if r.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(Event{Path: path, At: time.Now().UTC()})
	if err != nil {
		return err
	}
	return r.rdb.Publish(ctx, r.channel, payload).Err()
}

// LogRevalidator only records the invalidation. Used when no Redis is configured.
type LogRevalidator struct {
	log zerolog.Logger
}

func NewLogRevalidator(log zerolog.Logger) *LogRevalidator {
	return &LogRevalidator{log: log}
}

func (r *LogRevalidator) Revalidate(_ context.Context, path string) error {
	r.log.Debug().Str("path", path).Msg("route revalidated")
	return nil
}
