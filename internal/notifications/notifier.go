// Package notifications delivers committed notifications to live subscribers.
package notifications

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// UserChannel returns the Redis channel for a user's notifications.
func UserChannel(userID string) string {
	return "notifications:user:" + userID
}

// Notifier publishes notifications into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier. With a nil client publishing is a no-op.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishUser sends payload, encoded as JSON, to the user's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID string, payload any) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, UserChannel(userID), data).Err()
}
