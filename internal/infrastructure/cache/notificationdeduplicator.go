package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// notifyKeyPrefix namespaces dedup keys: notify:{key}
const notifyKeyPrefix = "notify:"

// NotificationDeduplicator suppresses repeated notifications across
// instances. The first caller for a key wins until the key expires.
type NotificationDeduplicator struct {
	client redis.Cmdable
}

func NewNotificationDeduplicator(client redis.Cmdable) *NotificationDeduplicator {
	return &NotificationDeduplicator{client: client}
}

// TryAcquire returns true if this caller should send. SetNX makes the check
// and the claim one atomic step.
func (d *NotificationDeduplicator) TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	acquired, err := d.client.SetNX(ctx, notifyKeyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire notification lock: %w", err)
	}
	return acquired, nil
}

// Release clears a key early, e.g. when the send it guarded failed.
func (d *NotificationDeduplicator) Release(ctx context.Context, key string) error {
	if err := d.client.Del(ctx, notifyKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release notification lock: %w", err)
	}
	return nil
}
