package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 72 * time.Hour

// WebhookDedup remembers delivered webhook event ids.
// Key format: webhook:dedup:<event_id>
type WebhookDedup struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewWebhookDedup wraps client. A non-positive ttl uses dedupTTL.
func NewWebhookDedup(client redis.Cmdable, ttl time.Duration) *WebhookDedup {
	if ttl <= 0 {
		ttl = dedupTTL
	}
	return &WebhookDedup{client: client, ttl: ttl}
}

// FirstDelivery atomically marks eventID as seen and reports whether this is
// its first delivery.
func (d *WebhookDedup) FirstDelivery(ctx context.Context, eventID string) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.key(eventID), "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return ok, nil
}

func (d *WebhookDedup) key(eventID string) string {
	return "webhook:dedup:" + eventID
}
