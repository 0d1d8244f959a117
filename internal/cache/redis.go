package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const slotTTL = 60 * time.Second

// SlotCache keeps computed day slots in Redis for a short TTL. Slot
// generation is cheap and restartable, so anything here is disposable:
// misses and Redis failures just fall back to recomputing.
type SlotCache struct {
	client *redis.Client
}

func NewSlotCache(client *redis.Client) *SlotCache {
	return &SlotCache{client: client}
}

func slotKey(serviceID uint, date string) string {
	return fmt.Sprintf("slots:%d:%s", serviceID, date)
}

func (c *SlotCache) GetSlots(ctx context.Context, serviceID uint, date string) ([]string, error) {
	raw, err := c.client.Get(ctx, slotKey(serviceID, date)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *SlotCache) SetSlots(ctx context.Context, serviceID uint, date string, slots []string) error {
	data, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, slotKey(serviceID, date), data, slotTTL).Err()
}

func (c *SlotCache) InvalidateSlots(ctx context.Context, serviceID uint, date string) error {
	return c.client.Del(ctx, slotKey(serviceID, date)).Err()
}
