package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Live status hash per monitor, written after every check cycle so list and
// detail endpoints can show fresh state without hitting the checks table.

func (c *Client) StoreStatus(ctx context.Context, monitorID uuid.UUID, status string, responseTimeMs int64, checkedAt time.Time) error {
	key := fmt.Sprintf("monitor:status:%v", monitorID)

	return retry(ctx, 2, func() error {
		return c.rdb.HSet(ctx, key, map[string]any{
			"status":           status,
			"response_time_ms": responseTimeMs,
			"checked_at":       checkedAt.Unix(),
		}).Err()
	})
}

func (c *Client) GetStatus(ctx context.Context, monitorID uuid.UUID) (map[string]string, error) {
	key := fmt.Sprintf("monitor:status:%v", monitorID)

	res, err := c.rdb.HGetAll(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	return res, err
}

func (c *Client) DelStatus(ctx context.Context, monitorID uuid.UUID) error {
	key := fmt.Sprintf("monitor:status:%v", monitorID)

	return c.rdb.Del(ctx, key).Err()
}
