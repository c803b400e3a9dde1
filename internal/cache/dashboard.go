package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/taskhive/backend/internal/domain"
)

const dashboardKeyPrefix = "dashboard:"

// DashboardCache keeps per-user task status counters in redis with a short
// TTL. Mutating task operations invalidate the entry.
type DashboardCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewDashboardCache(client redis.UniversalClient, ttl time.Duration) *DashboardCache {
	return &DashboardCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *DashboardCache) Get(ctx context.Context, userID uuid.UUID) (map[domain.TaskStatus]int64, error) {
	raw, err := c.client.Get(ctx, dashboardKeyPrefix+userID.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var counts map[domain.TaskStatus]int64
	if err := json.Unmarshal(raw, &counts); err != nil {
		return nil, err
	}

	return counts, nil
}

func (c *DashboardCache) Set(ctx context.Context, userID uuid.UUID, counts map[domain.TaskStatus]int64) error {
	raw, err := json.Marshal(counts)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, dashboardKeyPrefix+userID.String(), raw, c.ttl).Err()
}

func (c *DashboardCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return c.client.Del(ctx, dashboardKeyPrefix+userID.String()).Err()
}
