package cache

import (
	"context"
	"errors"
	"fmt"
	"parcel-route-service/internal/domain"
	"parcel-route-service/internal/platform/obs"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisScheduleCache publishes the computed delivery schedule so that other
// processes can answer status queries without rerunning the routes.
// Each package is stored as a hash at "<prefix>:package:<id>" with the fields
// truck_id, address, departed_at and delivered_at (RFC 3339, empty when unset).
type RedisScheduleCache struct {
	Client *redis.Client
	Prefix string
	// TTL expires published entries; zero keeps them forever.
	TTL time.Duration
}

func NewRedisScheduleCache(client *redis.Client, prefix string, ttl time.Duration) *RedisScheduleCache {
	if prefix == "" {
		prefix = "parcel"
	}
	return &RedisScheduleCache{Client: client, Prefix: prefix, TTL: ttl}
}

func (c *RedisScheduleCache) key(id int) string {
	return c.Prefix + ":package:" + strconv.Itoa(id)
}

// Store the schedule of every package in a single pipeline.
func (c *RedisScheduleCache) SaveSchedule(ctx context.Context, pkgs []*domain.Package) (err error) {
	defer obs.Time(ctx, "schedule.redis.Save")(&err)

	if c.Client == nil {
		return errors.New("schedule cache: client is nil")
	}
	if len(pkgs) == 0 {
		return nil
	}

	_, err = c.Client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, p := range pkgs {
			k := c.key(p.PackageID)
			pipe.HSet(ctx, k, map[string]any{
				"truck_id":     p.TruckID,
				"address":      p.Address,
				"departed_at":  formatTime(p.DepartedAt),
				"delivered_at": formatTime(p.DeliveredAt),
			})
			if c.TTL > 0 {
				pipe.Expire(ctx, k, c.TTL)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save schedule cache: %w", err)
	}

	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}
