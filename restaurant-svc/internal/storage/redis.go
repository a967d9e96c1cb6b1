package storage

import (
	"context"
	"errors"
	"strconv"
	"time"

	"restaurant-hub/restaurant-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const dailyLeaderboardPrefix = "analytics:daily:"

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) ReviewMarkerKey(menuItemID, userID int) string {
	return "review:" + strconv.Itoa(menuItemID) + ":" + strconv.Itoa(userID)
}

func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	res, err := c.Client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

func (c *RedisCache) SetMarker(ctx context.Context, key string) error {
	return c.Client.Set(ctx, key, "1", c.TTL).Err()
}

// TopToday reads today's popularity leaderboard. Members are menu item ids;
// names are left for the caller to fill in.
func (c *RedisCache) TopToday(ctx context.Context, limit int) ([]domain.PopularItem, error) {
	key := dailyLeaderboardPrefix + time.Now().Format(time.DateOnly)
	result, err := c.Client.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	items := make([]domain.PopularItem, 0, len(result))
	for _, member := range result {
		name, _ := member.Member.(string)
		id, err := strconv.Atoi(name)
		if err != nil {
			continue
		}
		items = append(items, domain.PopularItem{MenuItemID: id, Score: member.Score})
	}
	return items, nil
}
