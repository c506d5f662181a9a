package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"vidtube/internal/model"
)

const (
	// StatsCachePrefix is the key prefix for channel stats caches
	StatsCachePrefix = "stats:channel:"

	// StatsCacheTTL bounds how stale a dashboard read may be
	StatsCacheTTL = 60 * time.Second
)

// StatsCache defines the interface for channel stats cache operations.
// Using an interface enables testing with mocks and potential future backends.
type StatsCache interface {
	// GetStats retrieves cached stats for a channel.
	// Returns (stats, found, error). found=false means the caller should
	// aggregate from the database and Set the result.
	GetStats(ctx context.Context, channelID int64) (*model.ChannelStats, bool, error)

	// SetStats stores stats for a channel with the cache TTL.
	SetStats(ctx context.Context, channelID int64, stats *model.ChannelStats) error

	// Invalidate drops a channel's cached stats.
	Invalidate(ctx context.Context, channelID int64) error
}

// RedisStatsCache implements StatsCache using JSON values in Redis.
type RedisStatsCache struct {
	client *redis.Client
}

// NewStatsCache creates a new StatsCache backed by Redis.
func NewStatsCache(client *redis.Client) StatsCache {
	return &RedisStatsCache{client: client}
}

// statsKey returns the Redis key for a channel's stats cache.
func statsKey(channelID int64) string {
	return fmt.Sprintf("%s%d", StatsCachePrefix, channelID)
}

func (c *RedisStatsCache) GetStats(ctx context.Context, channelID int64) (*model.ChannelStats, bool, error) {
	key := statsKey(channelID)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		log.Printf("[StatsCache] GetStats: channel=%d MISS", channelID)
		return nil, false, nil
	}
	if err != nil {
		log.Printf("[StatsCache] GetStats FAILED: channel=%d err=%v", channelID, err)
		return nil, false, fmt.Errorf("get stats: %w", err)
	}

	var stats model.ChannelStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		log.Printf("[StatsCache] GetStats decode error: channel=%d err=%v", channelID, err)
		return nil, false, fmt.Errorf("decode stats: %w", err)
	}

	log.Printf("[StatsCache] GetStats: channel=%d HIT", channelID)
	return &stats, true, nil
}

func (c *RedisStatsCache) SetStats(ctx context.Context, channelID int64, stats *model.ChannelStats) error {
	key := statsKey(channelID)

	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, StatsCacheTTL).Err(); err != nil {
		log.Printf("[StatsCache] SetStats FAILED: channel=%d err=%v", channelID, err)
		return fmt.Errorf("set stats: %w", err)
	}

	log.Printf("[StatsCache] SetStats OK: channel=%d ttl=%v", channelID, StatsCacheTTL)
	return nil
}

func (c *RedisStatsCache) Invalidate(ctx context.Context, channelID int64) error {
	key := statsKey(channelID)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		log.Printf("[StatsCache] Invalidate FAILED: channel=%d err=%v", channelID, err)
		return fmt.Errorf("invalidate stats: %w", err)
	}

	log.Printf("[StatsCache] Invalidate OK: channel=%d", channelID)
	return nil
}
