package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"confreg/internal/model"
)

const (
	statsKey      = "registrations:stats:overview"
	generationKey = "registrations:stats:generation"
)

// Client wraps the go-redis client with health checking capabilities.
type Client struct {
	*redis.Client
}

// New creates a Redis client from a redis:// URL.
// Returns nil if the URL is empty (Redis not configured).
func New(ctx context.Context, rawURL string, poolSize int) (*Client, error) {
	if rawURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if poolSize > 0 {
		opts.PoolSize = poolSize
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{Client: client}, nil
}

// StatsCache keeps stats snapshots for ttl, keyed by a generation counter.
// Invalidate increments the counter instead of deleting, so a snapshot
// computed from data older than the last mutation lands under a stale key.
type StatsCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewStatsCache(rdb redis.Cmdable, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: ttl}
}

func snapshotKey(gen int64) string {
	return fmt.Sprintf("%s:%d", statsKey, gen)
}

// Generation returns the current generation; 0 before the first invalidation.
func (c *StatsCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get stats generation: %w", err)
	}
	return gen, nil
}

func (c *StatsCache) Get(ctx context.Context, gen int64) (*model.StatsOverview, bool, error) {
	raw, err := c.rdb.Get(ctx, snapshotKey(gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get stats: %w", err)
	}

	var stats model.StatsOverview
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, fmt.Errorf("decode stats: %w", err)
	}
	return &stats, true, nil
}

func (c *StatsCache) Set(ctx context.Context, gen int64, stats *model.StatsOverview) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	if err := c.rdb.Set(ctx, snapshotKey(gen), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set stats: %w", err)
	}
	return nil
}

func (c *StatsCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("invalidate stats: %w", err)
	}
	return nil
}
