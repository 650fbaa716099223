// Package cache provides an optional Redis read cache for the portfolio
// document. The store stays authoritative: the cache is filled on read and
// dropped on every successful save.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"folio/api/internal/store"
)

const portfolioKey = "portfolio:singleton"

// PortfolioCache caches the singleton portfolio document in Redis.
type PortfolioCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a Redis-backed portfolio cache from a connection URL.
func New(redisURL string) (*PortfolioCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewWithClient(client), nil
}

// NewWithClient creates a cache from an existing Redis client.
func NewWithClient(client *redis.Client) *PortfolioCache {
	return &PortfolioCache{
		client: client,
		ttl:    5 * time.Minute,
	}
}

// Get returns the cached document, or nil on a miss.
func (c *PortfolioCache) Get(ctx context.Context) (*store.Portfolio, error) {
	raw, err := c.client.Get(ctx, portfolioKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cached portfolio: %w", err)
	}

	var portfolio store.Portfolio
	if err := json.Unmarshal([]byte(raw), &portfolio); err != nil {
		return nil, fmt.Errorf("decode cached portfolio: %w", err)
	}
	return &portfolio, nil
}

func (c *PortfolioCache) Set(ctx context.Context, portfolio store.Portfolio) error {
	data, err := json.Marshal(portfolio)
	if err != nil {
		return fmt.Errorf("encode portfolio: %w", err)
	}
	if err := c.client.Set(ctx, portfolioKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache portfolio: %w", err)
	}
	return nil
}

// Invalidate drops the cached document so the next read hits the store.
func (c *PortfolioCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, portfolioKey).Err(); err != nil {
		return fmt.Errorf("invalidate portfolio cache: %w", err)
	}
	return nil
}

func (c *PortfolioCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *PortfolioCache) Close() error {
	return c.client.Close()
}
