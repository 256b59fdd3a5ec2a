// Package cache holds the process-wide TTL caches that sit in front of the
// upstream feeds. The cache is an explicit, injectable component: construction
// takes the redis address and TTL, and nil receivers degrade to a miss so the
// pipeline works uncached.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hetulpatel/OddsEdge/internal/hashutil"
	"github.com/hetulpatel/OddsEdge/internal/models"
)

// QuoteCache stores one sport's normalized events between refresh cycles so
// repeated triggers inside the TTL window skip the upstream fetch.
type QuoteCache interface {
	Get(ctx context.Context, sport string, markets []models.MarketType) ([]models.Event, bool, error)
	Set(ctx context.Context, sport string, markets []models.MarketType, events []models.Event) error
	Close() error
}

type redisQuoteCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisQuoteCache builds a cache keyed by sport plus market set.
func NewRedisQuoteCache(addr, password string, db int, ttl time.Duration, prefix string) (QuoteCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if prefix == "" {
		prefix = "quotes"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisQuoteCache{client: client, ttl: ttl, prefix: prefix}, nil
}

func (c *redisQuoteCache) key(sport string, markets []models.MarketType) string {
	parts := make([]string, 0, len(markets)+1)
	parts = append(parts, sport)
	for _, m := range markets {
		parts = append(parts, string(m))
	}
	return hashutil.ShortKey(fmt.Sprintf("%s:%s", c.prefix, strings.ToLower(sport)), parts...)
}

func (c *redisQuoteCache) Get(ctx context.Context, sport string, markets []models.MarketType) ([]models.Event, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	raw, err := c.client.Get(ctx, c.key(sport, markets)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var events []models.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, false, err
	}
	return events, true, nil
}

func (c *redisQuoteCache) Set(ctx context.Context, sport string, markets []models.MarketType, events []models.Event) error {
	if c == nil || c.client == nil {
		return nil
	}
	payload, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(sport, markets), payload, c.ttl).Err()
}

func (c *redisQuoteCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
