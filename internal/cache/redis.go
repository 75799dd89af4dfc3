package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"dinehub/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// TopSellersCache is a short-TTL Redis cache in front of the
// top-sellers aggregation. Cache failures are logged and treated as
// misses; the database remains the source of truth.
type TopSellersCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewTopSellersCache creates a Redis-backed top-sellers cache.
func NewTopSellersCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *TopSellersCache {
	return &TopSellersCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("cache", "top_sellers").Logger(),
	}
}

func (c *TopSellersCache) key(limit int) string {
	return "analytics:top-sellers:" + strconv.Itoa(limit)
}

// Get returns the cached ranking for the given limit, if present.
func (c *TopSellersCache) Get(ctx context.Context, limit int) ([]model.TopSeller, bool) {
	payload, err := c.client.Get(ctx, c.key(limit)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Msg("cache read failed")
		}
		return nil, false
	}

	var sellers []model.TopSeller
	if err := json.Unmarshal(payload, &sellers); err != nil {
		c.logger.Warn().Err(err).Msg("cache payload corrupt, discarding")
		return nil, false
	}

	return sellers, true
}

// Set stores the ranking for the given limit with the configured TTL.
func (c *TopSellersCache) Set(ctx context.Context, limit int, sellers []model.TopSeller) {
	payload, err := json.Marshal(sellers)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to marshal top sellers for cache")
		return
	}

	if err := c.client.Set(ctx, c.key(limit), payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("cache write failed")
	}
}
