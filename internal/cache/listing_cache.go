package cache

import (
	"context"
	"fmt"
	"time"
)

// DefaultListingTTL keeps list payloads fresh enough for a marketing page
// while absorbing carousel refresh bursts.
const DefaultListingTTL = 60 * time.Second

// ListingCache stores serialized list responses keyed by the normalized
// query parameters so repeated landing-page loads skip the database.
// Mutations invalidate a whole resource by key prefix.
type ListingCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewListingCache creates a ListingCache. A non-positive ttl falls back to
// DefaultListingTTL.
func NewListingCache(redis *RedisClient, ttl time.Duration) *ListingCache {
	if ttl <= 0 {
		ttl = DefaultListingTTL
	}
	return &ListingCache{redis: redis, ttl: ttl}
}

// key builds the namespaced cache key for one listing query.
// Layout: listing:{resource}:s={search}:r={rating}:l={limit}:o={offset}
func (c *ListingCache) key(resource, search string, rating, limit, offset int) string {
	return fmt.Sprintf("listing:%s:s=%s:r=%d:l=%d:o=%d", resource, search, rating, limit, offset)
}

// Get returns the cached payload for a listing query, or ok=false on miss
// or any Redis error. Cache errors never surface to callers.
func (c *ListingCache) Get(ctx context.Context, resource, search string, rating, limit, offset int) ([]byte, bool) {
	raw, err := c.redis.Get(ctx, c.key(resource, search, rating, limit, offset))
	if err != nil {
		return nil, false
	}
	return []byte(raw), true
}

// Set stores the payload for a listing query with the cache TTL.
func (c *ListingCache) Set(ctx context.Context, resource, search string, rating, limit, offset int, payload []byte) error {
	return c.redis.Set(ctx, c.key(resource, search, rating, limit, offset), string(payload), c.ttl)
}

// Invalidate drops every cached listing for a resource. Called after any
// create, update, or delete so stale pages never outlive a mutation.
func (c *ListingCache) Invalidate(ctx context.Context, resource string) error {
	return c.redis.DeleteByPrefix(ctx, "listing:"+resource+":")
}
