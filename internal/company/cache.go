package company

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	catalogCacheKey = "companies:catalog"
	catalogCacheTTL = 60 * time.Second
)

// Cache is a short-lived Redis cache for the public company catalog. The
// catalog is read on every feed load but changes only when a company is
// published.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get returns the cached catalog, or ok=false on a miss.
func (c *Cache) Get(ctx context.Context) ([]Company, bool, error) {
	raw, err := c.client.Get(ctx, catalogCacheKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read catalog cache: %w", err)
	}

	var companies []Company
	if err := json.Unmarshal(raw, &companies); err != nil {
		// A corrupt entry is treated as a miss and overwritten on the next fill
		return nil, false, nil
	}

	return companies, true, nil
}

// Set stores the catalog with a short TTL.
func (c *Cache) Set(ctx context.Context, companies []Company) error {
	raw, err := json.Marshal(companies)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := c.client.Set(ctx, catalogCacheKey, raw, catalogCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to write catalog cache: %w", err)
	}

	return nil
}

// Invalidate drops the cached catalog.
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, catalogCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	return nil
}
