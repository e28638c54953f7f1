package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	catalogCachePrefix = "catalog:v:"
	cacheVersionKey    = "catalog:version"
	defaultCacheTTL    = 10 * time.Minute
)

// CatalogCache keeps rendered catalog listings in redis, keyed by a
// version counter that any product mutation bumps, so stale listings age
// out without explicit invalidation of every key. A nil or unreachable
// redis degrades to a no-op.
type CatalogCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{redis: client, ttl: defaultCacheTTL}
}

func (cc *CatalogCache) key(version int64, query, category, brand string) string {
	return fmt.Sprintf("%s%d:q=%s:c=%s:b=%s", catalogCachePrefix, version, query, category, brand)
}

func (cc *CatalogCache) version(ctx context.Context) int64 {
	if cc.redis == nil {
		return 0
	}
	v, err := cc.redis.Get(ctx, cacheVersionKey).Int64()
	if err != nil {
		return 0
	}
	return v
}

// Get returns a cached listing, if any.
func (cc *CatalogCache) Get(ctx context.Context, query, category, brand string) (map[string]interface{}, bool) {
	version := cc.version(ctx)
	if version == 0 {
		return nil, false
	}
	data, err := cc.redis.Get(ctx, cc.key(version, query, category, brand)).Result()
	if err != nil {
		return nil, false
	}
	var response map[string]interface{}
	if err := json.Unmarshal([]byte(data), &response); err != nil {
		zap.L().Warn("Failed to unmarshal cached catalog listing", zap.Error(err))
		return nil, false
	}
	return response, true
}

// SetAsync caches a listing without blocking the response path.
func (cc *CatalogCache) SetAsync(query, category, brand string, response map[string]interface{}) {
	if cc.redis == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version := cc.version(ctx)
		if version == 0 {
			if err := cc.redis.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
				return
			}
			version = 1
		}
		data, err := json.Marshal(response)
		if err != nil {
			return
		}
		cc.redis.Set(ctx, cc.key(version, query, category, brand), data, cc.ttl)
	}()
}

// Bump invalidates all cached listings by advancing the version counter.
func (cc *CatalogCache) Bump(ctx context.Context) {
	if cc.redis == nil {
		return
	}
	if err := cc.redis.Incr(ctx, cacheVersionKey).Err(); err != nil {
		zap.L().Warn("Failed to bump catalog cache version", zap.Error(err))
	}
}
