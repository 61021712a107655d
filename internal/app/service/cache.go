package service

import (
	"context"
	"time"

	"github.com/bufgix/recipe-blog-backend/internal/metrics"
	"github.com/bufgix/recipe-blog-backend/pkg/logger"
)

const (
	CacheKeyRecipeList = "recipes:list"
	CacheKeySitemap    = "sitemap:xml"

	cacheTimeout = 2 * time.Second
)

// Cache JSON 값을 저장하는 캐시 (pkg/redis.Cache)
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// cacheGet 캐시가 없거나 오류가 나면 miss로 취급
func cacheGet(cache Cache, key string, dest interface{}) bool {
	if cache == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	hit, err := cache.Get(ctx, key, dest)
	if err != nil {
		logger.Warn("Cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		hit = false
	}
	metrics.RecordCacheLookup(key, hit)
	return hit
}

func cacheSet(cache Cache, key string, value interface{}, ttl time.Duration) {
	if cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	if err := cache.Set(ctx, key, value, ttl); err != nil {
		logger.Warn("Cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func cacheInvalidate(cache Cache, keys ...string) {
	if cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	if err := cache.Delete(ctx, keys...); err != nil {
		logger.Warn("Cache invalidation failed", map[string]interface{}{
			"keys":  keys,
			"error": err.Error(),
		})
	}
}
