package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// 연결할 수 없는 서버에 대한 오류는 miss가 아니라 오류로 전달된다
func TestCache_PropagatesConnectionErrors(t *testing.T) {
	c := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer c.Close()

	cache := NewCache(c, "recipe-blog:")
	ctx := context.Background()

	var dest []string
	hit, err := cache.Get(ctx, "recipes:list", &dest)
	assert.False(t, hit)
	assert.Error(t, err)

	assert.Error(t, cache.Set(ctx, "recipes:list", []string{"a"}, time.Minute))
	assert.Error(t, cache.Delete(ctx, "recipes:list"))
	assert.NoError(t, cache.Delete(ctx))
}

func TestCache_KeyPrefix(t *testing.T) {
	cache := NewCache(nil, KeyPrefix)
	assert.Equal(t, "recipe-blog:sitemap:xml", cache.key("sitemap:xml"))
}

func TestClose_WithoutInit(t *testing.T) {
	client = nil
	assert.NoError(t, Close())
	assert.Nil(t, GetClient())
}
