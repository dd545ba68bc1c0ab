package cache

import (
	"context"
	"testing"
	"time"

	"olympia-api/internal/config"
	"olympia-api/internal/core/domain"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKey(t *testing.T) {
	assert.Equal(t, "olympia:lookup-options:110:20240615", lookupKey("110", "20240615"))
}

func TestLookupOptionCache_UnreachableRedisIsAMiss(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	c := NewLookupOptionCache(rdb)
	ctx := context.Background()

	assert.NotPanics(t, func() {
		c.Set(ctx, "110", "20240615", []domain.LookupOption{{ValueCd: "100", ValueNm: "참가"}}, time.Hour)
	})
	options, ok := c.Get(ctx, "110", "20240615")
	assert.False(t, ok)
	assert.Nil(t, options)
}

func TestNewClient_DisabledWithoutURL(t *testing.T) {
	client, err := NewClient(config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewClient_BadURL(t *testing.T) {
	_, err := NewClient(config.RedisConfig{URL: "not-a-redis-url"})
	assert.Error(t, err)
}
