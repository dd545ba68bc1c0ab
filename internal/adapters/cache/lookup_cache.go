package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"olympia-api/internal/core/domain"

	"github.com/redis/go-redis/v9"
)

const lookupKeyPrefix = "olympia:lookup-options:"

// LookupOptionCache caches current lookup options per category and day.
// Redis errors degrade to a cache miss.
type LookupOptionCache struct {
	rdb redis.Cmdable
}

// NewLookupOptionCache creates a cache over any redis client
func NewLookupOptionCache(rdb redis.Cmdable) *LookupOptionCache {
	return &LookupOptionCache{rdb: rdb}
}

func lookupKey(typeCd, today string) string {
	return lookupKeyPrefix + typeCd + ":" + today
}

// Get returns cached options, ok=false on miss or error
func (c *LookupOptionCache) Get(ctx context.Context, typeCd, today string) ([]domain.LookupOption, bool) {
	raw, err := c.rdb.Get(ctx, lookupKey(typeCd, today)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("⚠️ Lookup cache get %s failed: %v", typeCd, err)
		}
		return nil, false
	}
	var options []domain.LookupOption
	if err := json.Unmarshal(raw, &options); err != nil {
		log.Printf("⚠️ Lookup cache entry %s corrupt: %v", typeCd, err)
		return nil, false
	}
	return options, true
}

// Set stores options until ttl elapses
func (c *LookupOptionCache) Set(ctx context.Context, typeCd, today string, options []domain.LookupOption, ttl time.Duration) {
	raw, err := json.Marshal(options)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, lookupKey(typeCd, today), raw, ttl).Err(); err != nil {
		log.Printf("⚠️ Lookup cache set %s failed: %v", typeCd, err)
	}
}
