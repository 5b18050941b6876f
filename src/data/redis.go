package data

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// CacheJSON stores v as JSON under key with a TTL. Failures are logged, not
// returned; the cache is best-effort.
func CacheJSON(ctx context.Context, rdb *redis.Client, key string, v interface{}, ttl time.Duration) {
	if rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("redis: marshal %s: %v", key, err)
		return
	}
	if err := rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("redis: set %s: %v", key, err)
	}
}

// CachedJSON loads key into v, reporting whether a cached value was found.
func CachedJSON(ctx context.Context, rdb *redis.Client, key string, v interface{}) bool {
	if rdb == nil {
		return false
	}
	raw, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("redis: get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		log.Printf("redis: unmarshal %s: %v", key, err)
		return false
	}
	return true
}
