package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"fitcoach-web/internal/fitapi"

	"github.com/redis/go-redis/v9"
)

// ProfileCache shortcuts the /user/me fetch during hydration. The cache is
// advisory: a miss or a broken cache just means one more API round trip, so
// implementations never surface errors.
type ProfileCache interface {
	Get(ctx context.Context, accessToken string) (fitapi.User, bool)
	Put(ctx context.Context, accessToken string, u fitapi.User)
	Drop(ctx context.Context, accessToken string)
}

const profileKeyPrefix = "fitcoach:profile:"

// RedisCache stores serialized profiles keyed by a hash of the access token.
// The raw token never reaches Redis.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func profileKey(accessToken string) string {
	sum := sha256.Sum256([]byte(accessToken))
	return profileKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *RedisCache) Get(ctx context.Context, accessToken string) (fitapi.User, bool) {
	raw, err := c.rdb.Get(ctx, profileKey(accessToken)).Bytes()
	if err != nil {
		return fitapi.User{}, false
	}
	var u fitapi.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return fitapi.User{}, false
	}
	return u, true
}

func (c *RedisCache) Put(ctx context.Context, accessToken string, u fitapi.User) {
	raw, err := json.Marshal(u)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, profileKey(accessToken), raw, c.ttl).Err()
}

func (c *RedisCache) Drop(ctx context.Context, accessToken string) {
	_ = c.rdb.Del(ctx, profileKey(accessToken)).Err()
}
