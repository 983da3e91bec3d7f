package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is the fixed expiry for every cached read.
const DefaultTTL = 1800 * time.Second

// Cache is a read-through accelerator over Redis. Get reports hit/miss as an
// explicit result instead of an error, so callers branch on the value rather
// than on a thrown condition. Any cache fault is indistinguishable from a
// miss to the caller that falls back to the primary store.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: DefaultTTL}
}

// Get fetches and decodes the value under key. It returns (false, nil) on a
// miss, (false, err) on a cache fault or malformed stored value, and
// (true, nil) after dest has been populated.
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("malformed cached value at %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Key derivation: one deterministic key per read endpoint and identifying
// parameter.

func PlaylistsKey(userID string) string {
	return "playlists:" + userID
}

func PlaylistSongsKey(playlistID string) string {
	return "playlist_songs:" + playlistID
}

func PlaylistActivitiesKey(playlistID string) string {
	return "playlist_activities:" + playlistID
}

func AlbumLikesKey(albumID string) string {
	return "album_likes:" + albumID
}
