package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Key formatting
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache key prefixes for per-user list responses
const (
	ExpensesKeyPrefix = "expenses:user:"
	BudgetsKeyPrefix  = "budgets:user:"
)

// UserKey builds the cache key of a user's list under prefix
func UserKey(prefix string, userID uint) string {
	return prefix + strconv.FormatUint(uint64(userID), 10)
}

// VersionedKey returns base tagged with its current generation (base:v<n>).
// List results are stored under this key, so a write computed before a
// BumpVersion lands on a key nobody reads again. A nil client returns base.
func VersionedKey(ctx context.Context, rdb *redis.Client, base string) (string, error) {
	if rdb == nil {
		return base, nil // Caching disabled
	}
	n, err := rdb.Get(ctx, base+":ver").Int64() // Current generation, 0 when unset
	if err != nil && err != redis.Nil {
		return "", err
	}
	return base + ":v" + strconv.FormatInt(n, 10), nil
}

// BumpVersion retires every entry cached under base and drops the previous generation
func BumpVersion(ctx context.Context, rdb *redis.Client, base string) error {
	if rdb == nil {
		return nil // Caching disabled
	}
	n, err := rdb.Incr(ctx, base+":ver").Result() // Start a new generation
	if err != nil {
		return err
	}
	return DeleteCache(ctx, rdb, base+":v"+strconv.FormatInt(n-1, 10)) // Older entries expire on their TTL
}

// GetCache retrieves a value from Redis and unmarshals it into dest.
// A nil client behaves like an empty cache.
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil // Caching disabled
	}
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	if rdb == nil {
		return nil // Caching disabled
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes keys from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if rdb == nil || len(keys) == 0 {
		return nil // Caching disabled or nothing to do
	}
	return rdb.Del(ctx, keys...).Err() // Delete keys from Redis
}
