package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Package-level client shared by the OTP store and review locks.
var client *redis.Client

// Init connects to Redis from a redis:// URL and verifies the connection
// with a ping.
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}
	if password != "" {
		opts.Password = password
	}

	client = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Ping(ctx).Err()
}

// SetClient replaces the shared client (used by tests to point at miniredis)
func SetClient(c *redis.Client) {
	client = c
}

// Set stores a key with a TTL
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return client.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value by key; redis.Nil when absent or expired
func Get(ctx context.Context, key string) (string, error) {
	return client.Get(ctx, key).Result()
}

// Del removes a key
func Del(ctx context.Context, key string) error {
	return client.Del(ctx, key).Err()
}

// SetNX sets a key with a TTL only if it does not already exist. Used for
// the per-contribution review locks.
func SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return client.SetNX(ctx, key, value, expiration).Result()
}
