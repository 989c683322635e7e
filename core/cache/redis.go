package cache

import (
	"context"
	"fmt"
	"time"

	"game-scheduler/core/logger"
	"game-scheduler/core/utils"

	"github.com/redis/go-redis/v9"
)

// Cache is the Redis surface used by the service. Locks are advisory: they
// serialize callers that agree to take them, nothing more.
type Cache interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	ExtendLock(ctx context.Context, key, token string, ttl time.Duration) (ok bool, err error)
	ReleaseLock(ctx context.Context, key, token string) error
	Ping(ctx context.Context) error
	Close() error
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type redisCache struct {
	client *redis.Client
}

// releaseScript deletes the lock only if it still holds our token, so an
// expired lock re-acquired by another caller is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// extendScript resets the TTL only while the lock still holds our token.
var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

func NewRedisCache(cfg RedisConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Cache:NewRedisCache", err, "addr", cfg.Addr)
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	logger.Info("Redis connected", "addr", cfg.Addr, "db", cfg.DB)
	return &redisCache{client: client}, nil
}

func (c *redisCache) AcquireLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := utils.GenerateToken()
	ok, err := c.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		logger.Error("Cache:AcquireLock", err, "key", key)
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (c *redisCache) ExtendLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	n, err := extendScript.Run(ctx, c.client, []string{key}, token, ttl.Milliseconds()).Int()
	if err != nil {
		logger.Error("Cache:ExtendLock", err, "key", key)
		return false, err
	}
	return n == 1, nil
}

func (c *redisCache) ReleaseLock(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, c.client, []string{key}, token).Err(); err != nil {
		logger.Error("Cache:ReleaseLock", err, "key", key)
		return err
	}
	return nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Close() error {
	return c.client.Close()
}
