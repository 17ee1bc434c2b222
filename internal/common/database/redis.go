// internal/common/database/redis.go
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"enre-reclamos/internal/common/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the Redis client
type RedisClient struct {
	Client *redis.Client
}

// NewRedis creates a new Redis client
func NewRedis(cfg config.RedisConfig) (*RedisClient, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("redis address is not configured")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     2,
	})

	return &RedisClient{Client: rdb}, nil
}

// Ping tests the Redis connection
func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

// GuardKey is the single lock key shared by every submitter instance.
const GuardKey = "enre:reclamo:submission"

// ErrGuardHeld is returned by Acquire when another submission holds the lock.
var ErrGuardHeld = errors.New("submission guard already held")

// releaseScript deletes the key only if it still holds our token.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// SubmissionGuard keeps overlapping submissions from posting the form twice.
type SubmissionGuard struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

func NewSubmissionGuard(client redis.Cmdable, ttl time.Duration) *SubmissionGuard {
	return &SubmissionGuard{client: client, key: GuardKey, ttl: ttl}
}

// Acquire takes the lock and returns the token needed to release it.
func (g *SubmissionGuard) Acquire(ctx context.Context) (string, error) {
	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, g.key, token, g.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("acquire submission guard: %w", err)
	}
	if !ok {
		return "", ErrGuardHeld
	}
	return token, nil
}

// Release drops the lock if token still owns it. An expired lock is not an error.
func (g *SubmissionGuard) Release(ctx context.Context, token string) error {
	if err := g.client.Eval(ctx, releaseScript, []string{g.key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release submission guard: %w", err)
	}
	return nil
}
