// internal/lending/cache/cache.go

// Package cache wraps the lending API client with a redis read-through
// cache for the loans list. Only that read-only reporting view is cached;
// beneficiary reads always pass through so the refresh-after-write policy
// can never be defeated by a stale entry.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lendscore/internal/common/config"
	"lendscore/internal/common/logger"
	"lendscore/internal/lending/api"
	"lendscore/internal/models"
)

const loansKey = "lendscore:loans"

// RedisClient wraps the redis client used by the loans cache.
type RedisClient struct {
	Client *redis.Client
}

// NewRedis creates a redis client from configuration.
func NewRedis(cfg config.RedisConfig) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})
	return &RedisClient{Client: rdb}, nil
}

// Ping tests the redis connection.
func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the redis connection.
func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

// CachedClient decorates an api.Client with loans-list caching. Cache
// failures degrade to a direct API call; they are never surfaced to the
// caller.
type CachedClient struct {
	api.Client
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// New wraps the given client. ttl bounds how long a cached loans list may
// be served.
func New(inner api.Client, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedClient {
	return &CachedClient{
		Client: inner,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "loans-cache"}),
	}
}

// ListLoans serves from redis when a fresh entry exists, otherwise loads
// from the API and stores the result.
func (c *CachedClient) ListLoans(ctx context.Context) ([]models.LoanApplicationRecord, error) {
	cached, err := c.redis.Get(ctx, loansKey).Result()
	if err == nil {
		var loans []models.LoanApplicationRecord
		if unmarshalErr := json.Unmarshal([]byte(cached), &loans); unmarshalErr == nil {
			return loans, nil
		}
		// Corrupt entry: fall through to the API and overwrite it.
		c.logger.Warn("discarding unreadable cache entry", map[string]interface{}{"key": loansKey})
	} else if err != redis.Nil {
		c.logger.Warn("cache read failed, falling back to API", map[string]interface{}{
			"key":   loansKey,
			"error": err.Error(),
		})
	}

	loans, err := c.Client.ListLoans(ctx)
	if err != nil {
		return nil, err
	}

	if data, marshalErr := json.Marshal(loans); marshalErr == nil {
		if setErr := c.redis.Set(ctx, loansKey, data, c.ttl).Err(); setErr != nil {
			c.logger.Warn("cache write failed", map[string]interface{}{
				"key":   loansKey,
				"error": setErr.Error(),
			})
		}
	}
	return loans, nil
}

// SubmitLoanApplication invalidates the loans list after a successful
// submission so the next read reflects the new application.
func (c *CachedClient) SubmitLoanApplication(ctx context.Context, app models.LoanApplication) (*models.LoanApplicationRecord, error) {
	record, err := c.Client.SubmitLoanApplication(ctx, app)
	if err != nil {
		return nil, err
	}

	if delErr := c.redis.Del(ctx, loansKey).Err(); delErr != nil {
		c.logger.Warn("cache invalidation failed", map[string]interface{}{
			"key":   loansKey,
			"error": delErr.Error(),
		})
	}
	return record, nil
}
