// Package cache memoizes evaluation output in Redis so the API does
// not rerun every engine on every request.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meridian-systems/accountpulse/internal/portfolio"
)

const (
	evalKeyPrefix = "accountpulse:eval:"
	summaryKey    = "accountpulse:summary"

	// DefaultEvaluationTTL is how long a cached per-customer evaluation
	// stays fresh.
	DefaultEvaluationTTL = 30 * time.Minute

	// DefaultSummaryTTL is how long the cached portfolio summary stays
	// fresh.
	DefaultSummaryTTL = time.Hour
)

// Cache stores evaluation results in Redis with per-kind TTLs.
type Cache struct {
	client     *redis.Client
	evalTTL    time.Duration
	summaryTTL time.Duration
}

// New connects to Redis at addr. Zero TTLs fall back to the defaults.
func New(addr string, evalTTL, summaryTTL time.Duration) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return NewWithClient(client, evalTTL, summaryTTL)
}

// NewWithClient wraps an existing Redis client, useful for testing.
func NewWithClient(client *redis.Client, evalTTL, summaryTTL time.Duration) *Cache {
	if evalTTL <= 0 {
		evalTTL = DefaultEvaluationTTL
	}
	if summaryTTL <= 0 {
		summaryTTL = DefaultSummaryTTL
	}
	return &Cache{client: client, evalTTL: evalTTL, summaryTTL: summaryTTL}
}

// Ping verifies the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

// GetEvaluation returns the cached evaluation for a customer, with a
// hit flag. A miss is not an error.
func (c *Cache) GetEvaluation(ctx context.Context, customerID string) (*portfolio.Evaluation, bool, error) {
	data, err := c.client.Get(ctx, evalKeyPrefix+customerID).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var ev portfolio.Evaluation
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, false, fmt.Errorf("unmarshaling cached evaluation: %w", err)
	}
	return &ev, true, nil
}

// SetEvaluation caches a customer's evaluation for the evaluation TTL.
func (c *Cache) SetEvaluation(ctx context.Context, ev portfolio.Evaluation) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, evalKeyPrefix+ev.CustomerID, data, c.evalTTL).Err()
}

// GetSummary returns the cached portfolio summary, with a hit flag.
func (c *Cache) GetSummary(ctx context.Context) (*portfolio.Summary, bool, error) {
	data, err := c.client.Get(ctx, summaryKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var s portfolio.Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, false, fmt.Errorf("unmarshaling cached summary: %w", err)
	}
	return &s, true, nil
}

// SetSummary caches the portfolio summary for the summary TTL.
func (c *Cache) SetSummary(ctx context.Context, s portfolio.Summary) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, summaryKey, data, c.summaryTTL).Err()
}

// InvalidateCustomer drops a customer's cached evaluation and the
// portfolio summary, which that customer contributed to.
func (c *Cache) InvalidateCustomer(ctx context.Context, customerID string) error {
	return c.client.Del(ctx, evalKeyPrefix+customerID, summaryKey).Err()
}
