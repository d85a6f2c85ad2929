package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	rateLimitKeyPrefix = "ratelimit:"
	rateLimitWindow    = time.Second
)

// RateLimiter implements domain.RateLimiter as a sliding one-second window
type RateLimiter struct {
	client      *Client
	limitPerSec int
	pollEvery   time.Duration
}

// NewRateLimiter creates a new RateLimiter
func NewRateLimiter(client *Client, limitPerSec int) *RateLimiter {
	return &RateLimiter{
		client:      client,
		limitPerSec: limitPerSec,
		pollEvery:   10 * time.Millisecond,
	}
}

func rateLimitKey(scope string) string {
	return rateLimitKeyPrefix + scope
}

// Allow checks if a request is allowed under the rate limit using sliding window
func (r *RateLimiter) Allow(ctx context.Context, scope string) (bool, error) {
	if r.limitPerSec <= 0 {
		return true, nil
	}

	key := rateLimitKey(scope)
	now := time.Now()

	count, err := r.trim(ctx, key, now)
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if count >= int64(r.limitPerSec) {
		return false, nil
	}

	stamp := strconv.FormatInt(now.UnixNano(), 10)
	pipe := r.client.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: stamp})
	pipe.Expire(ctx, key, 2*rateLimitWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to record request: %w", err)
	}

	return true, nil
}

// Wait blocks until a request is allowed
func (r *RateLimiter) Wait(ctx context.Context, scope string) error {
	allowed, err := r.Allow(ctx, scope)
	if err != nil || allowed {
		return err
	}

	ticker := time.NewTicker(r.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			allowed, err := r.Allow(ctx, scope)
			if err != nil {
				return err
			}
			if allowed {
				return nil
			}
		}
	}
}

// CurrentRate returns the number of requests in the current window
func (r *RateLimiter) CurrentRate(ctx context.Context, scope string) (int64, error) {
	count, err := r.trim(ctx, rateLimitKey(scope), time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to get current rate: %w", err)
	}
	return count, nil
}

// trim drops entries older than the window and returns what remains
func (r *RateLimiter) trim(ctx context.Context, key string, now time.Time) (int64, error) {
	windowStart := now.Add(-rateLimitWindow)

	pipe := r.client.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	countCmd := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return countCmd.Val(), nil
}
