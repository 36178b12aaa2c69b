package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/viewly-dev/viewly/internal/domain/model"
)

const (
	// trendingKeyPrefix is the prefix for daily trending sorted sets.
	trendingKeyPrefix = "trending:"

	// trendingTTL keeps a daily set around long enough to serve
	// yesterday's board while today's fills up.
	trendingTTL = 48 * time.Hour
)

// TrendingCounter maintains per-day engagement counters in Redis sorted
// sets. Fed by the worker from the engagement event stream; a toggle-off
// decrements, so the score tracks net engagement.
type TrendingCounter struct {
	client *redis.Client
}

// NewTrendingCounter creates a Redis-backed trending counter.
func NewTrendingCounter(client *redis.Client) *TrendingCounter {
	return &TrendingCounter{client: client}
}

// Record applies one engagement event to the day's counter.
func (t *TrendingCounter) Record(ctx context.Context, kind model.Kind, targetID uuid.UUID, active bool, at time.Time) error {
	delta := 1.0
	if !active {
		delta = -1.0
	}

	key := t.buildKey(kind, at)

	pipe := t.client.TxPipeline()
	pipe.ZIncrBy(ctx, key, delta, targetID.String())
	pipe.Expire(ctx, key, trendingTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis zincrby: %w", err)
	}

	return nil
}

// Top returns the n highest-scoring target IDs for a kind and day.
func (t *TrendingCounter) Top(ctx context.Context, kind model.Kind, day time.Time, n int64) ([]uuid.UUID, error) {
	key := t.buildKey(kind, day)

	members, err := t.client.ZRevRange(ctx, key, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis zrevrange: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			return nil, fmt.Errorf("parse trending member: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// buildKey constructs the sorted-set key for a kind and day.
// Format: trending:{kind}:{YYYY-MM-DD}
func (t *TrendingCounter) buildKey(kind model.Kind, at time.Time) string {
	return trendingKeyPrefix + kind.String() + ":" + at.UTC().Format("2006-01-02")
}
