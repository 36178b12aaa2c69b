package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/viewly-dev/viewly/internal/domain/model"
)

const (
	defaultTrendingLimit = 10
	maxTrendingLimit     = 50
)

// TrendingSource reads the per-day engagement leaderboards the worker
// maintains.
type TrendingSource interface {
	Top(ctx context.Context, kind model.Kind, day time.Time, n int64) ([]uuid.UUID, error)
}

// TrendingService exposes the daily engagement leaderboards.
type TrendingService interface {
	// Top returns the highest net-engagement target IDs for a kind on a
	// given day, best first. A limit outside [1, 50] is clamped.
	Top(ctx context.Context, kind model.Kind, day time.Time, limit int64) ([]uuid.UUID, error)
}

type trendingService struct {
	source TrendingSource
}

// NewTrendingService creates a new TrendingService instance.
func NewTrendingService(source TrendingSource) TrendingService {
	return &trendingService{source: source}
}

// Top returns the day's leaderboard for a kind.
func (s *trendingService) Top(ctx context.Context, kind model.Kind, day time.Time, limit int64) ([]uuid.UUID, error) {
	if !kind.IsValid() {
		return nil, model.ErrInvalidKind
	}

	if limit <= 0 {
		limit = defaultTrendingLimit
	}
	if limit > maxTrendingLimit {
		limit = maxTrendingLimit
	}

	return s.source.Top(ctx, kind, day, limit)
}
