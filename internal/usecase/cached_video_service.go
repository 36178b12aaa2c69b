package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/viewly-dev/viewly/internal/domain/model"
	"github.com/viewly-dev/viewly/internal/domain/repository"
	"github.com/viewly-dev/viewly/internal/infrastructure/cache"
	"github.com/viewly-dev/viewly/internal/infrastructure/metrics"
)

// CachedVideoServiceConfig holds configuration for CachedVideoService.
type CachedVideoServiceConfig struct {
	// CacheTTL is the TTL for cached video metadata.
	CacheTTL time.Duration
}

// DefaultCachedVideoServiceConfig returns the default configuration.
func DefaultCachedVideoServiceConfig() CachedVideoServiceConfig {
	return CachedVideoServiceConfig{
		CacheTTL: 5 * time.Minute,
	}
}

// cachedVideoService wraps VideoService with entity caching. Only the bare
// video entity is cached: GetView sources the entity through the cache and
// layers freshly computed viewer-relative aggregates on top, so counts and
// flags always reflect the latest committed toggle.
type cachedVideoService struct {
	delegate VideoService
	cache    cache.VideoCache
	sfGroup  singleflight.Group

	cacheTTL time.Duration
}

// NewCachedVideoService creates a new CachedVideoService wrapping the provided VideoService.
func NewCachedVideoService(
	delegate VideoService,
	videoCache cache.VideoCache,
	cfg CachedVideoServiceConfig,
) VideoService {
	return &cachedVideoService{
		delegate: delegate,
		cache:    videoCache,
		cacheTTL: cfg.CacheTTL,
	}
}

// Publish delegates to the underlying service.
// No caching for create operations - the video is immediately returned.
func (s *cachedVideoService) Publish(ctx context.Context, input PublishVideoInput) (*model.Video, error) {
	return s.delegate.Publish(ctx, input)
}

// GetVideo retrieves video metadata with caching.
// Uses singleflight to prevent cache stampede on concurrent requests for the same video.
func (s *cachedVideoService) GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	key := videoID.String()
	result, err, shared := s.sfGroup.Do(key, func() (any, error) {
		return s.getVideoWithCache(ctx, videoID)
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return nil, err
	}

	return result.(*model.Video), nil
}

// GetView loads the entity through the cache and recomputes the aggregates
// from the ledger on every call. Only the entity half is ever cached.
func (s *cachedVideoService) GetView(ctx context.Context, videoID, viewerID uuid.UUID) (*model.VideoView, error) {
	video, err := s.GetVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	stats, err := s.delegate.GetViewStats(ctx, videoID, video.OwnerID, viewerID)
	if err != nil {
		return nil, err
	}

	return assembleVideoView(video, stats), nil
}

// GetViewStats delegates to the underlying service. Aggregates are never
// cached.
func (s *cachedVideoService) GetViewStats(ctx context.Context, videoID, ownerID, viewerID uuid.UUID) (*repository.VideoViewStats, error) {
	return s.delegate.GetViewStats(ctx, videoID, ownerID, viewerID)
}

// ListByOwner delegates to the underlying service.
func (s *cachedVideoService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error) {
	return s.delegate.ListByOwner(ctx, ownerID)
}

// Delete invalidates the cache entry and delegates to the underlying service.
func (s *cachedVideoService) Delete(ctx context.Context, videoID, requesterID uuid.UUID) error {
	if err := s.cache.Delete(ctx, videoID); err != nil {
		// Log but don't fail - cache invalidation failure is non-critical
		slog.Warn("failed to invalidate cache on delete",
			"video_id", videoID,
			"error", err,
		)
	}

	return s.delegate.Delete(ctx, videoID, requesterID)
}

// getVideoWithCache implements the cache-aside pattern.
func (s *cachedVideoService) getVideoWithCache(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	video, err := s.cache.Get(ctx, videoID)
	if err != nil {
		// Log cache error but continue to database
		slog.Warn("cache get failed, falling back to database",
			"video_id", videoID,
			"error", err,
		)
	}

	if video != nil {
		return video, nil // Cache hit
	}

	video, err = s.delegate.GetVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, video, s.cacheTTL); err != nil {
		slog.Warn("failed to cache video",
			"video_id", videoID,
			"error", err,
		)
	}

	return video, nil
}
