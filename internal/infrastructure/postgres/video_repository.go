package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/viewly-dev/viewly/internal/domain/model"
	"github.com/viewly-dev/viewly/internal/domain/repository"
	"github.com/viewly-dev/viewly/internal/infrastructure/metrics"
)

// VideoRepository implements repository.VideoRepository using PostgreSQL.
type VideoRepository struct {
	db DBTX
}

// NewVideoRepository creates a new VideoRepository instance.
func NewVideoRepository(db DBTX) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create persists a new video entity.
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	const query = `
		INSERT INTO videos (id, owner_id, title, description, media_url, thumbnail_url, duration_seconds, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryInsert, metrics.TableVideos).Inc()

	_, err := r.db.Exec(ctx, query,
		video.ID,
		video.OwnerID,
		video.Title,
		video.Description,
		video.MediaURL,
		nullString(video.ThumbnailURL),
		video.DurationSeconds,
		video.Published,
		video.CreatedAt,
		video.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}

	return nil
}

// GetByID retrieves a video by its unique identifier.
func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	const query = `
		SELECT id, owner_id, title, description, media_url, thumbnail_url, duration_seconds, published, created_at, updated_at
		FROM videos
		WHERE id = $1
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableVideos).Inc()

	video, err := scanVideo(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video by ID: %w", err)
	}

	return video, nil
}

// GetViewStats computes the like aggregate and the owner's subscription
// aggregate for an already-loaded video, all relative to viewerID, as one
// statement. The video entity itself is not touched so the caller is free
// to source it from a cache.
func (r *VideoRepository) GetViewStats(ctx context.Context, videoID, ownerID, viewerID uuid.UUID) (*repository.VideoViewStats, error) {
	const query = `
		SELECT
			u.username,
			(SELECT count(*) FROM engagements e
				WHERE e.target_id = $1 AND e.kind = $4) AS like_count,
			EXISTS (SELECT 1 FROM engagements e
				WHERE e.target_id = $1 AND e.user_id = $3 AND e.kind = $4) AS viewer_liked,
			(SELECT count(*) FROM engagements e
				WHERE e.target_id = $2 AND e.kind = $5) AS subscriber_count,
			EXISTS (SELECT 1 FROM engagements e
				WHERE e.target_id = $2 AND e.user_id = $3 AND e.kind = $5) AS viewer_subscribed
		FROM users u
		WHERE u.id = $2
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableEngagements).Inc()

	var stats repository.VideoViewStats

	err := r.db.QueryRow(ctx, query, videoID, ownerID, viewerID,
		model.KindVideoLike.String(), model.KindSubscription.String(),
	).Scan(
		&stats.OwnerUsername,
		&stats.LikeCount,
		&stats.ViewerLiked,
		&stats.SubscriberCount,
		&stats.ViewerSubscribed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video view stats: %w", err)
	}

	return &stats, nil
}

// GetByOwnerID retrieves all published videos belonging to a user.
func (r *VideoRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error) {
	const query = `
		SELECT id, owner_id, title, description, media_url, thumbnail_url, duration_seconds, published, created_at, updated_at
		FROM videos
		WHERE owner_id = $1 AND published
		ORDER BY created_at DESC
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableVideos).Inc()

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos by owner ID: %w", err)
	}
	defer rows.Close()

	var videos []*model.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating videos: %w", err)
	}

	return videos, nil
}

// Delete removes a video.
func (r *VideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `
		DELETE FROM videos
		WHERE id = $1
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryDelete, metrics.TableVideos).Inc()

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

// scanVideo scans a single row into a Video model.
func scanVideo(row pgx.Row) (*model.Video, error) {
	var (
		video        model.Video
		thumbnailURL *string
	)

	err := row.Scan(
		&video.ID,
		&video.OwnerID,
		&video.Title,
		&video.Description,
		&video.MediaURL,
		&thumbnailURL,
		&video.DurationSeconds,
		&video.Published,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if thumbnailURL != nil {
		video.ThumbnailURL = *thumbnailURL
	}

	return &video, nil
}

// Compile-time verification that VideoRepository implements repository.VideoRepository.
var _ repository.VideoRepository = (*VideoRepository)(nil)
