package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/google/uuid"

	"github.com/viewly-dev/viewly/internal/domain/model"
	"github.com/viewly-dev/viewly/internal/domain/repository"
)

// ErrNotOwner is returned when a mutation is attempted by someone other
// than the entity's owner.
var ErrNotOwner = errors.New("requester does not own this entity")

// PublishVideoInput contains the input parameters for publishing a video.
type PublishVideoInput struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader

	// DurationSeconds is client-supplied upload metadata, used when the
	// blob store descriptor carries no duration of its own.
	DurationSeconds float64
}

// VideoService defines the interface for video business logic operations.
type VideoService interface {
	// Publish stores the media through the blob store and persists the
	// video entity.
	Publish(ctx context.Context, input PublishVideoInput) (*model.Video, error)

	// GetVideo retrieves the bare video entity by ID.
	GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error)

	// GetView retrieves a video with its viewer-relative like aggregate and
	// owner subscription stats. The entity may come from a cache; the
	// aggregates are always recomputed from the ledger.
	GetView(ctx context.Context, videoID, viewerID uuid.UUID) (*model.VideoView, error)

	// GetViewStats computes the viewer-relative aggregates for a video
	// without touching the entity itself.
	GetViewStats(ctx context.Context, videoID, ownerID, viewerID uuid.UUID) (*repository.VideoViewStats, error)

	// ListByOwner retrieves a user's published videos.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error)

	// Delete removes a video owned by requesterID.
	Delete(ctx context.Context, videoID, requesterID uuid.UUID) error
}

type videoService struct {
	repo    repository.VideoRepository
	storage repository.MediaStorage
}

// NewVideoService creates a new VideoService instance.
func NewVideoService(repo repository.VideoRepository, storage repository.MediaStorage) VideoService {
	return &videoService{
		repo:    repo,
		storage: storage,
	}
}

// Publish stores the media and persists the video entity.
func (s *videoService) Publish(ctx context.Context, input PublishVideoInput) (*model.Video, error) {
	if input.OwnerID == uuid.Nil {
		return nil, model.ErrInvalidOwner
	}
	if input.Title == "" {
		return nil, model.ErrEmptyTitle
	}

	videoID := uuid.New()
	key := s.mediaKey(videoID, input.FileName)

	desc, err := s.storage.Store(ctx, key, input.Reader, input.Size, input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("store media: %w", err)
	}

	duration := desc.DurationSeconds
	if duration == 0 {
		duration = input.DurationSeconds
	}

	video, err := model.NewVideo(input.OwnerID, input.Title, input.Description, desc.URL, duration)
	if err != nil {
		return nil, err
	}
	video.ID = videoID

	if err := s.repo.Create(ctx, video); err != nil {
		// Best-effort cleanup of the orphaned object.
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			slog.Warn("failed to delete orphaned media object",
				"key", key,
				"error", delErr,
			)
		}
		return nil, fmt.Errorf("create video: %w", err)
	}

	return video, nil
}

// GetVideo retrieves the bare video entity by ID.
func (s *videoService) GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	return s.repo.GetByID(ctx, videoID)
}

// GetView retrieves a video with its viewer-relative aggregates. The
// entity load and the stats read are separate so that decorators can cache
// the former while the latter stays fresh.
func (s *videoService) GetView(ctx context.Context, videoID, viewerID uuid.UUID) (*model.VideoView, error) {
	video, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.GetViewStats(ctx, videoID, video.OwnerID, viewerID)
	if err != nil {
		return nil, err
	}

	return assembleVideoView(video, stats), nil
}

// GetViewStats computes the viewer-relative aggregates for a video.
func (s *videoService) GetViewStats(ctx context.Context, videoID, ownerID, viewerID uuid.UUID) (*repository.VideoViewStats, error) {
	return s.repo.GetViewStats(ctx, videoID, ownerID, viewerID)
}

// assembleVideoView layers the per-request aggregates on top of a video
// entity.
func assembleVideoView(video *model.Video, stats *repository.VideoViewStats) *model.VideoView {
	return &model.VideoView{
		Video:            video,
		LikeCount:        stats.LikeCount,
		ViewerLiked:      stats.ViewerLiked,
		OwnerUsername:    stats.OwnerUsername,
		SubscriberCount:  stats.SubscriberCount,
		ViewerSubscribed: stats.ViewerSubscribed,
	}
}

// ListByOwner retrieves a user's published videos.
func (s *videoService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error) {
	return s.repo.GetByOwnerID(ctx, ownerID)
}

// Delete removes a video owned by requesterID.
func (s *videoService) Delete(ctx context.Context, videoID, requesterID uuid.UUID) error {
	video, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}

	if video.OwnerID != requesterID {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, videoID); err != nil {
		return err
	}

	return nil
}

// mediaKey creates the storage key for video media.
// Format: videos/{video_id}/{filename}
func (s *videoService) mediaKey(videoID uuid.UUID, filename string) string {
	return path.Join("videos", videoID.String(), filename)
}
