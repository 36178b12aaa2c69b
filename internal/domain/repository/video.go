package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/viewly-dev/viewly/internal/domain/model"
)

// VideoViewStats carries the per-request aggregates layered on top of a
// video entity: like counts and the viewer-relative flags. These are never
// cached, so the entity load and the stats read are separate operations.
type VideoViewStats struct {
	OwnerUsername    string
	LikeCount        int64
	ViewerLiked      bool
	SubscriberCount  int64
	ViewerSubscribed bool
}

// VideoRepository defines the interface for video persistence operations.
type VideoRepository interface {
	// Create persists a new video entity.
	Create(ctx context.Context, video *model.Video) error

	// GetByID retrieves a video by its unique identifier.
	// Returns ErrVideoNotFound if the video does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error)

	// GetViewStats computes the like aggregate and owner channel stats for
	// an already-loaded video, relative to viewerID (uuid.Nil for anonymous).
	GetViewStats(ctx context.Context, videoID, ownerID, viewerID uuid.UUID) (*VideoViewStats, error)

	// GetByOwnerID retrieves all published videos belonging to a user,
	// newest first. Returns empty slice if none exist.
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error)

	// Delete removes a video.
	// Returns ErrVideoNotFound if the video does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentRepository defines the interface for comment persistence operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error

	// GetByID returns ErrCommentNotFound if the comment does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)

	// ListByVideo retrieves comments on a video joined with like
	// aggregates relative to viewerID, newest first.
	ListByVideo(ctx context.Context, videoID, viewerID uuid.UUID) ([]*model.CommentView, error)

	// UpdateContent returns ErrCommentNotFound if the comment does not exist.
	UpdateContent(ctx context.Context, id uuid.UUID, content string) error

	// Delete returns ErrCommentNotFound if the comment does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// TweetRepository defines the interface for tweet persistence operations.
type TweetRepository interface {
	Create(ctx context.Context, tweet *model.Tweet) error

	// GetByID returns ErrTweetNotFound if the tweet does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error)

	// ListByOwner retrieves a user's tweets joined with like aggregates
	// relative to viewerID, newest first.
	ListByOwner(ctx context.Context, ownerID, viewerID uuid.UUID) ([]*model.TweetView, error)

	// UpdateContent returns ErrTweetNotFound if the tweet does not exist.
	UpdateContent(ctx context.Context, id uuid.UUID, content string) error

	// Delete returns ErrTweetNotFound if the tweet does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
