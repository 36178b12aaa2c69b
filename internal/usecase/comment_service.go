package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/viewly-dev/viewly/internal/domain/model"
	"github.com/viewly-dev/viewly/internal/domain/repository"
)

// CommentService defines the interface for comment business logic operations.
type CommentService interface {
	// Add creates a comment on a video.
	Add(ctx context.Context, videoID, ownerID uuid.UUID, content string) (*model.Comment, error)

	// ListByVideo retrieves comments on a video with like aggregates
	// relative to viewerID (uuid.Nil for anonymous).
	ListByVideo(ctx context.Context, videoID, viewerID uuid.UUID) ([]*model.CommentView, error)

	// Update replaces the content of a comment owned by requesterID.
	Update(ctx context.Context, commentID, requesterID uuid.UUID, content string) (*model.Comment, error)

	// Delete removes a comment owned by requesterID.
	Delete(ctx context.Context, commentID, requesterID uuid.UUID) error
}

type commentService struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
}

// NewCommentService creates a new CommentService instance.
func NewCommentService(comments repository.CommentRepository, videos repository.VideoRepository) CommentService {
	return &commentService{
		comments: comments,
		videos:   videos,
	}
}

// Add creates a comment after verifying the video exists.
func (s *commentService) Add(ctx context.Context, videoID, ownerID uuid.UUID, content string) (*model.Comment, error) {
	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return nil, err
	}

	comment, err := model.NewComment(videoID, ownerID, content)
	if err != nil {
		return nil, err
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// ListByVideo retrieves comments on a video with like aggregates.
func (s *commentService) ListByVideo(ctx context.Context, videoID, viewerID uuid.UUID) ([]*model.CommentView, error) {
	return s.comments.ListByVideo(ctx, videoID, viewerID)
}

// Update replaces the content of a comment owned by requesterID.
func (s *commentService) Update(ctx context.Context, commentID, requesterID uuid.UUID, content string) (*model.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.OwnerID != requesterID {
		return nil, ErrNotOwner
	}

	if content == "" {
		return nil, model.ErrEmptyContent
	}

	if err := s.comments.UpdateContent(ctx, commentID, content); err != nil {
		return nil, err
	}

	comment.Content = content
	return comment, nil
}

// Delete removes a comment owned by requesterID.
func (s *commentService) Delete(ctx context.Context, commentID, requesterID uuid.UUID) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.OwnerID != requesterID {
		return ErrNotOwner
	}

	return s.comments.Delete(ctx, commentID)
}
