package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Comment is a user comment on a video.
type Comment struct {
	ID        uuid.UUID
	VideoID   uuid.UUID
	OwnerID   uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var (
	ErrEmptyContent   = errors.New("content cannot be empty")
	ErrContentTooLong = errors.New("content exceeds maximum length of 2000 characters")
	ErrInvalidVideoID = errors.New("video ID cannot be nil")
)

const maxContentLength = 2000

func NewComment(videoID, ownerID uuid.UUID, content string) (*Comment, error) {
	if videoID == uuid.Nil {
		return nil, ErrInvalidVideoID
	}
	if ownerID == uuid.Nil {
		return nil, ErrInvalidOwner
	}
	if content == "" {
		return nil, ErrEmptyContent
	}
	if len(content) > maxContentLength {
		return nil, ErrContentTooLong
	}

	now := time.Now()
	return &Comment{
		ID:        uuid.New(),
		VideoID:   videoID,
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CommentView is a Comment joined with its like aggregate.
type CommentView struct {
	Comment     *Comment
	LikeCount   int64
	ViewerLiked bool
}
