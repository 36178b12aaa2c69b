package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Video represents a published video entity.
type Video struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	Title           string
	Description     string
	MediaURL        string
	ThumbnailURL    string
	DurationSeconds float64
	Published       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

var (
	ErrEmptyTitle    = errors.New("title cannot be empty")
	ErrInvalidOwner  = errors.New("owner ID cannot be nil")
	ErrTitleTooLong  = errors.New("title exceeds maximum length of 255 characters")
	ErrEmptyMediaURL = errors.New("media URL cannot be empty")
)

const maxTitleLength = 255

// NewVideo creates a published Video. MediaURL and duration come from the
// blob store descriptor returned at upload time.
func NewVideo(ownerID uuid.UUID, title, description, mediaURL string, durationSeconds float64) (*Video, error) {
	if ownerID == uuid.Nil {
		return nil, ErrInvalidOwner
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return nil, ErrTitleTooLong
	}
	if mediaURL == "" {
		return nil, ErrEmptyMediaURL
	}

	now := time.Now()
	return &Video{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		Title:           title,
		Description:     description,
		MediaURL:        mediaURL,
		DurationSeconds: durationSeconds,
		Published:       true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// VideoView is a Video joined with its viewer-relative like aggregate and
// owner channel stats, computed at read time.
type VideoView struct {
	Video            *Video
	LikeCount        int64
	ViewerLiked      bool
	OwnerUsername    string
	SubscriberCount  int64
	ViewerSubscribed bool
}
