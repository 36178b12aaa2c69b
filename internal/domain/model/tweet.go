package model

import (
	"time"

	"github.com/google/uuid"
)

// Tweet is a short text post on a user's channel.
type Tweet struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewTweet(ownerID uuid.UUID, content string) (*Tweet, error) {
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
	return &Tweet{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// TweetView is a Tweet joined with its like aggregate.
type TweetView struct {
	Tweet       *Tweet
	LikeCount   int64
	ViewerLiked bool
}
