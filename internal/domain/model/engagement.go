package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Kind identifies what an engagement record points at.
type Kind string

const (
	KindVideoLike    Kind = "VIDEO_LIKE"
	KindCommentLike  Kind = "COMMENT_LIKE"
	KindTweetLike    Kind = "TWEET_LIKE"
	KindSubscription Kind = "CHANNEL_SUBSCRIPTION"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindVideoLike, KindCommentLike, KindTweetLike, KindSubscription:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	return string(k)
}

// Engagement is a presence fact: "user engaged with target".
// At most one record exists per (UserID, TargetID, Kind) tuple; that
// uniqueness is enforced by the store, not by readers of this type.
// There is no update operation - records are created and deleted only.
type Engagement struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TargetID  uuid.UUID
	Kind      Kind
	CreatedAt time.Time
}

var (
	ErrInvalidKind   = errors.New("invalid engagement kind")
	ErrInvalidTarget = errors.New("target ID cannot be nil")
	ErrInvalidActor  = errors.New("user ID cannot be nil")
	ErrSelfTarget    = errors.New("cannot subscribe to own channel")
)

// NewEngagement creates a new engagement record pending persistence.
func NewEngagement(userID, targetID uuid.UUID, kind Kind) (*Engagement, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidActor
	}
	if targetID == uuid.Nil {
		return nil, ErrInvalidTarget
	}
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if kind == KindSubscription && userID == targetID {
		return nil, ErrSelfTarget
	}

	return &Engagement{
		ID:        uuid.New(),
		UserID:    userID,
		TargetID:  targetID,
		Kind:      kind,
		CreatedAt: time.Now(),
	}, nil
}

// EngagementStats is the viewer-relative aggregate derived from engagement
// records at read time. Never persisted or cached.
type EngagementStats struct {
	Count         int64
	ViewerEngaged bool
}

// ChannelStats is the subscription aggregate for a channel profile.
// SubscriberCount treats the channel as a subscription target,
// SubscribedToCount treats it as a subscription source.
type ChannelStats struct {
	SubscriberCount   int64
	SubscribedToCount int64
	ViewerSubscribed  bool
}
