package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/viewly-dev/viewly/internal/domain/model"
	"github.com/viewly-dev/viewly/internal/domain/repository"
)

// TweetService defines the interface for tweet business logic operations.
type TweetService interface {
	// Create posts a tweet on the owner's channel.
	Create(ctx context.Context, ownerID uuid.UUID, content string) (*model.Tweet, error)

	// ListByOwner retrieves a user's tweets with like aggregates relative
	// to viewerID (uuid.Nil for anonymous).
	ListByOwner(ctx context.Context, ownerID, viewerID uuid.UUID) ([]*model.TweetView, error)

	// Update replaces the content of a tweet owned by requesterID.
	Update(ctx context.Context, tweetID, requesterID uuid.UUID, content string) (*model.Tweet, error)

	// Delete removes a tweet owned by requesterID.
	Delete(ctx context.Context, tweetID, requesterID uuid.UUID) error
}

type tweetService struct {
	tweets repository.TweetRepository
}

// NewTweetService creates a new TweetService instance.
func NewTweetService(tweets repository.TweetRepository) TweetService {
	return &tweetService{tweets: tweets}
}

// Create posts a tweet on the owner's channel.
func (s *tweetService) Create(ctx context.Context, ownerID uuid.UUID, content string) (*model.Tweet, error) {
	tweet, err := model.NewTweet(ownerID, content)
	if err != nil {
		return nil, err
	}

	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, err
	}

	return tweet, nil
}

// ListByOwner retrieves a user's tweets with like aggregates.
func (s *tweetService) ListByOwner(ctx context.Context, ownerID, viewerID uuid.UUID) ([]*model.TweetView, error) {
	return s.tweets.ListByOwner(ctx, ownerID, viewerID)
}

// Update replaces the content of a tweet owned by requesterID.
func (s *tweetService) Update(ctx context.Context, tweetID, requesterID uuid.UUID, content string) (*model.Tweet, error) {
	tweet, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}

	if tweet.OwnerID != requesterID {
		return nil, ErrNotOwner
	}

	if content == "" {
		return nil, model.ErrEmptyContent
	}

	if err := s.tweets.UpdateContent(ctx, tweetID, content); err != nil {
		return nil, err
	}

	tweet.Content = content
	return tweet, nil
}

// Delete removes a tweet owned by requesterID.
func (s *tweetService) Delete(ctx context.Context, tweetID, requesterID uuid.UUID) error {
	tweet, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}

	if tweet.OwnerID != requesterID {
		return ErrNotOwner
	}

	return s.tweets.Delete(ctx, tweetID)
}
