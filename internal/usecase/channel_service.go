package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/viewly-dev/viewly/internal/domain/model"
	"github.com/viewly-dev/viewly/internal/domain/repository"
)

// ChannelService exposes the channel-profile read path: the user entity
// joined with its subscription aggregates, relative to the viewer.
type ChannelService interface {
	// GetProfile retrieves a channel profile by username. viewerID may be
	// uuid.Nil for anonymous reads, which yields ViewerSubscribed=false.
	GetProfile(ctx context.Context, username string, viewerID uuid.UUID) (*model.ChannelProfile, error)

	// UpdateAccount updates mutable account fields of the given user.
	// Empty fields are left unchanged.
	UpdateAccount(ctx context.Context, userID uuid.UUID, email, fullName string) (*model.User, error)
}

type channelService struct {
	users repository.UserRepository
}

// NewChannelService creates a new ChannelService instance.
func NewChannelService(users repository.UserRepository) ChannelService {
	return &channelService{users: users}
}

// GetProfile retrieves a channel profile by username. The counts and the
// viewer flag are derived from the engagement ledger per request; nothing
// here is cached.
func (s *channelService) GetProfile(ctx context.Context, username string, viewerID uuid.UUID) (*model.ChannelProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, model.ErrEmptyUsername
	}

	return s.users.GetChannelProfile(ctx, username, viewerID)
}

// UpdateAccount updates mutable account fields of the given user.
func (s *channelService) UpdateAccount(ctx context.Context, userID uuid.UUID, email, fullName string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if email != "" {
		user.Email = email
	}
	if fullName != "" {
		user.FullName = fullName
	}

	if err := s.users.UpdateDetails(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
