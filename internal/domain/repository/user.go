package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/viewly-dev/viewly/internal/domain/model"
)

// UserRepository defines the interface for user persistence operations.
// Implementations should be provided by the infrastructure layer (e.g., PostgreSQL).
type UserRepository interface {
	// Create persists a new user entity.
	// Returns ErrDuplicateUser if the username or email is already taken.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by its unique identifier.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByLogin retrieves a user by username or email.
	// Returns ErrUserNotFound if neither matches.
	GetByLogin(ctx context.Context, login string) (*model.User, error)

	// SetRefreshToken unconditionally overwrites the stored refresh token.
	// Used at login, where no prior token needs to match.
	// Returns ErrUserNotFound if the user does not exist.
	SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error

	// SwapRefreshToken replaces the stored refresh token only if the stored
	// value equals current. The comparison and the write are a single atomic
	// statement so two concurrent rotations cannot both succeed against the
	// same predecessor. Returns ErrRefreshTokenMismatch if no row matched.
	SwapRefreshToken(ctx context.Context, id uuid.UUID, current, next string) error

	// ClearRefreshToken removes the stored refresh token (logout).
	// Idempotent: clearing an already-cleared user succeeds.
	ClearRefreshToken(ctx context.Context, id uuid.UUID) error

	// UpdatePassword replaces the stored password hash.
	// Returns ErrUserNotFound if the user does not exist.
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error

	// UpdateDetails updates the mutable profile fields.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateDetails(ctx context.Context, user *model.User) error

	// GetChannelProfile retrieves the public channel view for a username,
	// with subscriber aggregates computed relative to viewerID. viewerID may
	// be uuid.Nil for anonymous reads, which yields ViewerSubscribed=false.
	// Returns ErrUserNotFound if no such channel exists.
	GetChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*model.ChannelProfile, error)
}
