package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/viewly-dev/viewly/internal/domain/model"
)

// EngagementRepository defines persistence for engagement records (likes and
// subscriptions). The store enforces a compound uniqueness constraint on
// (user_id, target_id, kind); application code never check-then-acts around
// it.
type EngagementRepository interface {
	// Create persists a new engagement record.
	// Returns ErrDuplicateEngagement if a record for the same
	// (user, target, kind) tuple already exists.
	Create(ctx context.Context, e *model.Engagement) error

	// DeleteOne atomically removes the record matching (userID, targetID,
	// kind) if one exists. Returns true if a record was removed, false if
	// none existed. The find and the delete are a single statement.
	DeleteOne(ctx context.Context, userID, targetID uuid.UUID, kind model.Kind) (bool, error)

	// CountByTarget returns the number of records with the given target and
	// kind, independent of any viewer.
	CountByTarget(ctx context.Context, targetID uuid.UUID, kind model.Kind) (int64, error)

	// Exists reports whether a record exists for the tuple. A uuid.Nil
	// userID always yields false.
	Exists(ctx context.Context, userID, targetID uuid.UUID, kind model.Kind) (bool, error)

	// StatsByTarget returns count and viewer flag in one round trip.
	// viewerID may be uuid.Nil for anonymous reads.
	StatsByTarget(ctx context.Context, targetID uuid.UUID, kind model.Kind, viewerID uuid.UUID) (*model.EngagementStats, error)

	// ChannelStats returns the subscription aggregates for a channel:
	// subscriptions targeting it, subscriptions it holds, and whether
	// viewerID subscribes to it. viewerID may be uuid.Nil.
	ChannelStats(ctx context.Context, channelID, viewerID uuid.UUID) (*model.ChannelStats, error)
}
