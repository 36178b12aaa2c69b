package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/viewly-dev/viewly/internal/domain/model"
	"github.com/viewly-dev/viewly/internal/domain/repository"
	"github.com/viewly-dev/viewly/internal/infrastructure/metrics"
)

// EngagementRepository implements repository.EngagementRepository using
// PostgreSQL.
//
// The engagements table has UNIQUE (user_id, target_id, kind). Create maps
// the constraint violation to ErrDuplicateEngagement; DeleteOne uses
// DELETE ... RETURNING so find-and-remove is one statement. Those two
// primitives are the whole concurrency story for toggling.
type EngagementRepository struct {
	db DBTX
}

// NewEngagementRepository creates a new EngagementRepository instance.
func NewEngagementRepository(db DBTX) *EngagementRepository {
	return &EngagementRepository{db: db}
}

// Create persists a new engagement record.
func (r *EngagementRepository) Create(ctx context.Context, e *model.Engagement) error {
	const query = `
		INSERT INTO engagements (id, user_id, target_id, kind, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryInsert, metrics.TableEngagements).Inc()

	_, err := r.db.Exec(ctx, query,
		e.ID,
		e.UserID,
		e.TargetID,
		e.Kind.String(),
		e.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicateEngagement
		}
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	return nil
}

// DeleteOne atomically removes the record matching the tuple, if any.
func (r *EngagementRepository) DeleteOne(ctx context.Context, userID, targetID uuid.UUID, kind model.Kind) (bool, error) {
	const query = `
		DELETE FROM engagements
		WHERE user_id = $1 AND target_id = $2 AND kind = $3
		RETURNING id
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryDelete, metrics.TableEngagements).Inc()

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, userID, targetID, kind.String()).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete engagement: %w", err)
	}

	return true, nil
}

// CountByTarget returns the number of records for a target and kind.
func (r *EngagementRepository) CountByTarget(ctx context.Context, targetID uuid.UUID, kind model.Kind) (int64, error) {
	const query = `
		SELECT count(*)
		FROM engagements
		WHERE target_id = $1 AND kind = $2
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableEngagements).Inc()

	var count int64
	if err := r.db.QueryRow(ctx, query, targetID, kind.String()).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count engagements: %w", err)
	}

	return count, nil
}

// Exists reports whether a record exists for the tuple.
func (r *EngagementRepository) Exists(ctx context.Context, userID, targetID uuid.UUID, kind model.Kind) (bool, error) {
	if userID == uuid.Nil {
		return false, nil
	}

	const query = `
		SELECT EXISTS (
			SELECT 1 FROM engagements
			WHERE user_id = $1 AND target_id = $2 AND kind = $3
		)
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableEngagements).Inc()

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, targetID, kind.String()).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check engagement existence: %w", err)
	}

	return exists, nil
}

// StatsByTarget returns count and viewer flag in one round trip. A
// uuid.Nil viewer never matches a row, so anonymous reads come back with
// ViewerEngaged=false without a separate code path.
func (r *EngagementRepository) StatsByTarget(ctx context.Context, targetID uuid.UUID, kind model.Kind, viewerID uuid.UUID) (*model.EngagementStats, error) {
	const query = `
		SELECT
			count(*),
			count(*) FILTER (WHERE user_id = $3) > 0
		FROM engagements
		WHERE target_id = $1 AND kind = $2
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableEngagements).Inc()

	var stats model.EngagementStats
	err := r.db.QueryRow(ctx, query, targetID, kind.String(), viewerID).Scan(
		&stats.Count,
		&stats.ViewerEngaged,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get engagement stats: %w", err)
	}

	return &stats, nil
}

// ChannelStats returns the subscription aggregates for a channel.
func (r *EngagementRepository) ChannelStats(ctx context.Context, channelID, viewerID uuid.UUID) (*model.ChannelStats, error) {
	const query = `
		SELECT
			(SELECT count(*) FROM engagements
				WHERE target_id = $1 AND kind = $3),
			(SELECT count(*) FROM engagements
				WHERE user_id = $1 AND kind = $3),
			EXISTS (SELECT 1 FROM engagements
				WHERE target_id = $1 AND user_id = $2 AND kind = $3)
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableEngagements).Inc()

	var stats model.ChannelStats
	err := r.db.QueryRow(ctx, query, channelID, viewerID, model.KindSubscription.String()).Scan(
		&stats.SubscriberCount,
		&stats.SubscribedToCount,
		&stats.ViewerSubscribed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel stats: %w", err)
	}

	return &stats, nil
}

// Compile-time verification that EngagementRepository implements repository.EngagementRepository.
var _ repository.EngagementRepository = (*EngagementRepository)(nil)
