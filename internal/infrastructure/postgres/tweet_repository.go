package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/viewly-dev/viewly/internal/domain/model"
	"github.com/viewly-dev/viewly/internal/domain/repository"
	"github.com/viewly-dev/viewly/internal/infrastructure/metrics"
)

// TweetRepository implements repository.TweetRepository using PostgreSQL.
type TweetRepository struct {
	db DBTX
}

// NewTweetRepository creates a new TweetRepository instance.
func NewTweetRepository(db DBTX) *TweetRepository {
	return &TweetRepository{db: db}
}

// Create persists a new tweet entity.
func (r *TweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	const query = `
		INSERT INTO tweets (id, owner_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryInsert, metrics.TableTweets).Inc()

	_, err := r.db.Exec(ctx, query,
		tweet.ID,
		tweet.OwnerID,
		tweet.Content,
		tweet.CreatedAt,
		tweet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create tweet: %w", err)
	}

	return nil
}

// GetByID retrieves a tweet by its unique identifier.
func (r *TweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error) {
	const query = `
		SELECT id, owner_id, content, created_at, updated_at
		FROM tweets
		WHERE id = $1
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableTweets).Inc()

	var tweet model.Tweet
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tweet.ID,
		&tweet.OwnerID,
		&tweet.Content,
		&tweet.CreatedAt,
		&tweet.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrTweetNotFound
		}
		return nil, fmt.Errorf("failed to get tweet by ID: %w", err)
	}

	return &tweet, nil
}

// ListByOwner retrieves a user's tweets joined with like aggregates.
func (r *TweetRepository) ListByOwner(ctx context.Context, ownerID, viewerID uuid.UUID) ([]*model.TweetView, error) {
	const query = `
		SELECT
			t.id, t.owner_id, t.content, t.created_at, t.updated_at,
			(SELECT count(*) FROM engagements e
				WHERE e.target_id = t.id AND e.kind = $3) AS like_count,
			EXISTS (SELECT 1 FROM engagements e
				WHERE e.target_id = t.id AND e.user_id = $2 AND e.kind = $3) AS viewer_liked
		FROM tweets t
		WHERE t.owner_id = $1
		ORDER BY t.created_at DESC
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableTweets).Inc()

	rows, err := r.db.Query(ctx, query, ownerID, viewerID, model.KindTweetLike.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query tweets by owner ID: %w", err)
	}
	defer rows.Close()

	var views []*model.TweetView
	for rows.Next() {
		var (
			tweet model.Tweet
			view  model.TweetView
		)
		err := rows.Scan(
			&tweet.ID,
			&tweet.OwnerID,
			&tweet.Content,
			&tweet.CreatedAt,
			&tweet.UpdatedAt,
			&view.LikeCount,
			&view.ViewerLiked,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tweet: %w", err)
		}
		view.Tweet = &tweet
		views = append(views, &view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tweets: %w", err)
	}

	return views, nil
}

// UpdateContent replaces a tweet's content.
func (r *TweetRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	const query = `
		UPDATE tweets
		SET content = $2, updated_at = $3
		WHERE id = $1
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryUpdate, metrics.TableTweets).Inc()

	tag, err := r.db.Exec(ctx, query, id, content, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update tweet: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrTweetNotFound
	}

	return nil
}

// Delete removes a tweet.
func (r *TweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `
		DELETE FROM tweets
		WHERE id = $1
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryDelete, metrics.TableTweets).Inc()

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrTweetNotFound
	}

	return nil
}

// Compile-time verification that TweetRepository implements repository.TweetRepository.
var _ repository.TweetRepository = (*TweetRepository)(nil)
