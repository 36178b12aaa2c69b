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

// CommentRepository implements repository.CommentRepository using PostgreSQL.
type CommentRepository struct {
	db DBTX
}

// NewCommentRepository creates a new CommentRepository instance.
func NewCommentRepository(db DBTX) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create persists a new comment entity.
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	const query = `
		INSERT INTO comments (id, video_id, owner_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryInsert, metrics.TableComments).Inc()

	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.VideoID,
		comment.OwnerID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// GetByID retrieves a comment by its unique identifier.
func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	const query = `
		SELECT id, video_id, owner_id, content, created_at, updated_at
		FROM comments
		WHERE id = $1
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableComments).Inc()

	var comment model.Comment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.VideoID,
		&comment.OwnerID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment by ID: %w", err)
	}

	return &comment, nil
}

// ListByVideo retrieves comments on a video joined with like aggregates.
func (r *CommentRepository) ListByVideo(ctx context.Context, videoID, viewerID uuid.UUID) ([]*model.CommentView, error) {
	const query = `
		SELECT
			c.id, c.video_id, c.owner_id, c.content, c.created_at, c.updated_at,
			(SELECT count(*) FROM engagements e
				WHERE e.target_id = c.id AND e.kind = $3) AS like_count,
			EXISTS (SELECT 1 FROM engagements e
				WHERE e.target_id = c.id AND e.user_id = $2 AND e.kind = $3) AS viewer_liked
		FROM comments c
		WHERE c.video_id = $1
		ORDER BY c.created_at DESC
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableComments).Inc()

	rows, err := r.db.Query(ctx, query, videoID, viewerID, model.KindCommentLike.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query comments by video ID: %w", err)
	}
	defer rows.Close()

	var views []*model.CommentView
	for rows.Next() {
		var (
			comment model.Comment
			view    model.CommentView
		)
		err := rows.Scan(
			&comment.ID,
			&comment.VideoID,
			&comment.OwnerID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UpdatedAt,
			&view.LikeCount,
			&view.ViewerLiked,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		view.Comment = &comment
		views = append(views, &view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return views, nil
}

// UpdateContent replaces a comment's content.
func (r *CommentRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	const query = `
		UPDATE comments
		SET content = $2, updated_at = $3
		WHERE id = $1
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryUpdate, metrics.TableComments).Inc()

	tag, err := r.db.Exec(ctx, query, id, content, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrCommentNotFound
	}

	return nil
}

// Delete removes a comment.
func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `
		DELETE FROM comments
		WHERE id = $1
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryDelete, metrics.TableComments).Inc()

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrCommentNotFound
	}

	return nil
}

// Compile-time verification that CommentRepository implements repository.CommentRepository.
var _ repository.CommentRepository = (*CommentRepository)(nil)
