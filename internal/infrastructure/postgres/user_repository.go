package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/viewly-dev/viewly/internal/domain/model"
	"github.com/viewly-dev/viewly/internal/domain/repository"
	"github.com/viewly-dev/viewly/internal/infrastructure/metrics"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
//
// The users table carries refresh_token as a nullable column; it is the
// only server-side session state. SwapRefreshToken relies on the equality
// precondition inside a single UPDATE so rotation is race-free without
// in-process locks.
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user entity.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	const query = `
		INSERT INTO users (id, username, email, full_name, hashed_password, avatar_url, cover_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryInsert, metrics.TableUsers).Inc()

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FullName,
		user.HashedPassword,
		nullString(user.AvatarURL),
		nullString(user.CoverURL),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicateUser
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by its unique identifier.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	const query = `
		SELECT id, username, email, full_name, hashed_password, refresh_token, avatar_url, cover_url, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableUsers).Inc()

	user, err := r.scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetByLogin retrieves a user by username or email.
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `
		SELECT id, username, email, full_name, hashed_password, refresh_token, avatar_url, cover_url, created_at, updated_at
		FROM users
		WHERE username = lower($1) OR email = $1
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableUsers).Inc()

	user, err := r.scanUser(r.db.QueryRow(ctx, query, login))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by login: %w", err)
	}

	return user, nil
}

// SetRefreshToken unconditionally overwrites the stored refresh token.
func (r *UserRepository) SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	const query = `
		UPDATE users
		SET refresh_token = $2, updated_at = $3
		WHERE id = $1
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryUpdate, metrics.TableUsers).Inc()

	tag, err := r.db.Exec(ctx, query, id, token, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set refresh token: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// SwapRefreshToken replaces the stored refresh token only if it currently
// equals current. The equality check is part of the UPDATE's WHERE clause,
// so of two concurrent rotations presenting the same predecessor exactly
// one can match the row.
func (r *UserRepository) SwapRefreshToken(ctx context.Context, id uuid.UUID, current, next string) error {
	const query = `
		UPDATE users
		SET refresh_token = $3, updated_at = $4
		WHERE id = $1 AND refresh_token = $2
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryUpdate, metrics.TableUsers).Inc()

	tag, err := r.db.Exec(ctx, query, id, current, next, time.Now())
	if err != nil {
		return fmt.Errorf("failed to swap refresh token: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrRefreshTokenMismatch
	}

	return nil
}

// ClearRefreshToken removes the stored refresh token. Idempotent: a user
// with no stored token, or no user at all, is not an error.
func (r *UserRepository) ClearRefreshToken(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE users
		SET refresh_token = NULL, updated_at = $2
		WHERE id = $1
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryUpdate, metrics.TableUsers).Inc()

	if _, err := r.db.Exec(ctx, query, id, time.Now()); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}

	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	const query = `
		UPDATE users
		SET hashed_password = $2, updated_at = $3
		WHERE id = $1
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryUpdate, metrics.TableUsers).Inc()

	tag, err := r.db.Exec(ctx, query, id, hashedPassword, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// UpdateDetails updates the mutable profile fields.
func (r *UserRepository) UpdateDetails(ctx context.Context, user *model.User) error {
	const query = `
		UPDATE users
		SET email = $2, full_name = $3, avatar_url = $4, cover_url = $5, updated_at = $6
		WHERE id = $1
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryUpdate, metrics.TableUsers).Inc()

	user.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.FullName,
		nullString(user.AvatarURL),
		nullString(user.CoverURL),
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update user details: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// GetChannelProfile retrieves the public channel view for a username with
// subscription aggregates computed in a single statement. The counts and
// the viewer flag come from correlated subqueries over engagements, the
// relational equivalent of the lookup-then-size join the read path needs.
func (r *UserRepository) GetChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*model.ChannelProfile, error) {
	const query = `
		SELECT
			u.id,
			u.username,
			u.full_name,
			u.avatar_url,
			u.cover_url,
			(SELECT count(*) FROM engagements e
				WHERE e.target_id = u.id AND e.kind = $3) AS subscriber_count,
			(SELECT count(*) FROM engagements e
				WHERE e.user_id = u.id AND e.kind = $3) AS subscribed_to_count,
			EXISTS (SELECT 1 FROM engagements e
				WHERE e.target_id = u.id AND e.user_id = $2 AND e.kind = $3) AS viewer_subscribed
		FROM users u
		WHERE u.username = lower($1)
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableUsers).Inc()

	var (
		profile   model.ChannelProfile
		avatarURL *string
		coverURL  *string
	)

	err := r.db.QueryRow(ctx, query, username, viewerID, model.KindSubscription.String()).Scan(
		&profile.ID,
		&profile.Username,
		&profile.FullName,
		&avatarURL,
		&coverURL,
		&profile.SubscriberCount,
		&profile.SubscribedToCount,
		&profile.ViewerSubscribed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get channel profile: %w", err)
	}

	if avatarURL != nil {
		profile.AvatarURL = *avatarURL
	}
	if coverURL != nil {
		profile.CoverURL = *coverURL
	}

	return &profile, nil
}

// scanUser scans a single row into a User model.
func (r *UserRepository) scanUser(row pgx.Row) (*model.User, error) {
	var (
		user         model.User
		refreshToken *string
		avatarURL    *string
		coverURL     *string
	)

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.HashedPassword,
		&refreshToken,
		&avatarURL,
		&coverURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if refreshToken != nil {
		user.RefreshToken = *refreshToken
	}
	if avatarURL != nil {
		user.AvatarURL = *avatarURL
	}
	if coverURL != nil {
		user.CoverURL = *coverURL
	}

	return &user, nil
}

// nullString returns nil for empty strings, otherwise returns a pointer to the string.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Compile-time verification that UserRepository implements repository.UserRepository.
var _ repository.UserRepository = (*UserRepository)(nil)
