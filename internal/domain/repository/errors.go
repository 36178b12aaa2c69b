package repository

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUser is returned when the username or email is already taken.
	ErrDuplicateUser = errors.New("username or email already exists")

	// ErrVideoNotFound is returned when a video cannot be found.
	ErrVideoNotFound = errors.New("video not found")

	// ErrCommentNotFound is returned when a comment cannot be found.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrTweetNotFound is returned when a tweet cannot be found.
	ErrTweetNotFound = errors.New("tweet not found")

	// ErrDuplicateEngagement is returned when an engagement record already
	// exists for the (user, target, kind) tuple. Callers toggling state
	// treat this as "already active", not as a failure.
	ErrDuplicateEngagement = errors.New("engagement already exists")

	// ErrRefreshTokenMismatch is returned when a conditional refresh-token
	// swap matched no row: the stored token was superseded, cleared, or the
	// user no longer exists.
	ErrRefreshTokenMismatch = errors.New("stored refresh token does not match")
)
