package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered identity. A user is also a channel:
// other users subscribe to it by ID.
//
// RefreshToken is the single source of truth for refresh-token validity.
// It is overwritten on every issued token pair and cleared on logout; a
// structurally valid refresh token that does not match it is invalid.
type User struct {
	ID             uuid.UUID
	Username       string
	Email          string
	FullName       string
	HashedPassword string
	RefreshToken   string
	AvatarURL      string
	CoverURL       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

var (
	ErrEmptyUsername   = errors.New("username cannot be empty")
	ErrUsernameTooLong = errors.New("username exceeds maximum length of 64 characters")
	ErrInvalidEmail    = errors.New("email is not valid")
	ErrEmptyFullName   = errors.New("full name cannot be empty")
)

const maxUsernameLength = 64

// NewUser creates a new User. The username is case-normalized; the caller
// provides an already-hashed password.
func NewUser(username, email, fullName, hashedPassword string) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if len(username) > maxUsernameLength {
		return nil, ErrUsernameTooLong
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, ErrEmptyFullName
	}

	now := time.Now()
	return &User{
		ID:             uuid.New(),
		Username:       username,
		Email:          email,
		FullName:       fullName,
		HashedPassword: hashedPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// ChannelProfile is the public view of a user as a channel, including the
// subscription aggregates derived per request.
type ChannelProfile struct {
	ID                uuid.UUID
	Username          string
	FullName          string
	AvatarURL         string
	CoverURL          string
	SubscriberCount   int64
	SubscribedToCount int64
	ViewerSubscribed  bool
}
