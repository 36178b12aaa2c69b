package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/viewly-dev/viewly/internal/auth"
	"github.com/viewly-dev/viewly/internal/domain/model"
	"github.com/viewly-dev/viewly/internal/domain/repository"
)

var (
	// ErrInvalidCredentials is returned on login failure. It never reveals
	// whether the login handle or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned for every token failure: missing,
	// expired, malformed, or superseded. The causes are deliberately not
	// distinguished to callers.
	ErrUnauthorized = errors.New("unauthorized")
)

// TokenPair is the access/refresh pair returned by login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterInput contains the input parameters for registering a user.
type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
}

// AuthService defines the identity and session-token business logic.
type AuthService interface {
	// Register creates a new user with a hashed password.
	Register(ctx context.Context, input RegisterInput) (*model.User, error)

	// Login checks credentials and issues a fresh token pair. The new
	// refresh token overwrites any previously stored one.
	Login(ctx context.Context, login, password string) (*model.User, *TokenPair, error)

	// Refresh rotates the token pair. The presented refresh token must
	// byte-for-byte match the stored one; rotation permanently invalidates
	// it whether or not the caller receives the new pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// Logout clears the stored refresh token. Idempotent.
	Logout(ctx context.Context, userID uuid.UUID) error

	// ChangePassword verifies the old password and stores a new hash.
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error

	// ValidateAccess verifies an access token and returns the user ID it
	// asserts. Every failure is ErrUnauthorized.
	ValidateAccess(token string) (uuid.UUID, error)

	// CurrentUser loads the user behind an authenticated request.
	CurrentUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

// AuthServiceConfig holds token signing configuration.
type AuthServiceConfig struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

type authService struct {
	users repository.UserRepository

	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(users repository.UserRepository, cfg AuthServiceConfig) AuthService {
	return &authService{
		users:         users,
		accessSecret:  cfg.AccessTokenSecret,
		refreshSecret: cfg.RefreshTokenSecret,
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := model.NewUser(input.Username, input.Email, input.FullName, string(hashed))
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login checks credentials and issues a fresh token pair.
// A missing user and a wrong password are reported identically.
func (s *authService) Login(ctx context.Context, login, password string) (*model.User, *TokenPair, error) {
	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("load user: %w", err)
	}

	// bcrypt comparison is constant-time over the hash.
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.users.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, nil, fmt.Errorf("persist refresh token: %w", err)
	}

	return user, pair, nil
}

// Refresh rotates the token pair. The stored-token comparison and the
// overwrite happen in a single conditional update at the store, so a
// superseded token can never rotate again even under concurrent calls.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := auth.Parse(refreshToken, auth.KindRefresh, s.refreshSecret)
	if err != nil {
		return nil, ErrUnauthorized
	}

	pair, err := s.issuePair(userID)
	if err != nil {
		return nil, err
	}

	err = s.users.SwapRefreshToken(ctx, userID, refreshToken, pair.RefreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenMismatch) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}

	return pair, nil
}

// Logout clears the stored refresh token. Clearing an already-cleared
// user succeeds silently.
func (s *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.ClearRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}

// ChangePassword verifies the old password and stores a new hash.
func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

// ValidateAccess verifies an access token and returns the asserted user ID.
func (s *authService) ValidateAccess(token string) (uuid.UUID, error) {
	userID, err := auth.Parse(token, auth.KindAccess, s.accessSecret)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return userID, nil
}

// CurrentUser loads the user behind an authenticated request.
func (s *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

// issuePair mints both tokens. Persistence of the refresh token is the
// caller's concern: login overwrites unconditionally, refresh swaps with
// an equality precondition.
func (s *authService) issuePair(userID uuid.UUID) (*TokenPair, error) {
	access, err := auth.Generate(userID, auth.KindAccess, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("mint access token: %w", err)
	}

	refresh, err := auth.Generate(userID, auth.KindRefresh, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("mint refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
