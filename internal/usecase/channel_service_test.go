package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/viewly-dev/viewly/internal/domain/model"
	"github.com/viewly-dev/viewly/internal/domain/repository"
)

func TestChannelService_GetProfile(t *testing.T) {
	channelID := uuid.New()
	viewerID := uuid.New()

	tests := []struct {
		name      string
		username  string
		viewerID  uuid.UUID
		setupMock func(repo *mockUserRepository)
		wantErr   error
	}{
		{
			name:     "profile with viewer flag",
			username: "alice",
			viewerID: viewerID,
			setupMock: func(repo *mockUserRepository) {
				repo.getChannelProfileFn = func(ctx context.Context, username string, vID uuid.UUID) (*model.ChannelProfile, error) {
					if vID != viewerID {
						t.Errorf("expected viewer %s, got %s", viewerID, vID)
					}
					return &model.ChannelProfile{
						ID:               channelID,
						Username:         username,
						SubscriberCount:  12,
						ViewerSubscribed: true,
					}, nil
				}
			},
		},
		{
			name:     "anonymous viewer",
			username: "alice",
			viewerID: uuid.Nil,
			setupMock: func(repo *mockUserRepository) {
				repo.getChannelProfileFn = func(ctx context.Context, username string, vID uuid.UUID) (*model.ChannelProfile, error) {
					return &model.ChannelProfile{
						ID:              channelID,
						Username:        username,
						SubscriberCount: 12,
					}, nil
				}
			},
		},
		{
			name:      "blank username",
			username:  "   ",
			setupMock: func(repo *mockUserRepository) {},
			wantErr:   model.ErrEmptyUsername,
		},
		{
			name:     "unknown channel",
			username: "ghost",
			setupMock: func(repo *mockUserRepository) {
				repo.getChannelProfileFn = func(ctx context.Context, username string, vID uuid.UUID) (*model.ChannelProfile, error) {
					return nil, repository.ErrUserNotFound
				}
			},
			wantErr: repository.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepository{}
			tt.setupMock(repo)

			svc := NewChannelService(repo)
			profile, err := svc.GetProfile(context.Background(), tt.username, tt.viewerID)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if profile.ID != channelID {
				t.Errorf("expected channel %s, got %s", channelID, profile.ID)
			}
			if profile.ViewerSubscribed != (tt.viewerID != uuid.Nil) {
				t.Errorf("unexpected viewer flag: %v", profile.ViewerSubscribed)
			}
		})
	}
}

func TestChannelService_UpdateAccount(t *testing.T) {
	user := &model.User{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "old@example.com",
		FullName: "Old Name",
	}

	tests := []struct {
		name         string
		email        string
		fullName     string
		wantEmail    string
		wantFullName string
	}{
		{
			name:         "update both fields",
			email:        "new@example.com",
			fullName:     "New Name",
			wantEmail:    "new@example.com",
			wantFullName: "New Name",
		},
		{
			name:         "empty fields left unchanged",
			email:        "",
			fullName:     "",
			wantEmail:    "old@example.com",
			wantFullName: "Old Name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := *user
			repo := &mockUserRepository{
				getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.User, error) {
					return &current, nil
				},
			}

			svc := NewChannelService(repo)
			got, err := svc.UpdateAccount(context.Background(), user.ID, tt.email, tt.fullName)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Email != tt.wantEmail {
				t.Errorf("expected email %q, got %q", tt.wantEmail, got.Email)
			}
			if got.FullName != tt.wantFullName {
				t.Errorf("expected full name %q, got %q", tt.wantFullName, got.FullName)
			}
		})
	}
}
