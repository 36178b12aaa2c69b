package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/viewly-dev/viewly/internal/domain/model"
	"github.com/viewly-dev/viewly/internal/domain/repository"
)

// mockUserRepository provides a configurable mock for UserRepository.
type mockUserRepository struct {
	createFn            func(ctx context.Context, user *model.User) error
	getByIDFn           func(ctx context.Context, id uuid.UUID) (*model.User, error)
	getByLoginFn        func(ctx context.Context, login string) (*model.User, error)
	setRefreshTokenFn   func(ctx context.Context, id uuid.UUID, token string) error
	swapRefreshTokenFn  func(ctx context.Context, id uuid.UUID, current, next string) error
	clearRefreshTokenFn func(ctx context.Context, id uuid.UUID) error
	updatePasswordFn    func(ctx context.Context, id uuid.UUID, hashedPassword string) error
	updateDetailsFn     func(ctx context.Context, user *model.User) error
	getChannelProfileFn func(ctx context.Context, username string, viewerID uuid.UUID) (*model.ChannelProfile, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if m.getByLoginFn != nil {
		return m.getByLoginFn(ctx, login)
	}
	return nil, nil
}

func (m *mockUserRepository) SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	if m.setRefreshTokenFn != nil {
		return m.setRefreshTokenFn(ctx, id, token)
	}
	return nil
}

func (m *mockUserRepository) SwapRefreshToken(ctx context.Context, id uuid.UUID, current, next string) error {
	if m.swapRefreshTokenFn != nil {
		return m.swapRefreshTokenFn(ctx, id, current, next)
	}
	return nil
}

func (m *mockUserRepository) ClearRefreshToken(ctx context.Context, id uuid.UUID) error {
	if m.clearRefreshTokenFn != nil {
		return m.clearRefreshTokenFn(ctx, id)
	}
	return nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, id, hashedPassword)
	}
	return nil
}

func (m *mockUserRepository) UpdateDetails(ctx context.Context, user *model.User) error {
	if m.updateDetailsFn != nil {
		return m.updateDetailsFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*model.ChannelProfile, error) {
	if m.getChannelProfileFn != nil {
		return m.getChannelProfileFn(ctx, username, viewerID)
	}
	return nil, nil
}

// mockEngagementRepository provides a configurable mock for EngagementRepository.
type mockEngagementRepository struct {
	createFn        func(ctx context.Context, e *model.Engagement) error
	deleteOneFn     func(ctx context.Context, userID, targetID uuid.UUID, kind model.Kind) (bool, error)
	countByTargetFn func(ctx context.Context, targetID uuid.UUID, kind model.Kind) (int64, error)
	existsFn        func(ctx context.Context, userID, targetID uuid.UUID, kind model.Kind) (bool, error)
	statsByTargetFn func(ctx context.Context, targetID uuid.UUID, kind model.Kind, viewerID uuid.UUID) (*model.EngagementStats, error)
	channelStatsFn  func(ctx context.Context, channelID, viewerID uuid.UUID) (*model.ChannelStats, error)
}

func (m *mockEngagementRepository) Create(ctx context.Context, e *model.Engagement) error {
	if m.createFn != nil {
		return m.createFn(ctx, e)
	}
	return nil
}

func (m *mockEngagementRepository) DeleteOne(ctx context.Context, userID, targetID uuid.UUID, kind model.Kind) (bool, error) {
	if m.deleteOneFn != nil {
		return m.deleteOneFn(ctx, userID, targetID, kind)
	}
	return false, nil
}

func (m *mockEngagementRepository) CountByTarget(ctx context.Context, targetID uuid.UUID, kind model.Kind) (int64, error) {
	if m.countByTargetFn != nil {
		return m.countByTargetFn(ctx, targetID, kind)
	}
	return 0, nil
}

func (m *mockEngagementRepository) Exists(ctx context.Context, userID, targetID uuid.UUID, kind model.Kind) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, userID, targetID, kind)
	}
	return false, nil
}

func (m *mockEngagementRepository) StatsByTarget(ctx context.Context, targetID uuid.UUID, kind model.Kind, viewerID uuid.UUID) (*model.EngagementStats, error) {
	if m.statsByTargetFn != nil {
		return m.statsByTargetFn(ctx, targetID, kind, viewerID)
	}
	return &model.EngagementStats{}, nil
}

func (m *mockEngagementRepository) ChannelStats(ctx context.Context, channelID, viewerID uuid.UUID) (*model.ChannelStats, error) {
	if m.channelStatsFn != nil {
		return m.channelStatsFn(ctx, channelID, viewerID)
	}
	return &model.ChannelStats{}, nil
}

// mockVideoRepository provides a configurable mock for VideoRepository.
type mockVideoRepository struct {
	createFn       func(ctx context.Context, video *model.Video) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*model.Video, error)
	getViewStatsFn func(ctx context.Context, videoID, ownerID, viewerID uuid.UUID) (*repository.VideoViewStats, error)
	getByOwnerIDFn func(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error)
	deleteFn       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockVideoRepository) Create(ctx context.Context, video *model.Video) error {
	if m.createFn != nil {
		return m.createFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockVideoRepository) GetViewStats(ctx context.Context, videoID, ownerID, viewerID uuid.UUID) (*repository.VideoViewStats, error) {
	if m.getViewStatsFn != nil {
		return m.getViewStatsFn(ctx, videoID, ownerID, viewerID)
	}
	return &repository.VideoViewStats{}, nil
}

func (m *mockVideoRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error) {
	if m.getByOwnerIDFn != nil {
		return m.getByOwnerIDFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockVideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockCommentRepository provides a configurable mock for CommentRepository.
type mockCommentRepository struct {
	createFn        func(ctx context.Context, comment *model.Comment) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	listByVideoFn   func(ctx context.Context, videoID, viewerID uuid.UUID) ([]*model.CommentView, error)
	updateContentFn func(ctx context.Context, id uuid.UUID, content string) error
	deleteFn        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockCommentRepository) ListByVideo(ctx context.Context, videoID, viewerID uuid.UUID) ([]*model.CommentView, error) {
	if m.listByVideoFn != nil {
		return m.listByVideoFn(ctx, videoID, viewerID)
	}
	return nil, nil
}

func (m *mockCommentRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	if m.updateContentFn != nil {
		return m.updateContentFn(ctx, id, content)
	}
	return nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockTweetRepository provides a configurable mock for TweetRepository.
type mockTweetRepository struct {
	createFn        func(ctx context.Context, tweet *model.Tweet) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*model.Tweet, error)
	listByOwnerFn   func(ctx context.Context, ownerID, viewerID uuid.UUID) ([]*model.TweetView, error)
	updateContentFn func(ctx context.Context, id uuid.UUID, content string) error
	deleteFn        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	if m.createFn != nil {
		return m.createFn(ctx, tweet)
	}
	return nil
}

func (m *mockTweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockTweetRepository) ListByOwner(ctx context.Context, ownerID, viewerID uuid.UUID) ([]*model.TweetView, error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, ownerID, viewerID)
	}
	return nil, nil
}

func (m *mockTweetRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	if m.updateContentFn != nil {
		return m.updateContentFn(ctx, id, content)
	}
	return nil
}

func (m *mockTweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockEventQueue provides a configurable mock for EventQueue.
type mockEventQueue struct {
	publishEngagementFn  func(ctx context.Context, event repository.EngagementEvent) error
	consumeEngagementsFn func(ctx context.Context, handler func(event repository.EngagementEvent) error) error
}

func (m *mockEventQueue) PublishEngagement(ctx context.Context, event repository.EngagementEvent) error {
	if m.publishEngagementFn != nil {
		return m.publishEngagementFn(ctx, event)
	}
	return nil
}

func (m *mockEventQueue) ConsumeEngagements(ctx context.Context, handler func(event repository.EngagementEvent) error) error {
	if m.consumeEngagementsFn != nil {
		return m.consumeEngagementsFn(ctx, handler)
	}
	return nil
}

func (m *mockEventQueue) Close() error {
	return nil
}

// mockMediaStorage provides a configurable mock for MediaStorage.
type mockMediaStorage struct {
	storeFn                        func(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*repository.MediaDescriptor, error)
	generatePresignedDownloadURLFn func(ctx context.Context, key string, expiry time.Duration) (string, error)
	deleteFn                       func(ctx context.Context, key string) error
	existsFn                       func(ctx context.Context, key string) (bool, error)
}

func (m *mockMediaStorage) Store(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*repository.MediaDescriptor, error) {
	if m.storeFn != nil {
		return m.storeFn(ctx, key, reader, size, contentType)
	}
	return &repository.MediaDescriptor{URL: "http://example.com/media"}, nil
}

func (m *mockMediaStorage) GeneratePresignedDownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if m.generatePresignedDownloadURLFn != nil {
		return m.generatePresignedDownloadURLFn(ctx, key, expiry)
	}
	return "http://example.com/download", nil
}

func (m *mockMediaStorage) Delete(ctx context.Context, key string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

func (m *mockMediaStorage) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}
