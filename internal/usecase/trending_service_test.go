package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/viewly-dev/viewly/internal/domain/model"
)

// mockTrendingSource provides a configurable mock for TrendingSource.
type mockTrendingSource struct {
	topFn func(ctx context.Context, kind model.Kind, day time.Time, n int64) ([]uuid.UUID, error)
}

func (m *mockTrendingSource) Top(ctx context.Context, kind model.Kind, day time.Time, n int64) ([]uuid.UUID, error) {
	if m.topFn != nil {
		return m.topFn(ctx, kind, day, n)
	}
	return nil, nil
}

func TestTrendingService_Top(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	tests := []struct {
		name      string
		kind      model.Kind
		limit     int64
		wantLimit int64
		wantErr   error
	}{
		{
			name:      "explicit limit passes through",
			kind:      model.KindVideoLike,
			limit:     25,
			wantLimit: 25,
		},
		{
			name:      "zero limit defaults",
			kind:      model.KindSubscription,
			limit:     0,
			wantLimit: 10,
		},
		{
			name:      "negative limit defaults",
			kind:      model.KindTweetLike,
			limit:     -3,
			wantLimit: 10,
		},
		{
			name:      "oversized limit clamps",
			kind:      model.KindCommentLike,
			limit:     500,
			wantLimit: 50,
		},
		{
			name:    "unknown kind rejected",
			kind:    model.Kind("FOLLOW"),
			limit:   10,
			wantErr: model.ErrInvalidKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sourceCalled := false
			source := &mockTrendingSource{
				topFn: func(ctx context.Context, kind model.Kind, d time.Time, n int64) ([]uuid.UUID, error) {
					sourceCalled = true
					if kind != tt.kind {
						t.Errorf("expected kind %s, got %s", tt.kind, kind)
					}
					if !d.Equal(day) {
						t.Errorf("expected day %s, got %s", day, d)
					}
					if n != tt.wantLimit {
						t.Errorf("expected limit %d, got %d", tt.wantLimit, n)
					}
					return ids, nil
				},
			}

			svc := NewTrendingService(source)
			got, err := svc.Top(context.Background(), tt.kind, day, tt.limit)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if sourceCalled {
					t.Error("source must not be queried for an invalid kind")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(ids) {
				t.Errorf("expected %d ids, got %d", len(ids), len(got))
			}
		})
	}
}

func TestTrendingService_Top_SourceError(t *testing.T) {
	source := &mockTrendingSource{
		topFn: func(ctx context.Context, kind model.Kind, d time.Time, n int64) ([]uuid.UUID, error) {
			return nil, errors.New("redis down")
		},
	}

	svc := NewTrendingService(source)
	if _, err := svc.Top(context.Background(), model.KindVideoLike, time.Now(), 10); err == nil {
		t.Fatal("expected error")
	}
}
