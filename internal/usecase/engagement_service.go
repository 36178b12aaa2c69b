package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/viewly-dev/viewly/internal/domain/model"
	"github.com/viewly-dev/viewly/internal/domain/repository"
	"github.com/viewly-dev/viewly/internal/infrastructure/metrics"
)

// ToggleResult reports the relationship state after a toggle.
type ToggleResult struct {
	Active bool
}

// EngagementService exposes the idempotent toggle over engagement records.
type EngagementService interface {
	// Toggle flips the presence of the (userID, targetID, kind) record and
	// returns the resulting state. Edge-triggered: there is no desired-state
	// parameter. Two concurrent toggles of the same tuple leave exactly one
	// well-defined state behind and each caller gets a coherent result.
	Toggle(ctx context.Context, userID, targetID uuid.UUID, kind model.Kind) (*ToggleResult, error)

	// Stats returns the viewer-relative aggregate for a target.
	// viewerID may be uuid.Nil for anonymous reads.
	Stats(ctx context.Context, targetID uuid.UUID, kind model.Kind, viewerID uuid.UUID) (*model.EngagementStats, error)
}

type engagementService struct {
	engagements repository.EngagementRepository
	events      repository.EventQueue
}

// NewEngagementService creates a new EngagementService instance.
func NewEngagementService(engagements repository.EngagementRepository, events repository.EventQueue) EngagementService {
	return &engagementService{
		engagements: engagements,
		events:      events,
	}
}

// Toggle removes the record if present, otherwise creates it. Both arms
// lean on the store: removal is an atomic find-and-delete, creation relies
// on the compound uniqueness constraint. A duplicate-insert race therefore
// resolves to "already active" instead of surfacing a conflict.
func (s *engagementService) Toggle(ctx context.Context, userID, targetID uuid.UUID, kind model.Kind) (*ToggleResult, error) {
	engagement, err := model.NewEngagement(userID, targetID, kind)
	if err != nil {
		return nil, err
	}

	deleted, err := s.engagements.DeleteOne(ctx, userID, targetID, kind)
	if err != nil {
		return nil, fmt.Errorf("toggle off: %w", err)
	}
	if deleted {
		metrics.EngagementTogglesTotal.WithLabelValues(kind.String(), metrics.ToggleDeactivated).Inc()
		s.publish(ctx, userID, targetID, kind, false)
		return &ToggleResult{Active: false}, nil
	}

	if err := s.engagements.Create(ctx, engagement); err != nil {
		if errors.Is(err, repository.ErrDuplicateEngagement) {
			// A concurrent toggle won the insert. The record exists, which
			// is the state this caller was driving toward.
			metrics.EngagementTogglesTotal.WithLabelValues(kind.String(), metrics.ToggleAlreadyActive).Inc()
			return &ToggleResult{Active: true}, nil
		}
		return nil, fmt.Errorf("toggle on: %w", err)
	}

	metrics.EngagementTogglesTotal.WithLabelValues(kind.String(), metrics.ToggleActivated).Inc()
	s.publish(ctx, userID, targetID, kind, true)
	return &ToggleResult{Active: true}, nil
}

// Stats returns the viewer-relative aggregate for a target.
func (s *engagementService) Stats(ctx context.Context, targetID uuid.UUID, kind model.Kind, viewerID uuid.UUID) (*model.EngagementStats, error) {
	if targetID == uuid.Nil {
		return nil, model.ErrInvalidTarget
	}
	if !kind.IsValid() {
		return nil, model.ErrInvalidKind
	}
	return s.engagements.StatsByTarget(ctx, targetID, kind, viewerID)
}

// publish emits the engagement event. Best-effort: the toggle has already
// committed, so a publish failure is logged and swallowed.
func (s *engagementService) publish(ctx context.Context, userID, targetID uuid.UUID, kind model.Kind, active bool) {
	event := repository.EngagementEvent{
		UserID:     userID,
		TargetID:   targetID,
		Kind:       kind,
		Active:     active,
		OccurredAt: time.Now(),
	}

	if err := s.events.PublishEngagement(ctx, event); err != nil {
		slog.Warn("failed to publish engagement event",
			"target_id", targetID,
			"kind", kind.String(),
			"error", err,
		)
	}
}
