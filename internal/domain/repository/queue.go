package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/viewly-dev/viewly/internal/domain/model"
)

// EngagementEvent is published after every successful toggle so downstream
// consumers (trending counters, notifications) can react without being on
// the request path.
type EngagementEvent struct {
	UserID     uuid.UUID  `json:"user_id"`
	TargetID   uuid.UUID  `json:"target_id"`
	Kind       model.Kind `json:"kind"`
	Active     bool       `json:"active"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// EventQueue defines the interface for the engagement event stream.
// Implementations should be provided by the infrastructure layer (e.g., RabbitMQ).
type EventQueue interface {
	// PublishEngagement sends an engagement event to the queue.
	// Used by the API server after a toggle commits.
	PublishEngagement(ctx context.Context, event EngagementEvent) error

	// ConsumeEngagements starts consuming engagement events from the queue.
	// The handler function is called for each received event.
	// Used by the worker service.
	ConsumeEngagements(ctx context.Context, handler func(event EngagementEvent) error) error

	// Close gracefully closes the connection to the message queue.
	Close() error
}
