package observability

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/job-tracker/internal/events"
)

// EventRecorder turns domain events into metrics and debug logs.
type EventRecorder struct {
	metrics *Metrics
	logger  *zap.Logger
}

// NewEventRecorder creates the recorder.
func NewEventRecorder(metrics *Metrics, logger *zap.Logger) *EventRecorder {
	return &EventRecorder{metrics: metrics, logger: logger}
}

// Register subscribes to every lifecycle event.
func (r *EventRecorder) Register(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventJobCreated,
		events.EventJobUpdated,
		events.EventJobClosed,
		events.EventApplicationSubmitted,
		events.EventApplicationStatusChanged,
	} {
		dispatcher.Subscribe(eventType, r.record)
	}
}

func (r *EventRecorder) record(_ context.Context, event events.Event) error {
	r.metrics.RecordEvent(string(event.Type))
	if payload, ok := event.Payload.(events.ApplicationStatusChangedPayload); ok {
		r.metrics.RecordDecision(string(payload.NewStatus))
	}
	r.logger.Debug("domain event",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("resource_id", event.ResourceID),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	return nil
}
