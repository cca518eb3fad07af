package events

import (
	"time"

	"github.com/spec-kit/job-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventJobCreated               EventType = "job_created"
	EventJobUpdated               EventType = "job_updated"
	EventJobClosed                EventType = "job_closed"
	EventApplicationSubmitted     EventType = "application_submitted"
	EventApplicationStatusChanged EventType = "application_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	ResourceID string      `json:"resource_id"`
	ActorID    string      `json:"actor_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	JobID string `json:"job_id"`
}

// ApplicationStatusChangedPayload payload.
type ApplicationStatusChangedPayload struct {
	JobID     string                   `json:"job_id"`
	OldStatus domain.ApplicationStatus `json:"old_status"`
	NewStatus domain.ApplicationStatus `json:"new_status"`
}
