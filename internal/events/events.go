// Package events publishes enrollment lifecycle notifications to Kafka.
package events

import (
	"context"
	"time"

	"github.com/madhava-poojari/mentorship-api/internal/models"
)

const (
	EnrollmentCreated       = "enrollment.created"
	EnrollmentStatusChanged = "enrollment.status_changed"
	EnrollmentWithdrawn     = "enrollment.withdrawn"
)

type Event struct {
	Type           string                  `json:"type"`
	EnrollmentID   string                  `json:"enrollment_id"`
	UserID         string                  `json:"user_id"`
	ProgramID      string                  `json:"mentorship_program_id"`
	Status         models.EnrollmentStatus `json:"status,omitempty"`
	PreviousStatus models.EnrollmentStatus `json:"previous_status,omitempty"`
	ActorID        string                  `json:"actor_id"`
	OccurredAt     time.Time               `json:"occurred_at"`
}

// NewEnrollmentEvent fills the event from an enrollment as it is after the change.
func NewEnrollmentEvent(typ string, e *models.Enrollment, actorID string) Event {
	return Event{
		Type:         typ,
		EnrollmentID: e.ID,
		UserID:       e.UserID,
		ProgramID:    e.MentorshipProgramID,
		Status:       e.Status,
		ActorID:      actorID,
		OccurredAt:   time.Now().UTC(),
	}
}

// Publisher delivers events. All events passed to one Publish call are sent
// as a single batch.
type Publisher interface {
	Publish(ctx context.Context, evs ...Event) error
	Close() error
}

// Nop discards events. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, ...Event) error { return nil }
func (Nop) Close() error                         { return nil }
