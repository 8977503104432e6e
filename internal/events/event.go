// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"fashionos_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// CRM Domain Events
// =============================================================================

// InteractionLogged is published when an interaction is recorded against a contact.
// The scoring module listens for this to trigger rescoring.
type InteractionLogged struct {
	BaseEvent
	InteractionID uuid.UUID `json:"interactionId"`
	ContactID     uuid.UUID `json:"contactId"`
	Type          string    `json:"type"`
	Direction     string    `json:"direction,omitempty"`
	Sentiment     string    `json:"sentiment,omitempty"`
}

func (e InteractionLogged) EventName() string { return "crm.interaction.logged" }

// ContactCreated is published when a new contact is created.
type ContactCreated struct {
	BaseEvent
	ContactID uuid.UUID  `json:"contactId"`
	AccountID *uuid.UUID `json:"accountId,omitempty"`
	CreatedBy uuid.UUID  `json:"createdBy"`
}

func (e ContactCreated) EventName() string { return "crm.contact.created" }

// =============================================================================
// Scoring Domain Events
// =============================================================================

// ContactScored is published after a scoring run persists a new lead score.
type ContactScored struct {
	BaseEvent
	ContactID     uuid.UUID `json:"contactId"`
	Score         int       `json:"score"`
	PreviousScore int       `json:"previousScore"`
	ScoreChange   int       `json:"scoreChange"`
	Interactions  int       `json:"interactions"`
}

func (e ContactScored) EventName() string { return "scoring.contact.scored" }

// =============================================================================
// Event Planning Domain Events
// =============================================================================

// PlanningUpdated is published when an event's planning record changes in a
// way coordinators should hear about.
type PlanningUpdated struct {
	BaseEvent
	EventID    uuid.UUID `json:"eventId"`
	UpdateType string    `json:"updateType"`
	ActorID    uuid.UUID `json:"actorId"`
}

func (e PlanningUpdated) EventName() string { return "planning.updated" }

// =============================================================================
// Notification Domain Events
// =============================================================================

// NotificationOutboxDue is published by the scheduler when a notification outbox
// record should be processed.
type NotificationOutboxDue struct {
	BaseEvent
	OutboxID uuid.UUID `json:"outboxId"`
}

func (e NotificationOutboxDue) EventName() string { return "notification.outbox.due" }
