// Package dispatch routes event planning notifications to the coordinator
// responsible for the changed area.
package dispatch

import (
	"context"

	"github.com/google/uuid"

	"fashionos_backend/internal/notification/inapp"
	"fashionos_backend/internal/notification/sse"
	"fashionos_backend/platform/logger"
)

// Notification types the dispatcher understands. Anything else falls through
// to the lead organizer.
const (
	TypeVenueUpdate   = "venue_update"
	TypeVendorUpdate  = "vendor_update"
	TypeModelUpdate   = "model_update"
	TypeSponsorUpdate = "sponsor_update"
)

// EventRoster is an event plus its planning coordinators.
type EventRoster struct {
	EventID            uuid.UUID
	Title              string
	LeadOrganizerID    *uuid.UUID
	VenueCoordinatorID *uuid.UUID
	VendorManagerID    *uuid.UUID
	ModelCoordinatorID *uuid.UUID
	SponsorManagerID   *uuid.UUID
}

// RosterReader loads an event with its planning roster.
type RosterReader interface {
	EventRoster(ctx context.Context, eventID uuid.UUID) (EventRoster, error)
}

// Notifier persists in-app notifications.
type Notifier interface {
	Create(ctx context.Context, params inapp.CreateParams) (inapp.Notification, error)
}

// Pusher delivers real-time events to connected users.
type Pusher interface {
	Publish(userID uuid.UUID, event sse.Event)
}

// Service resolves recipients and writes their notifications.
type Service struct {
	roster RosterReader
	inapp  Notifier
	push   Pusher
	log    *logger.Logger
}

// New creates a new dispatch service.
func New(roster RosterReader, notifier Notifier, push Pusher, log *logger.Logger) *Service {
	return &Service{roster: roster, inapp: notifier, push: push, log: log}
}

// Dispatch notifies the coordinator responsible for the given update type.
// Returns how many notifications were written; an unassigned coordinator
// slot means zero, which is still a success.
func (s *Service) Dispatch(ctx context.Context, eventID uuid.UUID, notificationType string) (int, error) {
	roster, err := s.roster.EventRoster(ctx, eventID)
	if err != nil {
		return 0, err
	}

	var recipient *uuid.UUID
	var message string
	switch notificationType {
	case TypeVenueUpdate:
		recipient = roster.VenueCoordinatorID
		message = "Venue booking has been updated"
	case TypeVendorUpdate:
		recipient = roster.VendorManagerID
		message = "Vendor service has been updated"
	case TypeModelUpdate:
		recipient = roster.ModelCoordinatorID
		message = "Model booking has been updated"
	case TypeSponsorUpdate:
		recipient = roster.SponsorManagerID
		message = "Sponsor information has been updated"
	default:
		recipient = roster.LeadOrganizerID
		message = "Event planning update"
	}

	if recipient == nil {
		return 0, nil
	}

	notification, err := s.inapp.Create(ctx, inapp.CreateParams{
		UserID:  *recipient,
		Type:    notificationType,
		Title:   "Update for " + roster.Title,
		Message: message,
		EventID: &roster.EventID,
	})
	if err != nil {
		return 0, err
	}

	if s.push != nil {
		s.push.Publish(*recipient, sse.Event{
			Type:    sse.EventNotification,
			Message: notification.Message,
			Data:    notification,
		})
	}

	return 1, nil
}
