// Package transport defines request/response DTOs for the event planning API.
package transport

import (
	"time"

	"github.com/google/uuid"

	"fashionos_backend/internal/eventplanning/repository"
)

// CreateEventRequest is the payload for creating an event.
type CreateEventRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	EventDate   *string `json:"event_date,omitempty"`
	Venue       *string `json:"venue,omitempty" validate:"omitempty,max=200"`
}

// UpdateEventRequest is the payload for a partial event update.
type UpdateEventRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	EventDate   *string `json:"event_date,omitempty"`
	Venue       *string `json:"venue,omitempty" validate:"omitempty,max=200"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=draft planning confirmed completed cancelled"`
}

// UpdatePlanningRequest reassigns coordinator roles on an event.
type UpdatePlanningRequest struct {
	LeadOrganizerID    *string `json:"lead_organizer_id,omitempty" validate:"omitempty,uuid"`
	VenueCoordinatorID *string `json:"venue_coordinator_id,omitempty" validate:"omitempty,uuid"`
	VendorManagerID    *string `json:"vendor_manager_id,omitempty" validate:"omitempty,uuid"`
	ModelCoordinatorID *string `json:"model_coordinator_id,omitempty" validate:"omitempty,uuid"`
	SponsorManagerID   *string `json:"sponsor_manager_id,omitempty" validate:"omitempty,uuid"`
}

// EventResponse represents an event in API responses.
type EventResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	EventDate   *string   `json:"event_date,omitempty"`
	Venue       *string   `json:"venue,omitempty"`
	Status      string    `json:"status"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

// EventListResponse is a paged list of events.
type EventListResponse struct {
	Items []EventResponse `json:"items"`
	Total int             `json:"total"`
}

// PlanningResponse represents a coordinator roster in API responses.
type PlanningResponse struct {
	ID                 uuid.UUID  `json:"id"`
	EventID            uuid.UUID  `json:"event_id"`
	LeadOrganizerID    *uuid.UUID `json:"lead_organizer_id,omitempty"`
	VenueCoordinatorID *uuid.UUID `json:"venue_coordinator_id,omitempty"`
	VendorManagerID    *uuid.UUID `json:"vendor_manager_id,omitempty"`
	ModelCoordinatorID *uuid.UUID `json:"model_coordinator_id,omitempty"`
	SponsorManagerID   *uuid.UUID `json:"sponsor_manager_id,omitempty"`
	UpdatedAt          string     `json:"updated_at"`
}

// FromEvent maps a repository event to its response shape.
func FromEvent(e repository.Event) EventResponse {
	resp := EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Venue:       e.Venue,
		Status:      e.Status,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if e.EventDate != nil {
		formatted := e.EventDate.UTC().Format(time.RFC3339)
		resp.EventDate = &formatted
	}
	return resp
}

// FromPlanning maps a repository planning row to its response shape.
func FromPlanning(p repository.Planning) PlanningResponse {
	return PlanningResponse{
		ID:                 p.ID,
		EventID:            p.EventID,
		LeadOrganizerID:    p.LeadOrganizerID,
		VenueCoordinatorID: p.VenueCoordinatorID,
		VendorManagerID:    p.VendorManagerID,
		ModelCoordinatorID: p.ModelCoordinatorID,
		SponsorManagerID:   p.SponsorManagerID,
		UpdatedAt:          p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
