// Package service implements event planning: fashion event lifecycle and
// coordinator roster management.
package service

import (
	"context"

	"github.com/google/uuid"

	"fashionos_backend/internal/eventplanning/repository"
	"fashionos_backend/internal/events"
	"fashionos_backend/platform/logger"
	"fashionos_backend/platform/sanitize"
)

// Planning update areas carried on planning.updated events. Each maps to
// the notification type the dispatch endpoint understands.
const (
	UpdateTypeVenue   = "venue_update"
	UpdateTypeVendor  = "vendor_update"
	UpdateTypeModel   = "model_update"
	UpdateTypeSponsor = "sponsor_update"
	UpdateTypeGeneral = "general_update"
)

// PlanningRepository is the persistence surface the planning service needs.
type PlanningRepository interface {
	CreateEvent(ctx context.Context, params repository.CreateEventParams) (repository.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (repository.Event, error)
	ListEvents(ctx context.Context, status string, limit, offset int) ([]repository.Event, int, error)
	UpdateEvent(ctx context.Context, params repository.UpdateEventParams) (repository.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	GetPlanning(ctx context.Context, eventID uuid.UUID) (repository.Planning, error)
	UpdatePlanning(ctx context.Context, params repository.UpdatePlanningParams) (repository.Planning, error)
}

// Service implements event planning use cases.
type Service struct {
	repo PlanningRepository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new event planning service.
func New(repo PlanningRepository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// CreateEvent persists a new event. The creating user becomes the lead
// organizer on the planning roster.
func (s *Service) CreateEvent(ctx context.Context, params repository.CreateEventParams, actorID uuid.UUID) (repository.Event, error) {
	params.Title = sanitize.Text(params.Title)
	params.Description = sanitize.TextPtr(params.Description)
	params.Venue = sanitize.TextPtr(params.Venue)
	params.CreatedBy = actorID
	params.LeadOrganizerID = actorID

	return s.repo.CreateEvent(ctx, params)
}

// GetEvent retrieves a single event.
func (s *Service) GetEvent(ctx context.Context, id uuid.UUID) (repository.Event, error) {
	return s.repo.GetEvent(ctx, id)
}

// ListEvents retrieves events with paging clamped to sane bounds.
func (s *Service) ListEvents(ctx context.Context, status string, limit, offset int) ([]repository.Event, int, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListEvents(ctx, status, limit, offset)
}

// UpdateEvent applies a partial update and publishes a general planning
// update so coordinators hear about it.
func (s *Service) UpdateEvent(ctx context.Context, params repository.UpdateEventParams, actorID uuid.UUID) (repository.Event, error) {
	params.Title = sanitize.TextPtr(params.Title)
	params.Description = sanitize.TextPtr(params.Description)
	params.Venue = sanitize.TextPtr(params.Venue)

	event, err := s.repo.UpdateEvent(ctx, params)
	if err != nil {
		return repository.Event{}, err
	}

	s.publishUpdate(ctx, event.ID, UpdateTypeGeneral, actorID)
	return event, nil
}

// DeleteEvent removes an event and its roster.
func (s *Service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteEvent(ctx, id)
}

// GetPlanning retrieves the coordinator roster for an event.
func (s *Service) GetPlanning(ctx context.Context, eventID uuid.UUID) (repository.Planning, error) {
	return s.repo.GetPlanning(ctx, eventID)
}

// UpdatePlanning reassigns coordinators and publishes one planning.updated
// event per changed area.
func (s *Service) UpdatePlanning(ctx context.Context, params repository.UpdatePlanningParams, actorID uuid.UUID) (repository.Planning, error) {
	planning, err := s.repo.UpdatePlanning(ctx, params)
	if err != nil {
		return repository.Planning{}, err
	}

	for _, change := range []struct {
		field      *uuid.UUID
		updateType string
	}{
		{params.VenueCoordinatorID, UpdateTypeVenue},
		{params.VendorManagerID, UpdateTypeVendor},
		{params.ModelCoordinatorID, UpdateTypeModel},
		{params.SponsorManagerID, UpdateTypeSponsor},
		{params.LeadOrganizerID, UpdateTypeGeneral},
	} {
		if change.field != nil {
			s.publishUpdate(ctx, planning.EventID, change.updateType, actorID)
		}
	}

	return planning, nil
}

func (s *Service) publishUpdate(ctx context.Context, eventID uuid.UUID, updateType string, actorID uuid.UUID) {
	s.bus.Publish(ctx, events.PlanningUpdated{
		BaseEvent:  events.NewBaseEvent(),
		EventID:    eventID,
		UpdateType: updateType,
		ActorID:    actorID,
	})
}
