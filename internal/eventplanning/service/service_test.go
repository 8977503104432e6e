package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"fashionos_backend/internal/eventplanning/repository"
	"fashionos_backend/internal/events"
	"fashionos_backend/platform/apperr"
)

type fakeRepo struct {
	events   map[uuid.UUID]repository.Event
	planning map[uuid.UUID]repository.Planning
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		events:   make(map[uuid.UUID]repository.Event),
		planning: make(map[uuid.UUID]repository.Planning),
	}
}

func (f *fakeRepo) CreateEvent(_ context.Context, params repository.CreateEventParams) (repository.Event, error) {
	event := repository.Event{
		ID:        uuid.New(),
		Title:     params.Title,
		Status:    repository.EventStatusDraft,
		CreatedBy: params.CreatedBy,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.events[event.ID] = event
	lead := params.LeadOrganizerID
	f.planning[event.ID] = repository.Planning{
		ID:              uuid.New(),
		EventID:         event.ID,
		LeadOrganizerID: &lead,
	}
	return event, nil
}

func (f *fakeRepo) GetEvent(_ context.Context, id uuid.UUID) (repository.Event, error) {
	if e, ok := f.events[id]; ok {
		return e, nil
	}
	return repository.Event{}, apperr.NotFound("event not found")
}

func (f *fakeRepo) ListEvents(_ context.Context, _ string, _, _ int) ([]repository.Event, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) UpdateEvent(_ context.Context, params repository.UpdateEventParams) (repository.Event, error) {
	e, ok := f.events[params.ID]
	if !ok {
		return repository.Event{}, apperr.NotFound("event not found")
	}
	if params.Title != nil {
		e.Title = *params.Title
	}
	f.events[params.ID] = e
	return e, nil
}

func (f *fakeRepo) DeleteEvent(_ context.Context, id uuid.UUID) error {
	if _, ok := f.events[id]; !ok {
		return apperr.NotFound("event not found")
	}
	delete(f.events, id)
	return nil
}

func (f *fakeRepo) GetPlanning(_ context.Context, eventID uuid.UUID) (repository.Planning, error) {
	if p, ok := f.planning[eventID]; ok {
		return p, nil
	}
	return repository.Planning{}, apperr.NotFound("planning record not found")
}

func (f *fakeRepo) UpdatePlanning(_ context.Context, params repository.UpdatePlanningParams) (repository.Planning, error) {
	p, ok := f.planning[params.EventID]
	if !ok {
		return repository.Planning{}, apperr.NotFound("planning record not found")
	}
	if params.VenueCoordinatorID != nil {
		p.VenueCoordinatorID = params.VenueCoordinatorID
	}
	if params.SponsorManagerID != nil {
		p.SponsorManagerID = params.SponsorManagerID
	}
	f.planning[params.EventID] = p
	return p, nil
}

type captureBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *captureBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *captureBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *captureBus) Subscribe(string, events.Handler) {}

func (b *captureBus) planningUpdates() []events.PlanningUpdated {
	b.mu.Lock()
	defer b.mu.Unlock()
	var updates []events.PlanningUpdated
	for _, e := range b.events {
		if u, ok := e.(events.PlanningUpdated); ok {
			updates = append(updates, u)
		}
	}
	return updates
}

func TestUpdatePlanningPublishesChangedAreas(t *testing.T) {
	repo := newFakeRepo()
	bus := &captureBus{}
	svc := New(repo, bus, nil)
	actor := uuid.New()

	event, err := svc.CreateEvent(context.Background(), repository.CreateEventParams{
		Title: "Paris Runway Week",
	}, actor)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	venueCoord := uuid.New()
	sponsorMgr := uuid.New()
	_, err = svc.UpdatePlanning(context.Background(), repository.UpdatePlanningParams{
		EventID:            event.ID,
		VenueCoordinatorID: &venueCoord,
		SponsorManagerID:   &sponsorMgr,
	}, actor)
	if err != nil {
		t.Fatalf("UpdatePlanning: %v", err)
	}

	updates := bus.planningUpdates()
	if len(updates) != 2 {
		t.Fatalf("published %d planning updates, want 2", len(updates))
	}
	types := map[string]bool{}
	for _, u := range updates {
		types[u.UpdateType] = true
		if u.EventID != event.ID {
			t.Errorf("event id = %s, want %s", u.EventID, event.ID)
		}
		if u.ActorID != actor {
			t.Errorf("actor = %s, want %s", u.ActorID, actor)
		}
	}
	if !types[UpdateTypeVenue] || !types[UpdateTypeSponsor] {
		t.Errorf("update types = %v, want venue and sponsor", types)
	}
}

func TestUpdateEventPublishesGeneralUpdate(t *testing.T) {
	repo := newFakeRepo()
	bus := &captureBus{}
	svc := New(repo, bus, nil)
	actor := uuid.New()

	event, err := svc.CreateEvent(context.Background(), repository.CreateEventParams{
		Title: "Milan Showcase",
	}, actor)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	newTitle := "Milan Showcase 2026"
	if _, err := svc.UpdateEvent(context.Background(), repository.UpdateEventParams{
		ID:    event.ID,
		Title: &newTitle,
	}, actor); err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}

	updates := bus.planningUpdates()
	if len(updates) != 1 {
		t.Fatalf("published %d planning updates, want 1", len(updates))
	}
	if updates[0].UpdateType != UpdateTypeGeneral {
		t.Errorf("update type = %q, want %q", updates[0].UpdateType, UpdateTypeGeneral)
	}
}

func TestUpdatePlanningMissingEvent(t *testing.T) {
	svc := New(newFakeRepo(), &captureBus{}, nil)

	coord := uuid.New()
	_, err := svc.UpdatePlanning(context.Background(), repository.UpdatePlanningParams{
		EventID:            uuid.New(),
		VenueCoordinatorID: &coord,
	}, uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
