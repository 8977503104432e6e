package dispatch

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"fashionos_backend/internal/notification/inapp"
	"fashionos_backend/internal/notification/sse"
	"fashionos_backend/platform/apperr"
)

type fakeRoster struct {
	rosters map[uuid.UUID]EventRoster
}

func (f *fakeRoster) EventRoster(_ context.Context, eventID uuid.UUID) (EventRoster, error) {
	if r, ok := f.rosters[eventID]; ok {
		return r, nil
	}
	return EventRoster{}, apperr.NotFound("event not found")
}

type fakeNotifier struct {
	created []inapp.CreateParams
}

func (f *fakeNotifier) Create(_ context.Context, params inapp.CreateParams) (inapp.Notification, error) {
	f.created = append(f.created, params)
	return inapp.Notification{
		ID:      uuid.New(),
		UserID:  params.UserID,
		Type:    params.Type,
		Title:   params.Title,
		Message: params.Message,
		EventID: params.EventID,
	}, nil
}

type fakePusher struct {
	pushed map[uuid.UUID][]sse.Event
}

func (f *fakePusher) Publish(userID uuid.UUID, event sse.Event) {
	if f.pushed == nil {
		f.pushed = make(map[uuid.UUID][]sse.Event)
	}
	f.pushed[userID] = append(f.pushed[userID], event)
}

func TestDispatchRoutesToResponsibleCoordinator(t *testing.T) {
	eventID := uuid.New()
	lead := uuid.New()
	venueCoord := uuid.New()
	sponsorMgr := uuid.New()

	roster := &fakeRoster{rosters: map[uuid.UUID]EventRoster{
		eventID: {
			EventID:            eventID,
			Title:              "Couture Gala",
			LeadOrganizerID:    &lead,
			VenueCoordinatorID: &venueCoord,
			SponsorManagerID:   &sponsorMgr,
		},
	}}

	tests := []struct {
		name          string
		typ           string
		wantRecipient uuid.UUID
		wantMessage   string
	}{
		{"venue update", TypeVenueUpdate, venueCoord, "Venue booking has been updated"},
		{"sponsor update", TypeSponsorUpdate, sponsorMgr, "Sponsor information has been updated"},
		{"unknown type falls back to lead", "timeline_update", lead, "Event planning update"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &fakeNotifier{}
			pusher := &fakePusher{}
			svc := New(roster, notifier, pusher, nil)

			sent, err := svc.Dispatch(context.Background(), eventID, tt.typ)
			if err != nil {
				t.Fatalf("Dispatch: %v", err)
			}
			if sent != 1 {
				t.Fatalf("sent = %d, want 1", sent)
			}
			if len(notifier.created) != 1 {
				t.Fatalf("created %d notifications, want 1", len(notifier.created))
			}
			created := notifier.created[0]
			if created.UserID != tt.wantRecipient {
				t.Errorf("recipient = %s, want %s", created.UserID, tt.wantRecipient)
			}
			if created.Title != "Update for Couture Gala" {
				t.Errorf("title = %q", created.Title)
			}
			if created.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", created.Message, tt.wantMessage)
			}
			if len(pusher.pushed[tt.wantRecipient]) != 1 {
				t.Errorf("pushed %d sse events, want 1", len(pusher.pushed[tt.wantRecipient]))
			}
		})
	}
}

func TestDispatchUnassignedCoordinatorSendsNothing(t *testing.T) {
	eventID := uuid.New()
	lead := uuid.New()
	roster := &fakeRoster{rosters: map[uuid.UUID]EventRoster{
		eventID: {
			EventID:         eventID,
			Title:           "Couture Gala",
			LeadOrganizerID: &lead,
		},
	}}

	notifier := &fakeNotifier{}
	svc := New(roster, notifier, &fakePusher{}, nil)

	sent, err := svc.Dispatch(context.Background(), eventID, TypeModelUpdate)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if sent != 0 {
		t.Errorf("sent = %d, want 0", sent)
	}
	if len(notifier.created) != 0 {
		t.Errorf("created %d notifications, want 0", len(notifier.created))
	}
}

func TestDispatchUnknownEvent(t *testing.T) {
	svc := New(&fakeRoster{}, &fakeNotifier{}, &fakePusher{}, nil)

	_, err := svc.Dispatch(context.Background(), uuid.New(), TypeVenueUpdate)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
