package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"fashionos_backend/internal/crm/repository"
	"fashionos_backend/internal/events"
	"fashionos_backend/platform/apperr"
)

type fakeRepo struct {
	contacts     map[uuid.UUID]repository.Contact
	interactions []repository.Interaction
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{contacts: make(map[uuid.UUID]repository.Contact)}
}

func (f *fakeRepo) CreateContact(_ context.Context, params repository.CreateContactParams) (repository.Contact, error) {
	contact := repository.Contact{
		ID:         uuid.New(),
		FirstName:  params.FirstName,
		LastName:   params.LastName,
		Email:      params.Email,
		Phone:      params.Phone,
		Title:      params.Title,
		Department: params.Department,
		AccountID:  params.AccountID,
		Notes:      params.Notes,
		Status:     repository.ContactStatusActive,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	f.contacts[contact.ID] = contact
	return contact, nil
}

func (f *fakeRepo) GetContact(_ context.Context, id uuid.UUID) (repository.Contact, error) {
	if c, ok := f.contacts[id]; ok {
		return c, nil
	}
	return repository.Contact{}, apperr.NotFound("contact not found")
}

func (f *fakeRepo) ListContacts(_ context.Context, _ repository.ListContactsParams) ([]repository.Contact, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) UpdateContact(_ context.Context, params repository.UpdateContactParams) (repository.Contact, error) {
	c, ok := f.contacts[params.ID]
	if !ok {
		return repository.Contact{}, apperr.NotFound("contact not found")
	}
	if params.Title != nil {
		c.Title = params.Title
	}
	if params.Phone != nil {
		c.Phone = params.Phone
	}
	f.contacts[params.ID] = c
	return c, nil
}

func (f *fakeRepo) ArchiveContact(_ context.Context, id uuid.UUID) error {
	if _, ok := f.contacts[id]; !ok {
		return apperr.NotFound("contact not found")
	}
	delete(f.contacts, id)
	return nil
}

func (f *fakeRepo) CreateAccount(_ context.Context, params repository.CreateAccountParams) (repository.Account, error) {
	return repository.Account{ID: uuid.New(), Name: params.Name}, nil
}

func (f *fakeRepo) GetAccount(_ context.Context, _ uuid.UUID) (repository.Account, error) {
	return repository.Account{}, apperr.NotFound("account not found")
}

func (f *fakeRepo) ListAccounts(_ context.Context, _, _ int) ([]repository.Account, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) UpdateAccount(_ context.Context, _ repository.UpdateAccountParams) (repository.Account, error) {
	return repository.Account{}, apperr.NotFound("account not found")
}

func (f *fakeRepo) CreateInteraction(_ context.Context, params repository.CreateInteractionParams) (repository.Interaction, error) {
	it := repository.Interaction{
		ID:              uuid.New(),
		ContactID:       params.ContactID,
		AccountID:       params.AccountID,
		EventID:         params.EventID,
		Type:            params.Type,
		Direction:       params.Direction,
		Sentiment:       params.Sentiment,
		Subject:         params.Subject,
		InteractionDate: params.InteractionDate,
		CreatedBy:       params.CreatedBy,
		CreatedAt:       time.Now(),
	}
	f.interactions = append(f.interactions, it)
	return it, nil
}

func (f *fakeRepo) ListInteractions(_ context.Context, _ uuid.UUID, _, _ int) ([]repository.Interaction, int, error) {
	return f.interactions, len(f.interactions), nil
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

func (b *captureBus) published() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]events.Event(nil), b.events...)
}

func strptr(s string) *string { return &s }

func TestCreateContactSanitizesAndNormalizes(t *testing.T) {
	repo := newFakeRepo()
	bus := &captureBus{}
	svc := New(repo, bus, nil)
	actor := uuid.New()

	contact, err := svc.CreateContact(context.Background(), repository.CreateContactParams{
		FirstName: "Ava",
		LastName:  "Laurent",
		Title:     strptr("<b>VP</b> of Marketing"),
		Phone:     strptr("(212) 555-0123"),
		Notes:     strptr("<script>alert(1)</script>met at the runway show"),
	}, actor)
	if err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	if got := *contact.Title; got != "VP of Marketing" {
		t.Errorf("title = %q, want HTML stripped", got)
	}
	if got := *contact.Phone; got != "+12125550123" {
		t.Errorf("phone = %q, want E.164", got)
	}
	if got := *contact.Notes; got != "alert(1)met at the runway show" {
		t.Errorf("notes = %q, want tags stripped", got)
	}

	published := bus.published()
	if len(published) != 1 {
		t.Fatalf("published %d events, want 1", len(published))
	}
	created, ok := published[0].(events.ContactCreated)
	if !ok {
		t.Fatalf("published %T, want ContactCreated", published[0])
	}
	if created.ContactID != contact.ID {
		t.Errorf("event contact = %s, want %s", created.ContactID, contact.ID)
	}
	if created.CreatedBy != actor {
		t.Errorf("event actor = %s, want %s", created.CreatedBy, actor)
	}
}

func TestLogInteractionPublishesEvent(t *testing.T) {
	repo := newFakeRepo()
	bus := &captureBus{}
	svc := New(repo, bus, nil)

	contact, err := svc.CreateContact(context.Background(), repository.CreateContactParams{
		FirstName: "Jonas",
		LastName:  "Blom",
	}, uuid.New())
	if err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	interaction, err := svc.LogInteraction(context.Background(), repository.CreateInteractionParams{
		ContactID: contact.ID,
		Type:      "meeting",
		Direction: strptr("inbound"),
		Sentiment: strptr("positive"),
		CreatedBy: uuid.New(),
	})
	if err != nil {
		t.Fatalf("LogInteraction: %v", err)
	}
	if interaction.InteractionDate.IsZero() {
		t.Error("interaction date not defaulted")
	}

	published := bus.published()
	if len(published) != 2 {
		t.Fatalf("published %d events, want 2", len(published))
	}
	logged, ok := published[1].(events.InteractionLogged)
	if !ok {
		t.Fatalf("published %T, want InteractionLogged", published[1])
	}
	if logged.ContactID != contact.ID {
		t.Errorf("event contact = %s, want %s", logged.ContactID, contact.ID)
	}
	if logged.Type != "meeting" || logged.Direction != "inbound" || logged.Sentiment != "positive" {
		t.Errorf("event fields = %q/%q/%q", logged.Type, logged.Direction, logged.Sentiment)
	}
}

func TestLogInteractionUnknownContact(t *testing.T) {
	repo := newFakeRepo()
	bus := &captureBus{}
	svc := New(repo, bus, nil)

	_, err := svc.LogInteraction(context.Background(), repository.CreateInteractionParams{
		ContactID: uuid.New(),
		Type:      "call",
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	if len(repo.interactions) != 0 {
		t.Error("interaction persisted for unknown contact")
	}
	if len(bus.published()) != 0 {
		t.Error("event published for unknown contact")
	}
}
