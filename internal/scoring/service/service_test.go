package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"fashionos_backend/internal/events"
	"fashionos_backend/internal/scoring/engine"
	"fashionos_backend/internal/scoring/repository"
	"fashionos_backend/platform/apperr"

	"github.com/google/uuid"
)

type fakeRepo struct {
	bundle     repository.Bundle
	getErr     error
	persistErr error
	persisted  []repository.PersistParams
}

func (f *fakeRepo) GetScoringBundle(_ context.Context, _ uuid.UUID) (repository.Bundle, error) {
	if f.getErr != nil {
		return repository.Bundle{}, f.getErr
	}
	return f.bundle, nil
}

func (f *fakeRepo) PersistScore(_ context.Context, params repository.PersistParams) error {
	if f.persistErr != nil {
		return f.persistErr
	}
	f.persisted = append(f.persisted, params)
	return nil
}

func (f *fakeRepo) ListHistory(_ context.Context, _ uuid.UUID, _, _ int) ([]repository.HistoryEntry, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) ListActiveContactIDs(_ context.Context) ([]uuid.UUID, error) {
	return nil, nil
}

type captureBus struct {
	mu        sync.Mutex
	published []events.Event
}

func (b *captureBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, event)
}

func (b *captureBus) PublishSync(_ context.Context, event events.Event) error {
	b.Publish(context.Background(), event)
	return nil
}

func (b *captureBus) Subscribe(_ string, _ events.Handler) {}

func strptr(s string) *string { return &s }

func newService(repo *fakeRepo, bus events.Bus) *Service {
	svc := New(repo, engine.New(engine.DefaultWeights()), bus, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestScoreContactPersistsScoreAndHistoryTogether(t *testing.T) {
	contactID := uuid.New()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	repo := &fakeRepo{bundle: repository.Bundle{
		Contact: repository.Contact{
			ID:           contactID,
			Title:        strptr("Marketing Director"),
			Department:   strptr("marketing"),
			LeadScore:    40,
			ScoreVersion: 7,
		},
		Account: &repository.Account{
			CompanySize: strptr("1000+"),
			Industry:    strptr("Luxury Fashion"),
		},
		Interactions: []repository.Interaction{
			{Type: "meeting", Sentiment: strptr("positive"), InteractionDate: now.AddDate(0, 0, -2)},
			{Type: "email", Direction: strptr("inbound"), InteractionDate: now.AddDate(0, 0, -5)},
		},
	}}
	bus := &captureBus{}

	result, err := newService(repo, bus).ScoreContact(context.Background(), contactID)
	if err != nil {
		t.Fatalf("ScoreContact: %v", err)
	}

	// demographic 28, firmographic 40, behavioral 35, engagement 0
	if result.Score != 103 {
		t.Errorf("score = %d, want 103", result.Score)
	}
	if result.PreviousScore != 40 {
		t.Errorf("previous score = %d, want 40", result.PreviousScore)
	}

	if len(repo.persisted) != 1 {
		t.Fatalf("persisted %d times, want 1", len(repo.persisted))
	}
	p := repo.persisted[0]
	if p.ExpectedVersion != 7 {
		t.Errorf("expected version = %d, want 7", p.ExpectedVersion)
	}
	if p.ScoreChange != 63 {
		t.Errorf("score change = %d, want 63", p.ScoreChange)
	}
	if p.EngagementScore != 0 {
		t.Errorf("engagement score = %d, want 0", p.EngagementScore)
	}
	if p.ScoreReason != "Automated scoring based on 2 interactions" {
		t.Errorf("score reason = %q", p.ScoreReason)
	}
	if !strings.Contains(string(p.FactorsJSON), `"demographic":28`) {
		t.Errorf("factors JSON missing demographic sub-score: %s", p.FactorsJSON)
	}

	if len(bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.published))
	}
	scored, ok := bus.published[0].(events.ContactScored)
	if !ok {
		t.Fatalf("published event has type %T", bus.published[0])
	}
	if scored.Score != 103 || scored.PreviousScore != 40 || scored.Interactions != 2 {
		t.Errorf("event = %+v", scored)
	}
}

func TestScoreContactMissingContact(t *testing.T) {
	repo := &fakeRepo{getErr: apperr.NotFound("contact not found")}
	bus := &captureBus{}

	_, err := newService(repo, bus).ScoreContact(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	if len(bus.published) != 0 {
		t.Errorf("no event should be published on failure")
	}
}

func TestScoreContactConflictDoesNotPublish(t *testing.T) {
	repo := &fakeRepo{
		bundle:     repository.Bundle{Contact: repository.Contact{ID: uuid.New()}},
		persistErr: apperr.Conflict("contact was rescored concurrently"),
	}
	bus := &captureBus{}

	_, err := newService(repo, bus).ScoreContact(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
	if len(bus.published) != 0 {
		t.Errorf("no event should be published on conflict")
	}
}

func TestScoreContactNoAccountNoInteractions(t *testing.T) {
	contactID := uuid.New()
	repo := &fakeRepo{bundle: repository.Bundle{
		Contact: repository.Contact{ID: contactID, LeadScore: 25, ScoreVersion: 1},
	}}

	result, err := newService(repo, &captureBus{}).ScoreContact(context.Background(), contactID)
	if err != nil {
		t.Fatalf("ScoreContact: %v", err)
	}
	if result.Score != 0 {
		t.Errorf("score = %d, want 0", result.Score)
	}
	if repo.persisted[0].ScoreChange != -25 {
		t.Errorf("score change = %d, want -25", repo.persisted[0].ScoreChange)
	}
	if repo.persisted[0].ScoreReason != "Automated scoring based on 0 interactions" {
		t.Errorf("score reason = %q", repo.persisted[0].ScoreReason)
	}
}
