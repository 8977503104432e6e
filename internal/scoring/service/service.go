// Package service orchestrates scoring runs: load, compute, persist, publish.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fashionos_backend/internal/events"
	"fashionos_backend/internal/scoring/engine"
	"fashionos_backend/internal/scoring/repository"
	"fashionos_backend/platform/apperr"
	"fashionos_backend/platform/logger"

	"github.com/google/uuid"
)

// Result is the outcome of one scoring run.
type Result struct {
	ContactID     uuid.UUID
	Score         int
	PreviousScore int
	Breakdown     engine.Breakdown
	Interactions  int
}

// Service runs the scoring pipeline for a contact.
type Service struct {
	repo   repository.ScoringRepository
	engine *engine.Engine
	bus    events.Bus
	log    *logger.Logger
	now    func() time.Time
}

// New creates a scoring service.
func New(repo repository.ScoringRepository, eng *engine.Engine, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		engine: eng,
		bus:    bus,
		log:    log,
		now:    time.Now,
	}
}

// ScoreContact recomputes and persists the lead score for one contact.
// The contact update and the history row are written atomically; a
// concurrent run on the same contact fails with a conflict rather than
// silently overwriting.
func (s *Service) ScoreContact(ctx context.Context, contactID uuid.UUID) (*Result, error) {
	bundle, err := s.repo.GetScoringBundle(ctx, contactID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	breakdown := s.engine.Score(
		engineContact(bundle.Contact),
		engineAccount(bundle.Account),
		engineInteractions(bundle.Interactions),
		now,
	)

	score := breakdown.Total()
	previous := bundle.Contact.LeadScore

	factorsJSON, err := json.Marshal(breakdown)
	if err != nil {
		return nil, fmt.Errorf("marshal scoring factors: %w", err)
	}

	err = s.repo.PersistScore(ctx, repository.PersistParams{
		ContactID:         contactID,
		ExpectedVersion:   bundle.Contact.ScoreVersion,
		Score:             score,
		PreviousScore:     previous,
		ScoreChange:       score - previous,
		DemographicScore:  breakdown.Demographic,
		FirmographicScore: breakdown.Firmographic,
		BehavioralScore:   breakdown.Behavioral,
		EngagementScore:   breakdown.Engagement,
		FactorsJSON:       factorsJSON,
		ScoreReason:       fmt.Sprintf("Automated scoring based on %d interactions", len(bundle.Interactions)),
	})
	if err != nil {
		return nil, err
	}

	if s.log != nil {
		s.log.ScoringRun(contactID.String(), previous, score, len(bundle.Interactions))
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.ContactScored{
			BaseEvent:     events.NewBaseEvent(),
			ContactID:     contactID,
			Score:         score,
			PreviousScore: previous,
			ScoreChange:   score - previous,
			Interactions:  len(bundle.Interactions),
		})
	}

	return &Result{
		ContactID:     contactID,
		Score:         score,
		PreviousScore: previous,
		Breakdown:     breakdown,
		Interactions:  len(bundle.Interactions),
	}, nil
}

// RescoreAll recomputes scores for every active contact. Per-contact
// failures are logged and counted but do not stop the sweep; a conflict
// just means another run already refreshed that contact.
func (s *Service) RescoreAll(ctx context.Context) (scored, failed int, err error) {
	ids, err := s.repo.ListActiveContactIDs(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, id := range ids {
		if ctx.Err() != nil {
			return scored, failed, ctx.Err()
		}
		if _, err := s.ScoreContact(ctx, id); err != nil {
			if apperr.Is(err, apperr.KindConflict) {
				continue
			}
			failed++
			if s.log != nil {
				s.log.Warn("rescore contact failed", "contact_id", id.String(), "error", err.Error())
			}
			continue
		}
		scored++
	}
	return scored, failed, nil
}

// History returns a contact's scoring history page, newest first.
func (s *Service) History(ctx context.Context, contactID uuid.UUID, page, pageSize int) ([]repository.HistoryEntry, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return s.repo.ListHistory(ctx, contactID, pageSize, (page-1)*pageSize)
}

func engineContact(c repository.Contact) engine.Contact {
	return engine.Contact{
		Title:      deref(c.Title),
		Department: deref(c.Department),
	}
}

func engineAccount(a *repository.Account) *engine.Account {
	if a == nil {
		return nil
	}
	return &engine.Account{
		CompanySize: deref(a.CompanySize),
		Industry:    deref(a.Industry),
	}
}

func engineInteractions(rows []repository.Interaction) []engine.Interaction {
	out := make([]engine.Interaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, engine.Interaction{
			Type:       row.Type,
			Direction:  deref(row.Direction),
			Sentiment:  deref(row.Sentiment),
			OccurredAt: row.InteractionDate,
		})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
