// Package service implements CRM business logic: contact and account
// lifecycle plus the immutable interaction log that feeds lead scoring.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fashionos_backend/internal/crm/repository"
	"fashionos_backend/internal/events"
	"fashionos_backend/platform/logger"
	"fashionos_backend/platform/phone"
	"fashionos_backend/platform/sanitize"
)

// CRMRepository is the persistence surface the CRM service needs.
type CRMRepository interface {
	CreateContact(ctx context.Context, params repository.CreateContactParams) (repository.Contact, error)
	GetContact(ctx context.Context, id uuid.UUID) (repository.Contact, error)
	ListContacts(ctx context.Context, params repository.ListContactsParams) ([]repository.Contact, int, error)
	UpdateContact(ctx context.Context, params repository.UpdateContactParams) (repository.Contact, error)
	ArchiveContact(ctx context.Context, id uuid.UUID) error

	CreateAccount(ctx context.Context, params repository.CreateAccountParams) (repository.Account, error)
	GetAccount(ctx context.Context, id uuid.UUID) (repository.Account, error)
	ListAccounts(ctx context.Context, limit, offset int) ([]repository.Account, int, error)
	UpdateAccount(ctx context.Context, params repository.UpdateAccountParams) (repository.Account, error)

	CreateInteraction(ctx context.Context, params repository.CreateInteractionParams) (repository.Interaction, error)
	ListInteractions(ctx context.Context, contactID uuid.UUID, limit, offset int) ([]repository.Interaction, int, error)
}

// Service implements CRM use cases.
type Service struct {
	repo CRMRepository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new CRM service.
func New(repo CRMRepository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// CreateContact sanitizes free text, normalizes the phone number, and
// persists the contact. Publishes crm.contact.created.
func (s *Service) CreateContact(ctx context.Context, params repository.CreateContactParams, actorID uuid.UUID) (repository.Contact, error) {
	cleanContactText(&params.Title, &params.Department, &params.Notes)
	params.FirstName = sanitize.Text(params.FirstName)
	params.LastName = sanitize.Text(params.LastName)
	normalizePhone(&params.Phone)

	contact, err := s.repo.CreateContact(ctx, params)
	if err != nil {
		return repository.Contact{}, err
	}

	s.bus.Publish(ctx, events.ContactCreated{
		BaseEvent: events.NewBaseEvent(),
		ContactID: contact.ID,
		AccountID: contact.AccountID,
		CreatedBy: actorID,
	})

	return contact, nil
}

// GetContact retrieves a single contact.
func (s *Service) GetContact(ctx context.Context, id uuid.UUID) (repository.Contact, error) {
	return s.repo.GetContact(ctx, id)
}

// ListContacts retrieves contacts with paging clamped to sane bounds.
func (s *Service) ListContacts(ctx context.Context, params repository.ListContactsParams) ([]repository.Contact, int, error) {
	params.Limit, params.Offset = clampPage(params.Limit, params.Offset)
	return s.repo.ListContacts(ctx, params)
}

// UpdateContact sanitizes the changed fields and applies the partial update.
func (s *Service) UpdateContact(ctx context.Context, params repository.UpdateContactParams) (repository.Contact, error) {
	params.FirstName = sanitize.TextPtr(params.FirstName)
	params.LastName = sanitize.TextPtr(params.LastName)
	cleanContactText(&params.Title, &params.Department, &params.Notes)
	normalizePhone(&params.Phone)

	return s.repo.UpdateContact(ctx, params)
}

// ArchiveContact soft-deletes a contact.
func (s *Service) ArchiveContact(ctx context.Context, id uuid.UUID) error {
	return s.repo.ArchiveContact(ctx, id)
}

// CreateAccount persists a new account.
func (s *Service) CreateAccount(ctx context.Context, params repository.CreateAccountParams) (repository.Account, error) {
	params.Name = sanitize.Text(params.Name)
	params.Industry = sanitize.TextPtr(params.Industry)
	return s.repo.CreateAccount(ctx, params)
}

// GetAccount retrieves a single account.
func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (repository.Account, error) {
	return s.repo.GetAccount(ctx, id)
}

// ListAccounts retrieves accounts with paging.
func (s *Service) ListAccounts(ctx context.Context, limit, offset int) ([]repository.Account, int, error) {
	limit, offset = clampPage(limit, offset)
	return s.repo.ListAccounts(ctx, limit, offset)
}

// UpdateAccount applies a partial account update.
func (s *Service) UpdateAccount(ctx context.Context, params repository.UpdateAccountParams) (repository.Account, error) {
	params.Name = sanitize.TextPtr(params.Name)
	params.Industry = sanitize.TextPtr(params.Industry)
	return s.repo.UpdateAccount(ctx, params)
}

// LogInteraction verifies the contact exists, appends the interaction, and
// publishes crm.interaction.logged so scoring can react.
func (s *Service) LogInteraction(ctx context.Context, params repository.CreateInteractionParams) (repository.Interaction, error) {
	if _, err := s.repo.GetContact(ctx, params.ContactID); err != nil {
		return repository.Interaction{}, err
	}

	params.Subject = sanitize.TextPtr(params.Subject)
	if params.InteractionDate.IsZero() {
		params.InteractionDate = time.Now().UTC()
	}

	interaction, err := s.repo.CreateInteraction(ctx, params)
	if err != nil {
		return repository.Interaction{}, err
	}

	s.bus.Publish(ctx, events.InteractionLogged{
		BaseEvent:     events.NewBaseEvent(),
		InteractionID: interaction.ID,
		ContactID:     interaction.ContactID,
		Type:          interaction.Type,
		Direction:     deref(interaction.Direction),
		Sentiment:     deref(interaction.Sentiment),
	})

	return interaction, nil
}

// ListInteractions retrieves a contact's interaction log, newest first.
func (s *Service) ListInteractions(ctx context.Context, contactID uuid.UUID, limit, offset int) ([]repository.Interaction, int, error) {
	limit, offset = clampPage(limit, offset)
	return s.repo.ListInteractions(ctx, contactID, limit, offset)
}

func cleanContactText(fields ...**string) {
	for _, f := range fields {
		*f = sanitize.TextPtr(*f)
	}
}

func normalizePhone(p **string) {
	if *p == nil {
		return
	}
	normalized := phone.NormalizeE164(**p)
	*p = &normalized
}

func clampPage(limit, offset int) (int, int) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
