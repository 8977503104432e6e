// Package service implements sponsor self-service: company profiles and
// sponsorship agreements.
package service

import (
	"context"

	"github.com/google/uuid"

	"fashionos_backend/internal/sponsors/repository"
	"fashionos_backend/platform/apperr"
	"fashionos_backend/platform/logger"
	"fashionos_backend/platform/sanitize"
)

// SponsorRepository is the persistence surface the sponsors service needs.
type SponsorRepository interface {
	CreateSponsor(ctx context.Context, params repository.CreateSponsorParams) (repository.Sponsor, error)
	GetSponsor(ctx context.Context, id uuid.UUID) (repository.Sponsor, error)
	GetSponsorByUser(ctx context.Context, userID uuid.UUID) (repository.Sponsor, error)
	ListSponsors(ctx context.Context, limit, offset int) ([]repository.Sponsor, int, error)
	UpdateSponsor(ctx context.Context, params repository.UpdateSponsorParams) (repository.Sponsor, error)

	CreateSponsorship(ctx context.Context, params repository.CreateSponsorshipParams) (repository.Sponsorship, error)
	GetSponsorship(ctx context.Context, id uuid.UUID) (repository.Sponsorship, error)
	ListSponsorshipsBySponsor(ctx context.Context, sponsorID uuid.UUID, limit, offset int) ([]repository.Sponsorship, int, error)
	UpdateSponsorship(ctx context.Context, params repository.UpdateSponsorshipParams) (repository.Sponsorship, error)
}

// Service implements sponsor use cases.
type Service struct {
	repo SponsorRepository
	log  *logger.Logger
}

// New creates a new sponsors service.
func New(repo SponsorRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// CreateSponsor persists a sponsor profile for the given user.
func (s *Service) CreateSponsor(ctx context.Context, params repository.CreateSponsorParams) (repository.Sponsor, error) {
	params.CompanyName = sanitize.Text(params.CompanyName)
	params.Industry = sanitize.TextPtr(params.Industry)
	return s.repo.CreateSponsor(ctx, params)
}

// GetSponsor retrieves a sponsor profile.
func (s *Service) GetSponsor(ctx context.Context, id uuid.UUID) (repository.Sponsor, error) {
	return s.repo.GetSponsor(ctx, id)
}

// MySponsor retrieves the profile owned by the calling user.
func (s *Service) MySponsor(ctx context.Context, userID uuid.UUID) (repository.Sponsor, error) {
	return s.repo.GetSponsorByUser(ctx, userID)
}

// ListSponsors retrieves sponsor profiles with paging.
func (s *Service) ListSponsors(ctx context.Context, limit, offset int) ([]repository.Sponsor, int, error) {
	limit, offset = clampPage(limit, offset)
	return s.repo.ListSponsors(ctx, limit, offset)
}

// UpdateSponsor applies a partial sponsor update.
func (s *Service) UpdateSponsor(ctx context.Context, params repository.UpdateSponsorParams) (repository.Sponsor, error) {
	params.CompanyName = sanitize.TextPtr(params.CompanyName)
	params.Industry = sanitize.TextPtr(params.Industry)
	return s.repo.UpdateSponsor(ctx, params)
}

// CreateSponsorship records a new agreement.
func (s *Service) CreateSponsorship(ctx context.Context, params repository.CreateSponsorshipParams) (repository.Sponsorship, error) {
	if params.AmountCents < 0 {
		return repository.Sponsorship{}, apperr.Validation("amount cannot be negative")
	}
	if _, err := s.repo.GetSponsor(ctx, params.SponsorID); err != nil {
		return repository.Sponsorship{}, err
	}
	return s.repo.CreateSponsorship(ctx, params)
}

// GetSponsorship retrieves an agreement.
func (s *Service) GetSponsorship(ctx context.Context, id uuid.UUID) (repository.Sponsorship, error) {
	return s.repo.GetSponsorship(ctx, id)
}

// ListMySponsorships retrieves the calling sponsor's agreements.
func (s *Service) ListMySponsorships(ctx context.Context, userID uuid.UUID, limit, offset int) ([]repository.Sponsorship, int, error) {
	sponsor, err := s.repo.GetSponsorByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	limit, offset = clampPage(limit, offset)
	return s.repo.ListSponsorshipsBySponsor(ctx, sponsor.ID, limit, offset)
}

// UpdateSponsorship applies a partial agreement update.
func (s *Service) UpdateSponsorship(ctx context.Context, params repository.UpdateSponsorshipParams) (repository.Sponsorship, error) {
	if params.AmountCents != nil && *params.AmountCents < 0 {
		return repository.Sponsorship{}, apperr.Validation("amount cannot be negative")
	}
	return s.repo.UpdateSponsorship(ctx, params)
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
