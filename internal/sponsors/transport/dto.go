// Package transport defines request/response DTOs for the sponsors API.
package transport

import (
	"time"

	"github.com/google/uuid"

	"fashionos_backend/internal/sponsors/repository"
)

// CreateSponsorRequest is the payload for creating a sponsor profile.
type CreateSponsorRequest struct {
	CompanyName string  `json:"company_name" validate:"required,max=200"`
	Tier        *string `json:"tier,omitempty" validate:"omitempty,oneof=platinum gold silver bronze"`
	Industry    *string `json:"industry,omitempty" validate:"omitempty,max=100"`
}

// UpdateSponsorRequest is the payload for a partial sponsor update.
type UpdateSponsorRequest struct {
	CompanyName *string `json:"company_name,omitempty" validate:"omitempty,max=200"`
	Tier        *string `json:"tier,omitempty" validate:"omitempty,oneof=platinum gold silver bronze"`
	Industry    *string `json:"industry,omitempty" validate:"omitempty,max=100"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=pending active suspended"`
}

// SponsorResponse represents a sponsor profile in API responses.
type SponsorResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	CompanyName string    `json:"company_name"`
	Tier        *string   `json:"tier,omitempty"`
	Industry    *string   `json:"industry,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

// SponsorListResponse is a paged list of sponsor profiles.
type SponsorListResponse struct {
	Items []SponsorResponse `json:"items"`
	Total int               `json:"total"`
}

// CreateSponsorshipRequest is the payload for recording an agreement.
type CreateSponsorshipRequest struct {
	SponsorID   string  `json:"sponsor_id" validate:"required,uuid"`
	EventID     string  `json:"event_id" validate:"required,uuid"`
	Package     *string `json:"package,omitempty" validate:"omitempty,max=100"`
	AmountCents int64   `json:"amount_cents" validate:"min=0"`
}

// UpdateSponsorshipRequest is the payload for a partial agreement update.
type UpdateSponsorshipRequest struct {
	Package     *string `json:"package,omitempty" validate:"omitempty,max=100"`
	AmountCents *int64  `json:"amount_cents,omitempty" validate:"omitempty,min=0"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=proposed signed fulfilled cancelled"`
}

// SponsorshipResponse represents an agreement in API responses.
type SponsorshipResponse struct {
	ID          uuid.UUID `json:"id"`
	SponsorID   uuid.UUID `json:"sponsor_id"`
	EventID     uuid.UUID `json:"event_id"`
	Package     *string   `json:"package,omitempty"`
	AmountCents int64     `json:"amount_cents"`
	Status      string    `json:"status"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

// SponsorshipListResponse is a paged list of agreements.
type SponsorshipListResponse struct {
	Items []SponsorshipResponse `json:"items"`
	Total int                   `json:"total"`
}

// FromSponsor maps a repository sponsor to its response shape.
func FromSponsor(s repository.Sponsor) SponsorResponse {
	return SponsorResponse{
		ID:          s.ID,
		UserID:      s.UserID,
		CompanyName: s.CompanyName,
		Tier:        s.Tier,
		Industry:    s.Industry,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// FromSponsorship maps a repository sponsorship to its response shape.
func FromSponsorship(s repository.Sponsorship) SponsorshipResponse {
	return SponsorshipResponse{
		ID:          s.ID,
		SponsorID:   s.SponsorID,
		EventID:     s.EventID,
		Package:     s.Package,
		AmountCents: s.AmountCents,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
