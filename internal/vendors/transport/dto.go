// Package transport defines request/response DTOs for the vendors API.
package transport

import (
	"time"

	"github.com/google/uuid"

	"fashionos_backend/internal/vendors/repository"
)

// CreateProfileRequest is the payload for creating a vendor profile.
type CreateProfileRequest struct {
	BusinessName string  `json:"business_name" validate:"required,max=200"`
	Category     *string `json:"category,omitempty" validate:"omitempty,max=100"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=5000"`
}

// UpdateProfileRequest is the payload for a partial profile update.
type UpdateProfileRequest struct {
	BusinessName *string `json:"business_name,omitempty" validate:"omitempty,max=200"`
	Category     *string `json:"category,omitempty" validate:"omitempty,max=100"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=pending active suspended"`
}

// ProfileResponse represents a vendor profile in API responses.
type ProfileResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	BusinessName string    `json:"business_name"`
	Category     *string   `json:"category,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    string    `json:"created_at"`
	UpdatedAt    string    `json:"updated_at"`
}

// ProfileListResponse is a paged list of vendor profiles.
type ProfileListResponse struct {
	Items []ProfileResponse `json:"items"`
	Total int               `json:"total"`
}

// CreateBookingRequest is the payload for booking a vendor onto an event.
type CreateBookingRequest struct {
	EventID     string  `json:"event_id" validate:"required,uuid"`
	VendorID    string  `json:"vendor_id" validate:"required,uuid"`
	ServiceNote *string `json:"service_note,omitempty" validate:"omitempty,max=2000"`
	BookingDate *string `json:"booking_date,omitempty"`
}

// UpdateBookingRequest is the payload for a partial booking update.
type UpdateBookingRequest struct {
	ServiceNote *string `json:"service_note,omitempty" validate:"omitempty,max=2000"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed declined completed"`
	BookingDate *string `json:"booking_date,omitempty"`
}

// BookingResponse represents a booking in API responses.
type BookingResponse struct {
	ID          uuid.UUID `json:"id"`
	EventID     uuid.UUID `json:"event_id"`
	VendorID    uuid.UUID `json:"vendor_id"`
	ServiceNote *string   `json:"service_note,omitempty"`
	Status      string    `json:"status"`
	BookingDate *string   `json:"booking_date,omitempty"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

// BookingListResponse is a paged list of bookings.
type BookingListResponse struct {
	Items []BookingResponse `json:"items"`
	Total int               `json:"total"`
}

// CreateWindowRequest is the payload for adding an availability window.
type CreateWindowRequest struct {
	StartsAt  string `json:"starts_at" validate:"required"`
	EndsAt    string `json:"ends_at" validate:"required"`
	Available bool   `json:"available"`
}

// WindowResponse represents an availability window in API responses.
type WindowResponse struct {
	ID        uuid.UUID `json:"id"`
	VendorID  uuid.UUID `json:"vendor_id"`
	StartsAt  string    `json:"starts_at"`
	EndsAt    string    `json:"ends_at"`
	Available bool      `json:"available"`
}

// FromProfile maps a repository profile to its response shape.
func FromProfile(p repository.Profile) ProfileResponse {
	return ProfileResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		BusinessName: p.BusinessName,
		Category:     p.Category,
		Description:  p.Description,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// FromBooking maps a repository booking to its response shape.
func FromBooking(b repository.Booking) BookingResponse {
	resp := BookingResponse{
		ID:          b.ID,
		EventID:     b.EventID,
		VendorID:    b.VendorID,
		ServiceNote: b.ServiceNote,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   b.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if b.BookingDate != nil {
		formatted := b.BookingDate.UTC().Format(time.RFC3339)
		resp.BookingDate = &formatted
	}
	return resp
}

// FromWindow maps a repository availability window to its response shape.
func FromWindow(w repository.AvailabilityWindow) WindowResponse {
	return WindowResponse{
		ID:        w.ID,
		VendorID:  w.VendorID,
		StartsAt:  w.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:    w.EndsAt.UTC().Format(time.RFC3339),
		Available: w.Available,
	}
}
