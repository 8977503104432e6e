// Package service implements vendor self-service: profiles, event bookings,
// and availability windows.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fashionos_backend/internal/vendors/repository"
	"fashionos_backend/platform/apperr"
	"fashionos_backend/platform/logger"
	"fashionos_backend/platform/sanitize"
)

// VendorRepository is the persistence surface the vendors service needs.
type VendorRepository interface {
	CreateProfile(ctx context.Context, params repository.CreateProfileParams) (repository.Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (repository.Profile, error)
	GetProfileByUser(ctx context.Context, userID uuid.UUID) (repository.Profile, error)
	ListProfiles(ctx context.Context, limit, offset int) ([]repository.Profile, int, error)
	UpdateProfile(ctx context.Context, params repository.UpdateProfileParams) (repository.Profile, error)

	CreateBooking(ctx context.Context, params repository.CreateBookingParams) (repository.Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (repository.Booking, error)
	ListBookingsByVendor(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]repository.Booking, int, error)
	UpdateBooking(ctx context.Context, params repository.UpdateBookingParams) (repository.Booking, error)

	CreateWindow(ctx context.Context, params repository.CreateWindowParams) (repository.AvailabilityWindow, error)
	ListWindows(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]repository.AvailabilityWindow, error)
	DeleteWindow(ctx context.Context, vendorID, windowID uuid.UUID) error
}

// Service implements vendor use cases.
type Service struct {
	repo VendorRepository
	log  *logger.Logger
}

// New creates a new vendors service.
func New(repo VendorRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// CreateProfile persists a vendor profile for the given user.
func (s *Service) CreateProfile(ctx context.Context, params repository.CreateProfileParams) (repository.Profile, error) {
	params.BusinessName = sanitize.Text(params.BusinessName)
	params.Description = sanitize.TextPtr(params.Description)
	return s.repo.CreateProfile(ctx, params)
}

// GetProfile retrieves a vendor profile.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (repository.Profile, error) {
	return s.repo.GetProfile(ctx, id)
}

// MyProfile retrieves the profile owned by the calling user.
func (s *Service) MyProfile(ctx context.Context, userID uuid.UUID) (repository.Profile, error) {
	return s.repo.GetProfileByUser(ctx, userID)
}

// ListProfiles retrieves vendor profiles with paging.
func (s *Service) ListProfiles(ctx context.Context, limit, offset int) ([]repository.Profile, int, error) {
	limit, offset = clampPage(limit, offset)
	return s.repo.ListProfiles(ctx, limit, offset)
}

// UpdateProfile applies a partial profile update.
func (s *Service) UpdateProfile(ctx context.Context, params repository.UpdateProfileParams) (repository.Profile, error) {
	params.BusinessName = sanitize.TextPtr(params.BusinessName)
	params.Description = sanitize.TextPtr(params.Description)
	return s.repo.UpdateProfile(ctx, params)
}

// CreateBooking books a vendor onto an event.
func (s *Service) CreateBooking(ctx context.Context, params repository.CreateBookingParams) (repository.Booking, error) {
	params.ServiceNote = sanitize.TextPtr(params.ServiceNote)
	return s.repo.CreateBooking(ctx, params)
}

// GetBooking retrieves a booking.
func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (repository.Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

// ListMyBookings retrieves the calling vendor's bookings.
func (s *Service) ListMyBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]repository.Booking, int, error) {
	profile, err := s.repo.GetProfileByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	limit, offset = clampPage(limit, offset)
	return s.repo.ListBookingsByVendor(ctx, profile.ID, limit, offset)
}

// UpdateBooking applies a partial booking update.
func (s *Service) UpdateBooking(ctx context.Context, params repository.UpdateBookingParams) (repository.Booking, error) {
	params.ServiceNote = sanitize.TextPtr(params.ServiceNote)
	return s.repo.UpdateBooking(ctx, params)
}

// AddAvailability records an availability window for the calling vendor.
func (s *Service) AddAvailability(ctx context.Context, userID uuid.UUID, params repository.CreateWindowParams) (repository.AvailabilityWindow, error) {
	if !params.EndsAt.After(params.StartsAt) {
		return repository.AvailabilityWindow{}, apperr.Validation("window must end after it starts")
	}
	profile, err := s.repo.GetProfileByUser(ctx, userID)
	if err != nil {
		return repository.AvailabilityWindow{}, err
	}
	params.VendorID = profile.ID
	return s.repo.CreateWindow(ctx, params)
}

// ListAvailability retrieves the calling vendor's windows in a range.
func (s *Service) ListAvailability(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]repository.AvailabilityWindow, error) {
	profile, err := s.repo.GetProfileByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListWindows(ctx, profile.ID, from, to)
}

// RemoveAvailability deletes one of the calling vendor's windows.
func (s *Service) RemoveAvailability(ctx context.Context, userID, windowID uuid.UUID) error {
	profile, err := s.repo.GetProfileByUser(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.DeleteWindow(ctx, profile.ID, windowID)
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
