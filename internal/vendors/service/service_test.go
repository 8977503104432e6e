package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"fashionos_backend/internal/vendors/repository"
	"fashionos_backend/platform/apperr"
)

type fakeRepo struct {
	profilesByUser map[uuid.UUID]repository.Profile
	bookings       map[uuid.UUID][]repository.Booking
	windows        []repository.AvailabilityWindow
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		profilesByUser: make(map[uuid.UUID]repository.Profile),
		bookings:       make(map[uuid.UUID][]repository.Booking),
	}
}

func (f *fakeRepo) CreateProfile(_ context.Context, params repository.CreateProfileParams) (repository.Profile, error) {
	profile := repository.Profile{
		ID:           uuid.New(),
		UserID:       params.UserID,
		BusinessName: params.BusinessName,
		Status:       "pending",
	}
	f.profilesByUser[params.UserID] = profile
	return profile, nil
}

func (f *fakeRepo) GetProfile(_ context.Context, id uuid.UUID) (repository.Profile, error) {
	for _, p := range f.profilesByUser {
		if p.ID == id {
			return p, nil
		}
	}
	return repository.Profile{}, apperr.NotFound("vendor profile not found")
}

func (f *fakeRepo) GetProfileByUser(_ context.Context, userID uuid.UUID) (repository.Profile, error) {
	if p, ok := f.profilesByUser[userID]; ok {
		return p, nil
	}
	return repository.Profile{}, apperr.NotFound("vendor profile not found")
}

func (f *fakeRepo) ListProfiles(_ context.Context, _, _ int) ([]repository.Profile, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) UpdateProfile(_ context.Context, _ repository.UpdateProfileParams) (repository.Profile, error) {
	return repository.Profile{}, apperr.NotFound("vendor profile not found")
}

func (f *fakeRepo) CreateBooking(_ context.Context, params repository.CreateBookingParams) (repository.Booking, error) {
	booking := repository.Booking{
		ID:       uuid.New(),
		EventID:  params.EventID,
		VendorID: params.VendorID,
		Status:   repository.BookingStatusPending,
	}
	f.bookings[params.VendorID] = append(f.bookings[params.VendorID], booking)
	return booking, nil
}

func (f *fakeRepo) GetBooking(_ context.Context, _ uuid.UUID) (repository.Booking, error) {
	return repository.Booking{}, apperr.NotFound("booking not found")
}

func (f *fakeRepo) ListBookingsByVendor(_ context.Context, vendorID uuid.UUID, _, _ int) ([]repository.Booking, int, error) {
	list := f.bookings[vendorID]
	return list, len(list), nil
}

func (f *fakeRepo) UpdateBooking(_ context.Context, _ repository.UpdateBookingParams) (repository.Booking, error) {
	return repository.Booking{}, apperr.NotFound("booking not found")
}

func (f *fakeRepo) CreateWindow(_ context.Context, params repository.CreateWindowParams) (repository.AvailabilityWindow, error) {
	window := repository.AvailabilityWindow{
		ID:        uuid.New(),
		VendorID:  params.VendorID,
		StartsAt:  params.StartsAt,
		EndsAt:    params.EndsAt,
		Available: params.Available,
	}
	f.windows = append(f.windows, window)
	return window, nil
}

func (f *fakeRepo) ListWindows(_ context.Context, vendorID uuid.UUID, _, _ time.Time) ([]repository.AvailabilityWindow, error) {
	var out []repository.AvailabilityWindow
	for _, w := range f.windows {
		if w.VendorID == vendorID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteWindow(_ context.Context, vendorID, windowID uuid.UUID) error {
	for i, w := range f.windows {
		if w.ID == windowID && w.VendorID == vendorID {
			f.windows = append(f.windows[:i], f.windows[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("availability window not found")
}

func TestAddAvailabilityResolvesVendorProfile(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, nil)
	userID := uuid.New()

	profile, err := svc.CreateProfile(context.Background(), repository.CreateProfileParams{
		UserID:       userID,
		BusinessName: "Atelier Nord",
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	start := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	window, err := svc.AddAvailability(context.Background(), userID, repository.CreateWindowParams{
		StartsAt:  start,
		EndsAt:    start.Add(8 * time.Hour),
		Available: true,
	})
	if err != nil {
		t.Fatalf("AddAvailability: %v", err)
	}
	if window.VendorID != profile.ID {
		t.Errorf("window vendor = %s, want %s", window.VendorID, profile.ID)
	}
}

func TestAddAvailabilityRejectsInvertedWindow(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, nil)
	userID := uuid.New()
	if _, err := svc.CreateProfile(context.Background(), repository.CreateProfileParams{
		UserID:       userID,
		BusinessName: "Atelier Nord",
	}); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	start := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	_, err := svc.AddAvailability(context.Background(), userID, repository.CreateWindowParams{
		StartsAt: start,
		EndsAt:   start.Add(-time.Hour),
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
	if len(repo.windows) != 0 {
		t.Error("inverted window persisted")
	}
}

func TestListMyBookingsScopedToOwnVendor(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, nil)
	userID := uuid.New()

	profile, err := svc.CreateProfile(context.Background(), repository.CreateProfileParams{
		UserID:       userID,
		BusinessName: "Lumen Lighting",
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	otherVendor := uuid.New()
	if _, err := svc.CreateBooking(context.Background(), repository.CreateBookingParams{
		EventID:  uuid.New(),
		VendorID: profile.ID,
	}); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if _, err := svc.CreateBooking(context.Background(), repository.CreateBookingParams{
		EventID:  uuid.New(),
		VendorID: otherVendor,
	}); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	bookings, total, err := svc.ListMyBookings(context.Background(), userID, 20, 0)
	if err != nil {
		t.Fatalf("ListMyBookings: %v", err)
	}
	if total != 1 || len(bookings) != 1 {
		t.Fatalf("got %d bookings, want 1", len(bookings))
	}
	if bookings[0].VendorID != profile.ID {
		t.Errorf("booking vendor = %s, want %s", bookings[0].VendorID, profile.ID)
	}
}

func TestListMyBookingsWithoutProfile(t *testing.T) {
	svc := New(newFakeRepo(), nil)

	_, _, err := svc.ListMyBookings(context.Background(), uuid.New(), 20, 0)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
