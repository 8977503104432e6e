// Package repository persists vendor profiles, bookings, and availability.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fashionos_backend/platform/apperr"
)

const (
	profileNotFoundMessage = "vendor profile not found"
	bookingNotFoundMessage = "booking not found"
)

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusDeclined  = "declined"
	BookingStatusCompleted = "completed"
)

// Profile is a vendor's business profile. One per user.
type Profile struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	BusinessName string
	Category     *string
	Description  *string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Booking is one vendor engagement on an event (event_vendors row).
type Booking struct {
	ID          uuid.UUID
	EventID     uuid.UUID
	VendorID    uuid.UUID
	ServiceNote *string
	Status      string
	BookingDate *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AvailabilityWindow is one block of vendor availability.
type AvailabilityWindow struct {
	ID        uuid.UUID
	VendorID  uuid.UUID
	StartsAt  time.Time
	EndsAt    time.Time
	Available bool
	CreatedAt time.Time
}

// CreateProfileParams carries a new vendor profile.
type CreateProfileParams struct {
	UserID       uuid.UUID
	BusinessName string
	Category     *string
	Description  *string
}

// UpdateProfileParams carries a partial profile update.
type UpdateProfileParams struct {
	ID           uuid.UUID
	BusinessName *string
	Category     *string
	Description  *string
	Status       *string
}

// CreateBookingParams carries a new booking.
type CreateBookingParams struct {
	EventID     uuid.UUID
	VendorID    uuid.UUID
	ServiceNote *string
	BookingDate *time.Time
}

// UpdateBookingParams carries a partial booking update.
type UpdateBookingParams struct {
	ID          uuid.UUID
	ServiceNote *string
	Status      *string
	BookingDate *time.Time
}

// CreateWindowParams carries a new availability window.
type CreateWindowParams struct {
	VendorID  uuid.UUID
	StartsAt  time.Time
	EndsAt    time.Time
	Available bool
}

const profileColumns = `id, user_id, business_name, category, description, status, created_at, updated_at`

const bookingColumns = `id, event_id, vendor_id, service_note, status, booking_date, created_at, updated_at`

// Repo implements vendor persistence with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vendors repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// CreateProfile inserts a vendor profile.
func (r *Repo) CreateProfile(ctx context.Context, params CreateProfileParams) (Profile, error) {
	query := `
		INSERT INTO vendor_profiles (id, user_id, business_name, category, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + profileColumns

	profile, err := scanProfile(r.pool.QueryRow(ctx, query,
		uuid.New(), params.UserID, params.BusinessName, params.Category, params.Description,
	))
	if err != nil {
		return Profile{}, fmt.Errorf("create vendor profile: %w", err)
	}
	return profile, nil
}

// GetProfile retrieves a vendor profile by ID.
func (r *Repo) GetProfile(ctx context.Context, id uuid.UUID) (Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM vendor_profiles WHERE id = $1`

	profile, err := scanProfile(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, apperr.NotFound(profileNotFoundMessage)
		}
		return Profile{}, fmt.Errorf("get vendor profile: %w", err)
	}
	return profile, nil
}

// GetProfileByUser retrieves the vendor profile owned by a user.
func (r *Repo) GetProfileByUser(ctx context.Context, userID uuid.UUID) (Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM vendor_profiles WHERE user_id = $1`

	profile, err := scanProfile(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, apperr.NotFound(profileNotFoundMessage)
		}
		return Profile{}, fmt.Errorf("get vendor profile by user: %w", err)
	}
	return profile, nil
}

// ListProfiles retrieves vendor profiles ordered by business name.
func (r *Repo) ListProfiles(ctx context.Context, limit, offset int) ([]Profile, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM vendor_profiles`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count vendor profiles: %w", err)
	}

	query := `
		SELECT ` + profileColumns + `
		FROM vendor_profiles
		ORDER BY business_name ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list vendor profiles: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan vendor profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate vendor profiles: %w", err)
	}

	return profiles, total, nil
}

// UpdateProfile applies a partial profile update.
func (r *Repo) UpdateProfile(ctx context.Context, params UpdateProfileParams) (Profile, error) {
	query := `
		UPDATE vendor_profiles SET
			business_name = COALESCE($2, business_name),
			category = COALESCE($3, category),
			description = COALESCE($4, description),
			status = COALESCE($5, status),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + profileColumns

	profile, err := scanProfile(r.pool.QueryRow(ctx, query,
		params.ID, params.BusinessName, params.Category, params.Description, params.Status,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, apperr.NotFound(profileNotFoundMessage)
		}
		return Profile{}, fmt.Errorf("update vendor profile: %w", err)
	}
	return profile, nil
}

// CreateBooking inserts an event_vendors row.
func (r *Repo) CreateBooking(ctx context.Context, params CreateBookingParams) (Booking, error) {
	query := `
		INSERT INTO event_vendors (id, event_id, vendor_id, service_note, status, booking_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + bookingColumns

	booking, err := scanBooking(r.pool.QueryRow(ctx, query,
		uuid.New(), params.EventID, params.VendorID, params.ServiceNote,
		BookingStatusPending, params.BookingDate,
	))
	if err != nil {
		return Booking{}, fmt.Errorf("create booking: %w", err)
	}
	return booking, nil
}

// GetBooking retrieves a booking by ID.
func (r *Repo) GetBooking(ctx context.Context, id uuid.UUID) (Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM event_vendors WHERE id = $1`

	booking, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Booking{}, apperr.NotFound(bookingNotFoundMessage)
		}
		return Booking{}, fmt.Errorf("get booking: %w", err)
	}
	return booking, nil
}

// ListBookingsByVendor retrieves a vendor's bookings, newest first.
func (r *Repo) ListBookingsByVendor(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]Booking, int, error) {
	var total int
	countQuery := `SELECT count(*) FROM event_vendors WHERE vendor_id = $1`
	if err := r.pool.QueryRow(ctx, countQuery, vendorID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	query := `
		SELECT ` + bookingColumns + `
		FROM event_vendors
		WHERE vendor_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, vendorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, total, nil
}

// UpdateBooking applies a partial booking update.
func (r *Repo) UpdateBooking(ctx context.Context, params UpdateBookingParams) (Booking, error) {
	query := `
		UPDATE event_vendors SET
			service_note = COALESCE($2, service_note),
			status = COALESCE($3, status),
			booking_date = COALESCE($4, booking_date),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + bookingColumns

	booking, err := scanBooking(r.pool.QueryRow(ctx, query,
		params.ID, params.ServiceNote, params.Status, params.BookingDate,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Booking{}, apperr.NotFound(bookingNotFoundMessage)
		}
		return Booking{}, fmt.Errorf("update booking: %w", err)
	}
	return booking, nil
}

// CreateWindow inserts an availability window.
func (r *Repo) CreateWindow(ctx context.Context, params CreateWindowParams) (AvailabilityWindow, error) {
	query := `
		INSERT INTO vendor_availability (id, vendor_id, starts_at, ends_at, is_available)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, vendor_id, starts_at, ends_at, is_available, created_at`

	var w AvailabilityWindow
	err := r.pool.QueryRow(ctx, query,
		uuid.New(), params.VendorID, params.StartsAt, params.EndsAt, params.Available,
	).Scan(&w.ID, &w.VendorID, &w.StartsAt, &w.EndsAt, &w.Available, &w.CreatedAt)
	if err != nil {
		return AvailabilityWindow{}, fmt.Errorf("create availability window: %w", err)
	}
	return w, nil
}

// ListWindows retrieves a vendor's availability windows overlapping the range.
func (r *Repo) ListWindows(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]AvailabilityWindow, error) {
	query := `
		SELECT id, vendor_id, starts_at, ends_at, is_available, created_at
		FROM vendor_availability
		WHERE vendor_id = $1 AND starts_at < $3 AND ends_at > $2
		ORDER BY starts_at ASC`

	rows, err := r.pool.Query(ctx, query, vendorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list availability windows: %w", err)
	}
	defer rows.Close()

	var windows []AvailabilityWindow
	for rows.Next() {
		var w AvailabilityWindow
		if err := rows.Scan(&w.ID, &w.VendorID, &w.StartsAt, &w.EndsAt, &w.Available, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan availability window: %w", err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate availability windows: %w", err)
	}

	return windows, nil
}

// DeleteWindow removes an availability window, scoped to its vendor.
func (r *Repo) DeleteWindow(ctx context.Context, vendorID, windowID uuid.UUID) error {
	query := `DELETE FROM vendor_availability WHERE id = $1 AND vendor_id = $2`

	tag, err := r.pool.Exec(ctx, query, windowID, vendorID)
	if err != nil {
		return fmt.Errorf("delete availability window: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("availability window not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.BusinessName, &p.Category, &p.Description,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func scanBooking(row rowScanner) (Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.EventID, &b.VendorID, &b.ServiceNote, &b.Status,
		&b.BookingDate, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}
