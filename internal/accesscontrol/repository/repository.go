// Package repository implements the database lookups behind ownership checks.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository resolves ownership lookups against Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new ownership repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EventLeadOrganizer returns the lead organizer from the event's planning record.
func (r *Repository) EventLeadOrganizer(ctx context.Context, eventID uuid.UUID) (uuid.UUID, bool, error) {
	const query = `
		SELECT lead_organizer_id
		FROM event_planning
		WHERE event_id = $1`

	var organizerID *uuid.UUID
	err := r.pool.QueryRow(ctx, query, eventID).Scan(&organizerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("query event lead organizer: %w", err)
	}
	if organizerID == nil {
		return uuid.Nil, false, nil
	}
	return *organizerID, true, nil
}

// VendorProfileIDByUser returns the vendor profile owned by the user.
func (r *Repository) VendorProfileIDByUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	const query = `
		SELECT id
		FROM vendor_profiles
		WHERE user_id = $1`

	var profileID uuid.UUID
	err := r.pool.QueryRow(ctx, query, userID).Scan(&profileID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("query vendor profile by user: %w", err)
	}
	return profileID, true, nil
}

// SponsorUserID returns the user behind a sponsor record.
func (r *Repository) SponsorUserID(ctx context.Context, sponsorID uuid.UUID) (uuid.UUID, bool, error) {
	const query = `
		SELECT user_id
		FROM sponsors
		WHERE id = $1`

	var userID uuid.UUID
	err := r.pool.QueryRow(ctx, query, sponsorID).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("query sponsor user: %w", err)
	}
	return userID, true, nil
}

// BookingVendorID returns the vendor profile a booking belongs to.
func (r *Repository) BookingVendorID(ctx context.Context, bookingID uuid.UUID) (uuid.UUID, bool, error) {
	const query = `
		SELECT vendor_id
		FROM event_vendors
		WHERE id = $1`

	var vendorID uuid.UUID
	err := r.pool.QueryRow(ctx, query, bookingID).Scan(&vendorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("query booking vendor: %w", err)
	}
	return vendorID, true, nil
}
