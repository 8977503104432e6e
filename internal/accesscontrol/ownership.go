package accesscontrol

import (
	"context"

	"github.com/google/uuid"
)

// OwnershipReader resolves the database lookups behind ownership checks.
// The pgx implementation lives in the repository subpackage; tests supply
// fakes.
type OwnershipReader interface {
	// EventLeadOrganizer returns the lead organizer for an event's planning
	// record, or ok=false when no planning record exists.
	EventLeadOrganizer(ctx context.Context, eventID uuid.UUID) (uuid.UUID, bool, error)
	// VendorProfileIDByUser returns the vendor profile owned by the user,
	// or ok=false when the user has none.
	VendorProfileIDByUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error)
	// SponsorUserID returns the user behind a sponsor record, or ok=false
	// when the sponsor does not exist.
	SponsorUserID(ctx context.Context, sponsorID uuid.UUID) (uuid.UUID, bool, error)
	// BookingVendorID returns the vendor profile a booking belongs to, or
	// ok=false when the booking does not exist.
	BookingVendorID(ctx context.Context, bookingID uuid.UUID) (uuid.UUID, bool, error)
}

// DefaultOwnership builds the resource-to-strategy table used by the
// resolver. Each strategy is scoped to the role the ownership condition was
// written for; any other role fails the check.
func DefaultOwnership(reader OwnershipReader) map[Resource]OwnershipFunc {
	return map[Resource]OwnershipFunc{
		ResourceEvents: func(ctx context.Context, recordID uuid.UUID, p Principal) (bool, error) {
			if p.Role != RoleOrganizer {
				return false, nil
			}
			organizerID, ok, err := reader.EventLeadOrganizer(ctx, recordID)
			if err != nil || !ok {
				return false, err
			}
			return organizerID == p.UserID, nil
		},
		ResourceVendorProfiles: func(ctx context.Context, recordID uuid.UUID, p Principal) (bool, error) {
			if p.Role != RoleVendor {
				return false, nil
			}
			profileID, ok, err := reader.VendorProfileIDByUser(ctx, p.UserID)
			if err != nil || !ok {
				return false, err
			}
			return profileID == recordID, nil
		},
		ResourceSponsorProfile: func(ctx context.Context, recordID uuid.UUID, p Principal) (bool, error) {
			if p.Role != RoleSponsor {
				return false, nil
			}
			userID, ok, err := reader.SponsorUserID(ctx, recordID)
			if err != nil || !ok {
				return false, err
			}
			return userID == p.UserID, nil
		},
		ResourceBookings: func(ctx context.Context, recordID uuid.UUID, p Principal) (bool, error) {
			if p.Role != RoleVendor {
				return false, nil
			}
			bookingVendorID, ok, err := reader.BookingVendorID(ctx, recordID)
			if err != nil || !ok {
				return false, err
			}
			profileID, ok, err := reader.VendorProfileIDByUser(ctx, p.UserID)
			if err != nil || !ok {
				return false, err
			}
			return bookingVendorID == profileID, nil
		},
	}
}
