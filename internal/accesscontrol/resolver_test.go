package accesscontrol

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type fakeOwnershipReader struct {
	eventOrganizers map[uuid.UUID]uuid.UUID
	vendorProfiles  map[uuid.UUID]uuid.UUID // user -> profile
	sponsorUsers    map[uuid.UUID]uuid.UUID // sponsor -> user
	bookingVendors  map[uuid.UUID]uuid.UUID // booking -> vendor profile
	err             error
}

func (f *fakeOwnershipReader) EventLeadOrganizer(_ context.Context, eventID uuid.UUID) (uuid.UUID, bool, error) {
	if f.err != nil {
		return uuid.Nil, false, f.err
	}
	id, ok := f.eventOrganizers[eventID]
	return id, ok, nil
}

func (f *fakeOwnershipReader) VendorProfileIDByUser(_ context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	if f.err != nil {
		return uuid.Nil, false, f.err
	}
	id, ok := f.vendorProfiles[userID]
	return id, ok, nil
}

func (f *fakeOwnershipReader) SponsorUserID(_ context.Context, sponsorID uuid.UUID) (uuid.UUID, bool, error) {
	if f.err != nil {
		return uuid.Nil, false, f.err
	}
	id, ok := f.sponsorUsers[sponsorID]
	return id, ok, nil
}

func (f *fakeOwnershipReader) BookingVendorID(_ context.Context, bookingID uuid.UUID) (uuid.UUID, bool, error) {
	if f.err != nil {
		return uuid.Nil, false, f.err
	}
	id, ok := f.bookingVendors[bookingID]
	return id, ok, nil
}

func newTestResolver(reader OwnershipReader) *Resolver {
	return NewResolver(DefaultPolicySet(), DefaultOwnership(reader), nil)
}

func authenticated(role Role, userID uuid.UUID) Principal {
	return Principal{UserID: userID, Role: role, Authenticated: true}
}

func TestCanPerformDenyReasons(t *testing.T) {
	userID := uuid.New()
	resolver := newTestResolver(&fakeOwnershipReader{})

	tests := []struct {
		name      string
		principal Principal
		req       Request
		reason    string
	}{
		{
			name:      "unauthenticated",
			principal: Principal{},
			req:       Request{Resource: ResourceEvents, Action: ActionList},
			reason:    ReasonNotAuthenticated,
		},
		{
			name:      "unknown role string",
			principal: authenticated(Role("superuser"), userID),
			req:       Request{Resource: ResourceEvents, Action: ActionList},
			reason:    ReasonInvalidRole,
		},
		{
			name:      "known role without policy",
			principal: authenticated(RoleDesigner, userID),
			req:       Request{Resource: ResourceDashboard, Action: ActionList},
			reason:    ReasonInvalidRole,
		},
		{
			name:      "resource outside policy",
			principal: authenticated(RoleUser, userID),
			req:       Request{Resource: ResourceUsers, Action: ActionList},
			reason:    ReasonNoResourceAccess,
		},
		{
			name:      "action outside policy",
			principal: authenticated(RoleUser, userID),
			req:       Request{Resource: ResourceEvents, Action: ActionDelete},
			reason:    ReasonActionNotAllowed,
		},
		{
			name:      "organizer cannot delete events",
			principal: authenticated(RoleOrganizer, userID),
			req:       Request{Resource: ResourceEvents, Action: ActionDelete},
			reason:    ReasonActionNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := resolver.CanPerform(context.Background(), tt.principal, tt.req)
			if decision.Allowed {
				t.Fatalf("expected denial, got allow")
			}
			if decision.Reason != tt.reason {
				t.Errorf("reason = %q, want %q", decision.Reason, tt.reason)
			}
		})
	}
}

func TestCanPerformSuperAdminBypassesAllChecks(t *testing.T) {
	resolver := newTestResolver(&fakeOwnershipReader{err: errors.New("db down")})
	recordID := uuid.New()

	decision := resolver.CanPerform(context.Background(),
		authenticated(RoleSuperAdmin, uuid.New()),
		Request{Resource: ResourceUsers, Action: ActionDelete, RecordID: &recordID},
	)
	if !decision.Allowed {
		t.Fatalf("super_admin denied: %q", decision.Reason)
	}
	if decision.Reason != "" {
		t.Errorf("allow decision should carry no reason, got %q", decision.Reason)
	}
}

func TestCanPerformOrganizerEventOwnership(t *testing.T) {
	organizerID := uuid.New()
	ownEvent := uuid.New()
	otherEvent := uuid.New()
	reader := &fakeOwnershipReader{
		eventOrganizers: map[uuid.UUID]uuid.UUID{
			ownEvent:   organizerID,
			otherEvent: uuid.New(),
		},
	}
	resolver := newTestResolver(reader)
	principal := authenticated(RoleOrganizer, organizerID)

	decision := resolver.CanPerform(context.Background(), principal,
		Request{Resource: ResourceEvents, Action: ActionEdit, RecordID: &ownEvent})
	if !decision.Allowed {
		t.Fatalf("own event denied: %q", decision.Reason)
	}

	decision = resolver.CanPerform(context.Background(), principal,
		Request{Resource: ResourceEvents, Action: ActionEdit, RecordID: &otherEvent})
	if decision.Allowed {
		t.Fatal("expected denial for another organizer's event")
	}
	if decision.Reason != ReasonNotOwner {
		t.Errorf("reason = %q, want %q", decision.Reason, ReasonNotOwner)
	}

	// Collection-level checks skip ownership.
	decision = resolver.CanPerform(context.Background(), principal,
		Request{Resource: ResourceEvents, Action: ActionList})
	if !decision.Allowed {
		t.Fatalf("list denied: %q", decision.Reason)
	}
}

func TestCanPerformVendorOwnership(t *testing.T) {
	vendorUserID := uuid.New()
	profileID := uuid.New()
	ownBooking := uuid.New()
	otherBooking := uuid.New()
	reader := &fakeOwnershipReader{
		vendorProfiles: map[uuid.UUID]uuid.UUID{vendorUserID: profileID},
		bookingVendors: map[uuid.UUID]uuid.UUID{
			ownBooking:   profileID,
			otherBooking: uuid.New(),
		},
	}
	resolver := newTestResolver(reader)
	principal := authenticated(RoleVendor, vendorUserID)

	decision := resolver.CanPerform(context.Background(), principal,
		Request{Resource: ResourceVendorProfiles, Action: ActionEdit, RecordID: &profileID})
	if !decision.Allowed {
		t.Fatalf("own profile denied: %q", decision.Reason)
	}

	decision = resolver.CanPerform(context.Background(), principal,
		Request{Resource: ResourceBookings, Action: ActionShow, RecordID: &ownBooking})
	if !decision.Allowed {
		t.Fatalf("own booking denied: %q", decision.Reason)
	}

	decision = resolver.CanPerform(context.Background(), principal,
		Request{Resource: ResourceBookings, Action: ActionShow, RecordID: &otherBooking})
	if decision.Allowed {
		t.Fatal("expected denial for another vendor's booking")
	}
	if decision.Reason != ReasonNotOwner {
		t.Errorf("reason = %q, want %q", decision.Reason, ReasonNotOwner)
	}
}

func TestCanPerformSponsorOwnership(t *testing.T) {
	sponsorUserID := uuid.New()
	sponsorID := uuid.New()
	reader := &fakeOwnershipReader{
		sponsorUsers: map[uuid.UUID]uuid.UUID{sponsorID: sponsorUserID},
	}
	resolver := newTestResolver(reader)

	decision := resolver.CanPerform(context.Background(),
		authenticated(RoleSponsor, sponsorUserID),
		Request{Resource: ResourceSponsorProfile, Action: ActionEdit, RecordID: &sponsorID})
	if !decision.Allowed {
		t.Fatalf("own sponsor profile denied: %q", decision.Reason)
	}

	decision = resolver.CanPerform(context.Background(),
		authenticated(RoleSponsor, uuid.New()),
		Request{Resource: ResourceSponsorProfile, Action: ActionEdit, RecordID: &sponsorID})
	if decision.Allowed {
		t.Fatal("expected denial for another sponsor's profile")
	}
}

func TestCanPerformOwnershipLookupFailureFailsClosed(t *testing.T) {
	eventID := uuid.New()
	resolver := newTestResolver(&fakeOwnershipReader{err: errors.New("connection refused")})

	decision := resolver.CanPerform(context.Background(),
		authenticated(RoleOrganizer, uuid.New()),
		Request{Resource: ResourceEvents, Action: ActionEdit, RecordID: &eventID})
	if decision.Allowed {
		t.Fatal("expected fail-closed denial on lookup error")
	}
	if decision.Reason != ReasonCheckError {
		t.Errorf("reason = %q, want %q", decision.Reason, ReasonCheckError)
	}
}

func TestCanPerformMissingPlanningRecordDeniesOwnership(t *testing.T) {
	resolver := newTestResolver(&fakeOwnershipReader{})
	eventID := uuid.New()

	decision := resolver.CanPerform(context.Background(),
		authenticated(RoleOrganizer, uuid.New()),
		Request{Resource: ResourceEvents, Action: ActionEdit, RecordID: &eventID})
	if decision.Allowed {
		t.Fatal("expected denial when no planning record exists")
	}
	if decision.Reason != ReasonNotOwner {
		t.Errorf("reason = %q, want %q", decision.Reason, ReasonNotOwner)
	}
}
