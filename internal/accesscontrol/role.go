// Package accesscontrol evaluates whether a user may perform an action on a
// resource. Decisions are derived from an immutable policy set keyed by role,
// with optional ownership checks for records scoped to the acting user.
package accesscontrol

// Role is a user role known to the platform.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleOrganizer  Role = "organizer"
	RoleDesigner   Role = "designer"
	RoleModel      Role = "model"
	RoleVenue      Role = "venue"
	RoleVendor     Role = "vendor"
	RoleSponsor    Role = "sponsor"
	RoleMedia      Role = "media"
	RoleUser       Role = "user"
)

var knownRoles = map[Role]struct{}{
	RoleSuperAdmin: {},
	RoleAdmin:      {},
	RoleOrganizer:  {},
	RoleDesigner:   {},
	RoleModel:      {},
	RoleVenue:      {},
	RoleVendor:     {},
	RoleSponsor:    {},
	RoleMedia:      {},
	RoleUser:       {},
}

// ParseRole validates a raw role string against the known role set.
func ParseRole(raw string) (Role, bool) {
	role := Role(raw)
	_, ok := knownRoles[role]
	return role, ok
}

// Resource identifies something access is requested to.
type Resource string

const (
	ResourceDashboard      Resource = "dashboard"
	ResourceEvents         Resource = "events"
	ResourceUsers          Resource = "users"
	ResourceVenues         Resource = "venues"
	ResourceVendors        Resource = "vendors"
	ResourceSponsors       Resource = "sponsors"
	ResourceAnalytics      Resource = "analytics"
	ResourceModels         Resource = "models"
	ResourceVendorProfiles Resource = "vendor_profiles"
	ResourceBookings       Resource = "bookings"
	ResourceAvailability   Resource = "availability"
	ResourceSponsorProfile Resource = "sponsor_profiles"
	ResourceSponsorships   Resource = "sponsorships"
)

// Action is the operation requested on a resource.
type Action string

const (
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionShow   Action = "show"
)
