package accesscontrol

// Grant describes what a role may do with a single resource.
type Grant struct {
	// AllActions permits every action on the resource.
	AllActions bool
	// Actions lists the permitted actions when AllActions is false.
	Actions []Action
	// OwnOnly restricts record-level actions to records owned by the user.
	OwnOnly bool
}

// allows reports whether the grant permits the action.
func (g Grant) allows(action Action) bool {
	if g.AllActions {
		return true
	}
	for _, a := range g.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// Policy is the full set of grants for one role.
type Policy struct {
	// AllResources permits every action on every resource (super admin).
	AllResources bool
	// Grants maps each accessible resource to its grant.
	Grants map[Resource]Grant
}

// PolicySet is an immutable role-to-policy table. Build one with
// NewPolicySet or DefaultPolicySet and share it freely; lookups never
// mutate state.
type PolicySet struct {
	byRole map[Role]Policy
}

// NewPolicySet copies the given policies into an immutable set.
func NewPolicySet(policies map[Role]Policy) PolicySet {
	byRole := make(map[Role]Policy, len(policies))
	for role, policy := range policies {
		grants := make(map[Resource]Grant, len(policy.Grants))
		for resource, grant := range policy.Grants {
			grant.Actions = append([]Action(nil), grant.Actions...)
			grants[resource] = grant
		}
		policy.Grants = grants
		byRole[role] = policy
	}
	return PolicySet{byRole: byRole}
}

// For returns the policy for a role. ok is false when the role has no
// policy entry, which callers must treat as a denial.
func (ps PolicySet) For(role Role) (Policy, bool) {
	policy, ok := ps.byRole[role]
	return policy, ok
}

// Per-role action lists. Each role gets one action list applied uniformly
// across its resources; ownership conditions narrow access per resource.
var (
	crudActions      = []Action{ActionList, ActionCreate, ActionEdit, ActionDelete, ActionShow}
	organizerActions = []Action{ActionList, ActionCreate, ActionEdit, ActionShow}
	selfServeActions = []Action{ActionList, ActionEdit, ActionShow}
	readActions      = []Action{ActionList, ActionShow}
)

// DefaultPolicySet returns the built-in role permission table.
// Roles without an entry (designer, model, venue, media) are denied outright.
func DefaultPolicySet() PolicySet {
	return NewPolicySet(map[Role]Policy{
		RoleSuperAdmin: {AllResources: true},
		RoleAdmin: {Grants: map[Resource]Grant{
			ResourceDashboard: {Actions: crudActions},
			ResourceEvents:    {Actions: crudActions},
			ResourceUsers:     {Actions: crudActions},
			ResourceVenues:    {Actions: crudActions},
			ResourceVendors:   {Actions: crudActions},
			ResourceSponsors:  {Actions: crudActions},
			ResourceAnalytics: {Actions: crudActions},
		}},
		RoleOrganizer: {Grants: map[Resource]Grant{
			ResourceDashboard: {Actions: organizerActions},
			ResourceEvents:    {Actions: organizerActions, OwnOnly: true},
			ResourceVenues:    {Actions: organizerActions},
			ResourceVendors:   {Actions: organizerActions},
			ResourceModels:    {Actions: organizerActions},
		}},
		RoleVendor: {Grants: map[Resource]Grant{
			ResourceDashboard:      {Actions: selfServeActions},
			ResourceVendorProfiles: {Actions: selfServeActions, OwnOnly: true},
			ResourceBookings:       {Actions: selfServeActions, OwnOnly: true},
			ResourceAvailability:   {Actions: selfServeActions},
		}},
		RoleSponsor: {Grants: map[Resource]Grant{
			ResourceDashboard:      {Actions: selfServeActions},
			ResourceSponsorProfile: {Actions: selfServeActions, OwnOnly: true},
			ResourceSponsorships:   {Actions: selfServeActions, OwnOnly: true},
			ResourceAnalytics:      {Actions: selfServeActions},
		}},
		RoleUser: {Grants: map[Resource]Grant{
			ResourceDashboard: {Actions: readActions},
			ResourceEvents:    {Actions: readActions},
		}},
	})
}
