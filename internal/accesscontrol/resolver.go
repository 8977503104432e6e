package accesscontrol

import (
	"context"

	"fashionos_backend/platform/logger"

	"github.com/google/uuid"
)

// Deny reasons returned to clients. These are part of the API contract;
// the dashboard matches on them verbatim.
const (
	ReasonNotAuthenticated = "Not authenticated"
	ReasonInvalidRole      = "Invalid user role"
	ReasonNoResourceAccess = "No access to this resource"
	ReasonActionNotAllowed = "Cannot perform this action"
	ReasonNotOwner         = "You can only access your own records"
	ReasonCheckError       = "Error checking permissions"
)

// Principal is the acting user as seen by the resolver.
type Principal struct {
	UserID        uuid.UUID
	Role          Role
	Authenticated bool
}

// Request describes one access check. RecordID is nil for collection-level
// checks (list, create); ownership conditions only apply when it is set.
type Request struct {
	Resource Resource
	Action   Action
	RecordID *uuid.UUID
}

// Decision is the outcome of an access check. Reason is set only on denial.
type Decision struct {
	Allowed bool   `json:"can"`
	Reason  string `json:"reason,omitempty"`
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// OwnershipFunc reports whether the principal owns the given record.
type OwnershipFunc func(ctx context.Context, recordID uuid.UUID, principal Principal) (bool, error)

// Resolver evaluates access requests against an immutable policy set.
// Any error during ownership resolution denies the request.
type Resolver struct {
	policies  PolicySet
	ownership map[Resource]OwnershipFunc
	log       *logger.Logger
}

// NewResolver builds a resolver over the given policies and ownership
// strategies. The ownership map is keyed by resource; resources with an
// OwnOnly grant but no strategy fail ownership checks.
func NewResolver(policies PolicySet, ownership map[Resource]OwnershipFunc, log *logger.Logger) *Resolver {
	strategies := make(map[Resource]OwnershipFunc, len(ownership))
	for resource, fn := range ownership {
		strategies[resource] = fn
	}
	return &Resolver{
		policies:  policies,
		ownership: strategies,
		log:       log,
	}
}

// CanPerform evaluates one access request. The checks run in a fixed order:
// authentication, role validity, resource access, action access, ownership.
// The first failing check determines the deny reason.
func (r *Resolver) CanPerform(ctx context.Context, principal Principal, req Request) Decision {
	decision := r.evaluate(ctx, principal, req)
	if r.log != nil {
		r.log.AccessDecision(
			principal.UserID.String(), string(principal.Role),
			string(req.Resource), string(req.Action),
			decision.Allowed, decision.Reason,
		)
	}
	return decision
}

func (r *Resolver) evaluate(ctx context.Context, principal Principal, req Request) Decision {
	if !principal.Authenticated {
		return deny(ReasonNotAuthenticated)
	}

	if _, ok := ParseRole(string(principal.Role)); !ok {
		return deny(ReasonInvalidRole)
	}

	policy, ok := r.policies.For(principal.Role)
	if !ok {
		return deny(ReasonInvalidRole)
	}

	if policy.AllResources {
		return allow()
	}

	grant, ok := policy.Grants[req.Resource]
	if !ok {
		return deny(ReasonNoResourceAccess)
	}

	if !grant.allows(req.Action) {
		return deny(ReasonActionNotAllowed)
	}

	if grant.OwnOnly && req.RecordID != nil {
		owns, err := r.checkOwnership(ctx, req.Resource, *req.RecordID, principal)
		if err != nil {
			if r.log != nil {
				r.log.Error("ownership check failed",
					"resource", string(req.Resource),
					"record_id", req.RecordID.String(),
					"error", err.Error(),
				)
			}
			return deny(ReasonCheckError)
		}
		if !owns {
			return deny(ReasonNotOwner)
		}
	}

	return allow()
}

func (r *Resolver) checkOwnership(ctx context.Context, resource Resource, recordID uuid.UUID, principal Principal) (bool, error) {
	fn, ok := r.ownership[resource]
	if !ok {
		// An OwnOnly grant without a strategy can never prove ownership.
		return false, nil
	}
	return fn(ctx, recordID, principal)
}
