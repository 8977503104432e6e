package accesscontrol

import (
	"fashionos_backend/platform/httpkit"
	"fashionos_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler exposes the access resolver over HTTP so the dashboard can ask
// "can I?" before rendering actions.
type Handler struct {
	resolver *Resolver
	policies PolicySet
	val      *validator.Validator
}

// NewHandler creates the access control handler.
func NewHandler(resolver *Resolver, policies PolicySet, val *validator.Validator) *Handler {
	return &Handler{resolver: resolver, policies: policies, val: val}
}

type canRequest struct {
	Resource string  `json:"resource" validate:"required"`
	Action   string  `json:"action" validate:"required"`
	RecordID *string `json:"record_id,omitempty"`
}

// Can evaluates a single access request for the calling user.
// Anonymous callers receive a denial, not a 401, so the client can render
// the decision.
func (h *Handler) Can(c *gin.Context) {
	var req canRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, 400, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, 400, "resource and action are required", nil)
		return
	}

	request := Request{
		Resource: Resource(req.Resource),
		Action:   Action(req.Action),
	}
	if req.RecordID != nil && *req.RecordID != "" {
		recordID, err := uuid.Parse(*req.RecordID)
		if err != nil {
			httpkit.Error(c, 400, "invalid record_id", nil)
			return
		}
		request.RecordID = &recordID
	}

	principal := PrincipalFromIdentity(httpkit.GetIdentity(c))
	decision := h.resolver.CanPerform(c.Request.Context(), principal, request)
	httpkit.OK(c, decision)
}

type permissionsResponse struct {
	Role       string            `json:"role"`
	Resources  []string          `json:"resources"`
	Actions    []string          `json:"actions"`
	Conditions map[string]string `json:"conditions,omitempty"`
}

// Permissions returns the calling user's role and its policy summary.
func (h *Handler) Permissions(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	role := Role(id.Role())
	policy, ok := h.policies.For(role)
	if !ok {
		httpkit.OK(c, permissionsResponse{Role: string(role), Resources: []string{}, Actions: []string{}})
		return
	}

	if policy.AllResources {
		httpkit.OK(c, permissionsResponse{
			Role:      string(role),
			Resources: []string{"*"},
			Actions:   []string{"*"},
		})
		return
	}

	resources := make([]string, 0, len(policy.Grants))
	actionSet := make(map[string]struct{})
	conditions := make(map[string]string)
	for resource, grant := range policy.Grants {
		resources = append(resources, string(resource))
		for _, action := range grant.Actions {
			actionSet[string(action)] = struct{}{}
		}
		if grant.OwnOnly {
			conditions[string(resource)] = "own"
		}
	}

	actions := make([]string, 0, len(actionSet))
	for action := range actionSet {
		actions = append(actions, action)
	}
	if len(conditions) == 0 {
		conditions = nil
	}

	httpkit.OK(c, permissionsResponse{
		Role:       string(role),
		Resources:  resources,
		Actions:    actions,
		Conditions: conditions,
	})
}
