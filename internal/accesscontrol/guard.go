package accesscontrol

import (
	"net/http"

	"fashionos_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PrincipalFromIdentity converts an HTTP identity into a resolver principal.
func PrincipalFromIdentity(id httpkit.Identity) Principal {
	if id == nil || !id.IsAuthenticated() {
		return Principal{}
	}
	return Principal{
		UserID:        id.UserID(),
		Role:          Role(id.Role()),
		Authenticated: true,
	}
}

// Guard returns middleware that enforces an access decision before the
// handler runs. When idParam names a path parameter, its value is resolved
// as the record ID so ownership conditions apply.
func (m *Module) Guard(resource, action, idParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFromIdentity(httpkit.GetIdentity(c))

		req := Request{Resource: Resource(resource), Action: Action(action)}
		if idParam != "" {
			raw := c.Param(idParam)
			recordID, err := uuid.Parse(raw)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
				return
			}
			req.RecordID = &recordID
		}

		decision := m.resolver.CanPerform(c.Request.Context(), principal, req)
		if decision.Allowed {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(statusForReason(decision.Reason), gin.H{"error": decision.Reason})
	}
}

func statusForReason(reason string) int {
	switch reason {
	case ReasonNotAuthenticated:
		return http.StatusUnauthorized
	case ReasonCheckError:
		return http.StatusInternalServerError
	default:
		return http.StatusForbidden
	}
}
