// Package handler exposes notification HTTP endpoints.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fashionos_backend/internal/notification/dispatch"
	"fashionos_backend/internal/notification/inapp"
	"fashionos_backend/internal/notification/sse"
	"fashionos_backend/platform/httpkit"
	"fashionos_backend/platform/validator"
)

// DispatchRequest asks for coordinators of an event to be notified.
type DispatchRequest struct {
	EventID          string `json:"event_id" validate:"required,uuid"`
	NotificationType string `json:"notification_type" validate:"required,max=50"`
}

// DispatchResponse reports how many notifications were written.
type DispatchResponse struct {
	Success           bool `json:"success"`
	NotificationsSent int  `json:"notifications_sent"`
}

// ListResponse is a paged list of a user's notifications.
type ListResponse struct {
	Items []inapp.Notification `json:"items"`
	Total int                  `json:"total"`
}

// Handler handles HTTP requests for notifications.
type Handler struct {
	dispatch *dispatch.Service
	inapp    *inapp.Repository
	sse      *sse.Service
	val      *validator.Validator
}

// New creates a new notification handler.
func New(dispatchSvc *dispatch.Service, inappRepo *inapp.Repository, sseSvc *sse.Service, val *validator.Validator) *Handler {
	return &Handler{dispatch: dispatchSvc, inapp: inappRepo, sse: sseSvc, val: val}
}

// Dispatch notifies the coordinator responsible for an event update.
// POST /api/v1/admin/notifications/dispatch
func (h *Handler) Dispatch(c *gin.Context) {
	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid event_id", nil)
		return
	}

	sent, err := h.dispatch.Dispatch(c.Request.Context(), eventID, req.NotificationType)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, DispatchResponse{Success: true, NotificationsSent: sent})
}

// List retrieves the caller's notifications, newest first.
// GET /api/v1/notifications
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	limit := queryInt(c, "limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	items, total, err := h.inapp.List(c.Request.Context(), identity.UserID(), limit, offset)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, ListResponse{Items: items, Total: total})
}

// UnreadCount returns how many unread notifications the caller has.
// GET /api/v1/notifications/unread-count
func (h *Handler) UnreadCount(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	count, err := h.inapp.CountUnread(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"unread": count})
}

// MarkRead marks one of the caller's notifications read.
// POST /api/v1/notifications/:id/read
func (h *Handler) MarkRead(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}

	if httpkit.HandleError(c, h.inapp.MarkRead(c.Request.Context(), identity.UserID(), notificationID)) {
		return
	}
	httpkit.NoContent(c)
}

// MarkAllRead marks all of the caller's notifications read.
// POST /api/v1/notifications/read-all
func (h *Handler) MarkAllRead(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if httpkit.HandleError(c, h.inapp.MarkAllRead(c.Request.Context(), identity.UserID())) {
		return
	}
	httpkit.NoContent(c)
}

// Stream holds an SSE connection open for the caller.
// GET /api/v1/notifications/stream
func (h *Handler) Stream() gin.HandlerFunc {
	return h.sse.Handler(func(c *gin.Context) (uuid.UUID, bool) {
		identity := httpkit.GetIdentity(c)
		if identity == nil || !identity.IsAuthenticated() {
			return uuid.Nil, false
		}
		return identity.UserID(), true
	})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
