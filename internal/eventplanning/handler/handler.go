// Package handler exposes event planning HTTP endpoints.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fashionos_backend/internal/eventplanning/repository"
	"fashionos_backend/internal/eventplanning/service"
	"fashionos_backend/internal/eventplanning/transport"
	"fashionos_backend/platform/httpkit"
	"fashionos_backend/platform/validator"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for events and planning rosters.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new event planning handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// CreateEvent creates an event with the caller as lead organizer.
// POST /api/v1/events
func (h *Handler) CreateEvent(c *gin.Context) {
	var req transport.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	eventDate, ok := parseOptionalTime(c, req.EventDate)
	if !ok {
		return
	}

	event, err := h.svc.CreateEvent(c.Request.Context(), repository.CreateEventParams{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   eventDate,
		Venue:       req.Venue,
	}, identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.FromEvent(event))
}

// GetEvent retrieves a single event.
// GET /api/v1/events/:id
func (h *Handler) GetEvent(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	event, err := h.svc.GetEvent(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromEvent(event))
}

// ListEvents retrieves events with an optional status filter.
// GET /api/v1/events
func (h *Handler) ListEvents(c *gin.Context) {
	events, total, err := h.svc.ListEvents(c.Request.Context(),
		c.Query("status"), queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.EventResponse, 0, len(events))
	for _, event := range events {
		items = append(items, transport.FromEvent(event))
	}
	httpkit.OK(c, transport.EventListResponse{Items: items, Total: total})
}

// UpdateEvent applies a partial event update.
// PATCH /api/v1/events/:id
func (h *Handler) UpdateEvent(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	var req transport.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	eventDate, ok := parseOptionalTime(c, req.EventDate)
	if !ok {
		return
	}

	event, err := h.svc.UpdateEvent(c.Request.Context(), repository.UpdateEventParams{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		EventDate:   eventDate,
		Venue:       req.Venue,
		Status:      req.Status,
	}, identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromEvent(event))
}

// DeleteEvent removes an event.
// DELETE /api/v1/events/:id
func (h *Handler) DeleteEvent(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteEvent(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// GetPlanning retrieves the coordinator roster for an event.
// GET /api/v1/events/:id/planning
func (h *Handler) GetPlanning(c *gin.Context) {
	eventID, ok := parsePathID(c)
	if !ok {
		return
	}

	planning, err := h.svc.GetPlanning(c.Request.Context(), eventID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromPlanning(planning))
}

// UpdatePlanning reassigns coordinator roles on an event.
// PATCH /api/v1/events/:id/planning
func (h *Handler) UpdatePlanning(c *gin.Context) {
	eventID, ok := parsePathID(c)
	if !ok {
		return
	}

	var req transport.UpdatePlanningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	params := repository.UpdatePlanningParams{EventID: eventID}
	for _, f := range []struct {
		raw  *string
		dest **uuid.UUID
	}{
		{req.LeadOrganizerID, &params.LeadOrganizerID},
		{req.VenueCoordinatorID, &params.VenueCoordinatorID},
		{req.VendorManagerID, &params.VendorManagerID},
		{req.ModelCoordinatorID, &params.ModelCoordinatorID},
		{req.SponsorManagerID, &params.SponsorManagerID},
	} {
		id, ok := parseOptionalUUID(c, f.raw)
		if !ok {
			return
		}
		*f.dest = id
	}

	planning, err := h.svc.UpdatePlanning(c.Request.Context(), params, identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromPlanning(planning))
}

func parsePathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func parseOptionalUUID(c *gin.Context, raw *string) (*uuid.UUID, bool) {
	if raw == nil {
		return nil, true
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return nil, false
	}
	return &id, true
}

func parseOptionalTime(c *gin.Context, raw *string) (*time.Time, bool) {
	if raw == nil {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid event_date", nil)
		return nil, false
	}
	return &t, true
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
