// Package handler exposes vendor HTTP endpoints.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fashionos_backend/internal/vendors/repository"
	"fashionos_backend/internal/vendors/service"
	"fashionos_backend/internal/vendors/transport"
	"fashionos_backend/platform/httpkit"
	"fashionos_backend/platform/validator"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for vendor resources.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new vendors handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// CreateProfile creates the calling user's vendor profile.
// POST /api/v1/vendor-profiles
func (h *Handler) CreateProfile(c *gin.Context) {
	var req transport.CreateProfileRequest
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

	profile, err := h.svc.CreateProfile(c.Request.Context(), repository.CreateProfileParams{
		UserID:       identity.UserID(),
		BusinessName: req.BusinessName,
		Category:     req.Category,
		Description:  req.Description,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.FromProfile(profile))
}

// GetProfile retrieves a vendor profile.
// GET /api/v1/vendor-profiles/:id
func (h *Handler) GetProfile(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	profile, err := h.svc.GetProfile(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromProfile(profile))
}

// MyProfile retrieves the calling user's vendor profile.
// GET /api/v1/vendor-profiles/me
func (h *Handler) MyProfile(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	profile, err := h.svc.MyProfile(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromProfile(profile))
}

// ListProfiles retrieves vendor profiles with paging.
// GET /api/v1/vendor-profiles
func (h *Handler) ListProfiles(c *gin.Context) {
	profiles, total, err := h.svc.ListProfiles(c.Request.Context(),
		queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.ProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		items = append(items, transport.FromProfile(profile))
	}
	httpkit.OK(c, transport.ProfileListResponse{Items: items, Total: total})
}

// UpdateProfile applies a partial profile update.
// PATCH /api/v1/vendor-profiles/:id
func (h *Handler) UpdateProfile(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	var req transport.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	profile, err := h.svc.UpdateProfile(c.Request.Context(), repository.UpdateProfileParams{
		ID:           id,
		BusinessName: req.BusinessName,
		Category:     req.Category,
		Description:  req.Description,
		Status:       req.Status,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromProfile(profile))
}

// CreateBooking books a vendor onto an event.
// POST /api/v1/bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	var req transport.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
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
	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid vendor_id", nil)
		return
	}

	bookingDate, ok := parseOptionalTime(c, req.BookingDate, "invalid booking_date")
	if !ok {
		return
	}

	booking, err := h.svc.CreateBooking(c.Request.Context(), repository.CreateBookingParams{
		EventID:     eventID,
		VendorID:    vendorID,
		ServiceNote: req.ServiceNote,
		BookingDate: bookingDate,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.FromBooking(booking))
}

// GetBooking retrieves a booking.
// GET /api/v1/bookings/:id
func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	booking, err := h.svc.GetBooking(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromBooking(booking))
}

// ListMyBookings retrieves the calling vendor's bookings.
// GET /api/v1/bookings
func (h *Handler) ListMyBookings(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	bookings, total, err := h.svc.ListMyBookings(c.Request.Context(), identity.UserID(),
		queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		items = append(items, transport.FromBooking(booking))
	}
	httpkit.OK(c, transport.BookingListResponse{Items: items, Total: total})
}

// UpdateBooking applies a partial booking update.
// PATCH /api/v1/bookings/:id
func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	var req transport.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	bookingDate, ok := parseOptionalTime(c, req.BookingDate, "invalid booking_date")
	if !ok {
		return
	}

	booking, err := h.svc.UpdateBooking(c.Request.Context(), repository.UpdateBookingParams{
		ID:          id,
		ServiceNote: req.ServiceNote,
		Status:      req.Status,
		BookingDate: bookingDate,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromBooking(booking))
}

// AddAvailability records an availability window for the calling vendor.
// POST /api/v1/availability
func (h *Handler) AddAvailability(c *gin.Context) {
	var req transport.CreateWindowRequest
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

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid starts_at", nil)
		return
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid ends_at", nil)
		return
	}

	window, err := h.svc.AddAvailability(c.Request.Context(), identity.UserID(), repository.CreateWindowParams{
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		Available: req.Available,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.FromWindow(window))
}

// ListAvailability retrieves the calling vendor's windows in a range.
// GET /api/v1/availability
func (h *Handler) ListAvailability(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	from := time.Now().UTC()
	to := from.AddDate(0, 3, 0)
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid from", nil)
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid to", nil)
			return
		}
		to = parsed
	}

	windows, err := h.svc.ListAvailability(c.Request.Context(), identity.UserID(), from, to)
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.WindowResponse, 0, len(windows))
	for _, window := range windows {
		items = append(items, transport.FromWindow(window))
	}
	httpkit.OK(c, items)
}

// RemoveAvailability deletes one of the calling vendor's windows.
// DELETE /api/v1/availability/:id
func (h *Handler) RemoveAvailability(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if httpkit.HandleError(c, h.svc.RemoveAvailability(c.Request.Context(), identity.UserID(), id)) {
		return
	}
	httpkit.NoContent(c)
}

func parsePathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func parseOptionalTime(c *gin.Context, raw *string, msg string) (*time.Time, bool) {
	if raw == nil {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msg, nil)
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
