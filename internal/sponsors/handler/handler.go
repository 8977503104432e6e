// Package handler exposes sponsor HTTP endpoints.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fashionos_backend/internal/sponsors/repository"
	"fashionos_backend/internal/sponsors/service"
	"fashionos_backend/internal/sponsors/transport"
	"fashionos_backend/platform/httpkit"
	"fashionos_backend/platform/validator"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for sponsor resources.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new sponsors handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// CreateSponsor creates the calling user's sponsor profile.
// POST /api/v1/sponsor-profiles
func (h *Handler) CreateSponsor(c *gin.Context) {
	var req transport.CreateSponsorRequest
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

	sponsor, err := h.svc.CreateSponsor(c.Request.Context(), repository.CreateSponsorParams{
		UserID:      identity.UserID(),
		CompanyName: req.CompanyName,
		Tier:        req.Tier,
		Industry:    req.Industry,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.FromSponsor(sponsor))
}

// GetSponsor retrieves a sponsor profile.
// GET /api/v1/sponsor-profiles/:id
func (h *Handler) GetSponsor(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	sponsor, err := h.svc.GetSponsor(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromSponsor(sponsor))
}

// MySponsor retrieves the calling user's sponsor profile.
// GET /api/v1/sponsor-profiles/me
func (h *Handler) MySponsor(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	sponsor, err := h.svc.MySponsor(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromSponsor(sponsor))
}

// ListSponsors retrieves sponsor profiles with paging.
// GET /api/v1/sponsor-profiles
func (h *Handler) ListSponsors(c *gin.Context) {
	sponsors, total, err := h.svc.ListSponsors(c.Request.Context(),
		queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.SponsorResponse, 0, len(sponsors))
	for _, sponsor := range sponsors {
		items = append(items, transport.FromSponsor(sponsor))
	}
	httpkit.OK(c, transport.SponsorListResponse{Items: items, Total: total})
}

// UpdateSponsor applies a partial sponsor update.
// PATCH /api/v1/sponsor-profiles/:id
func (h *Handler) UpdateSponsor(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	var req transport.UpdateSponsorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	sponsor, err := h.svc.UpdateSponsor(c.Request.Context(), repository.UpdateSponsorParams{
		ID:          id,
		CompanyName: req.CompanyName,
		Tier:        req.Tier,
		Industry:    req.Industry,
		Status:      req.Status,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromSponsor(sponsor))
}

// CreateSponsorship records a new agreement.
// POST /api/v1/sponsorships
func (h *Handler) CreateSponsorship(c *gin.Context) {
	var req transport.CreateSponsorshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	sponsorID, err := uuid.Parse(req.SponsorID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid sponsor_id", nil)
		return
	}
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid event_id", nil)
		return
	}

	sponsorship, err := h.svc.CreateSponsorship(c.Request.Context(), repository.CreateSponsorshipParams{
		SponsorID:   sponsorID,
		EventID:     eventID,
		Package:     req.Package,
		AmountCents: req.AmountCents,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.FromSponsorship(sponsorship))
}

// GetSponsorship retrieves an agreement.
// GET /api/v1/sponsorships/:id
func (h *Handler) GetSponsorship(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	sponsorship, err := h.svc.GetSponsorship(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromSponsorship(sponsorship))
}

// ListMySponsorships retrieves the calling sponsor's agreements.
// GET /api/v1/sponsorships
func (h *Handler) ListMySponsorships(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	sponsorships, total, err := h.svc.ListMySponsorships(c.Request.Context(), identity.UserID(),
		queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.SponsorshipResponse, 0, len(sponsorships))
	for _, sponsorship := range sponsorships {
		items = append(items, transport.FromSponsorship(sponsorship))
	}
	httpkit.OK(c, transport.SponsorshipListResponse{Items: items, Total: total})
}

// UpdateSponsorship applies a partial agreement update.
// PATCH /api/v1/sponsorships/:id
func (h *Handler) UpdateSponsorship(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	var req transport.UpdateSponsorshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	sponsorship, err := h.svc.UpdateSponsorship(c.Request.Context(), repository.UpdateSponsorshipParams{
		ID:          id,
		Package:     req.Package,
		AmountCents: req.AmountCents,
		Status:      req.Status,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromSponsorship(sponsorship))
}

func parsePathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
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
