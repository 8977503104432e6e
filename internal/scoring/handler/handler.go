package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fashionos_backend/internal/scoring/service"
	"fashionos_backend/internal/scoring/transport"
	"fashionos_backend/platform/httpkit"
	"fashionos_backend/platform/validator"
)

// Handler handles HTTP requests for lead scoring.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidContactID = "invalid contact ID"
)

// New creates a new scoring handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Run recomputes the lead score for a contact.
// POST /api/v1/admin/scoring/run
func (h *Handler) Run(c *gin.Context) {
	var req transport.RunScoringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ScoreContact(c.Request.Context(), req.ContactID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.RunScoringResponse{
		Success: true,
		Score:   result.Score,
		Factors: transport.ScoringFactors{
			Demographic:  result.Breakdown.Demographic,
			Firmographic: result.Breakdown.Firmographic,
			Behavioral:   result.Breakdown.Behavioral,
			Engagement:   result.Breakdown.Engagement,
		},
		PreviousScore: result.PreviousScore,
	})
}

// History lists a contact's scoring history.
// GET /api/v1/admin/scoring/contacts/:id/history
func (h *Handler) History(c *gin.Context) {
	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidContactID, nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	entries, total, err := h.svc.History(c.Request.Context(), contactID, page, pageSize)
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, transport.HistoryEntryResponse{
			ID:            e.ID,
			Score:         e.Score,
			PreviousScore: e.PreviousScore,
			ScoreChange:   e.ScoreChange,
			Factors: transport.ScoringFactors{
				Demographic:  e.DemographicScore,
				Firmographic: e.FirmographicScore,
				Behavioral:   e.BehavioralScore,
				Engagement:   e.EngagementScore,
			},
			ScoreReason: e.ScoreReason,
			CreatedAt:   e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	httpkit.OK(c, transport.HistoryResponse{Items: items, Total: total})
}
