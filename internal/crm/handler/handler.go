// Package handler exposes CRM HTTP endpoints.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fashionos_backend/internal/crm/repository"
	"fashionos_backend/internal/crm/service"
	"fashionos_backend/internal/crm/transport"
	"fashionos_backend/platform/httpkit"
	"fashionos_backend/platform/validator"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for CRM resources.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new CRM handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// CreateContact creates a contact.
// POST /api/v1/admin/contacts
func (h *Handler) CreateContact(c *gin.Context) {
	var req transport.CreateContactRequest
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

	accountID, ok := parseOptionalUUID(c, req.AccountID)
	if !ok {
		return
	}

	contact, err := h.svc.CreateContact(c.Request.Context(), repository.CreateContactParams{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Title:      req.Title,
		Department: req.Department,
		AccountID:  accountID,
		Notes:      req.Notes,
	}, identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.FromContact(contact))
}

// GetContact retrieves a single contact.
// GET /api/v1/admin/contacts/:id
func (h *Handler) GetContact(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	contact, err := h.svc.GetContact(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromContact(contact))
}

// ListContacts retrieves contacts with search, status filter, and paging.
// GET /api/v1/admin/contacts
func (h *Handler) ListContacts(c *gin.Context) {
	params := repository.ListContactsParams{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Limit:  queryInt(c, "limit", 20),
		Offset: queryInt(c, "offset", 0),
	}

	if raw := c.Query("account_id"); raw != "" {
		accountID, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid account_id", nil)
			return
		}
		params.AccountID = &accountID
	}

	contacts, total, err := h.svc.ListContacts(c.Request.Context(), params)
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		items = append(items, transport.FromContact(contact))
	}
	httpkit.OK(c, transport.ContactListResponse{Items: items, Total: total})
}

// UpdateContact applies a partial contact update.
// PATCH /api/v1/admin/contacts/:id
func (h *Handler) UpdateContact(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	var req transport.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	accountID, ok := parseOptionalUUID(c, req.AccountID)
	if !ok {
		return
	}

	contact, err := h.svc.UpdateContact(c.Request.Context(), repository.UpdateContactParams{
		ID:         id,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Title:      req.Title,
		Department: req.Department,
		AccountID:  accountID,
		Status:     req.Status,
		Notes:      req.Notes,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromContact(contact))
}

// ArchiveContact soft-deletes a contact.
// DELETE /api/v1/admin/contacts/:id
func (h *Handler) ArchiveContact(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.ArchiveContact(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// CreateAccount creates an account.
// POST /api/v1/admin/accounts
func (h *Handler) CreateAccount(c *gin.Context) {
	var req transport.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	account, err := h.svc.CreateAccount(c.Request.Context(), repository.CreateAccountParams{
		Name:        req.Name,
		CompanySize: req.CompanySize,
		Industry:    req.Industry,
		HealthScore: req.HealthScore,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.FromAccount(account))
}

// GetAccount retrieves a single account.
// GET /api/v1/admin/accounts/:id
func (h *Handler) GetAccount(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	account, err := h.svc.GetAccount(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromAccount(account))
}

// ListAccounts retrieves accounts with paging.
// GET /api/v1/admin/accounts
func (h *Handler) ListAccounts(c *gin.Context) {
	accounts, total, err := h.svc.ListAccounts(c.Request.Context(),
		queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, transport.FromAccount(account))
	}
	httpkit.OK(c, transport.AccountListResponse{Items: items, Total: total})
}

// UpdateAccount applies a partial account update.
// PATCH /api/v1/admin/accounts/:id
func (h *Handler) UpdateAccount(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	var req transport.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	account, err := h.svc.UpdateAccount(c.Request.Context(), repository.UpdateAccountParams{
		ID:            id,
		Name:          req.Name,
		CompanySize:   req.CompanySize,
		Industry:      req.Industry,
		AccountStatus: req.AccountStatus,
		HealthScore:   req.HealthScore,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromAccount(account))
}

// LogInteraction appends an interaction to a contact's log.
// POST /api/v1/admin/interactions
func (h *Handler) LogInteraction(c *gin.Context) {
	var req transport.LogInteractionRequest
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

	contactID, err := uuid.Parse(req.ContactID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid contact_id", nil)
		return
	}
	accountID, ok := parseOptionalUUID(c, req.AccountID)
	if !ok {
		return
	}
	eventID, ok := parseOptionalUUID(c, req.EventID)
	if !ok {
		return
	}

	var interactionDate time.Time
	if req.InteractionDate != nil {
		interactionDate, err = time.Parse(time.RFC3339, *req.InteractionDate)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid interaction_date", nil)
			return
		}
	}

	interaction, err := h.svc.LogInteraction(c.Request.Context(), repository.CreateInteractionParams{
		ContactID:       contactID,
		AccountID:       accountID,
		EventID:         eventID,
		Type:            req.Type,
		Direction:       req.Direction,
		Sentiment:       req.Sentiment,
		Subject:         req.Subject,
		InteractionDate: interactionDate,
		CreatedBy:       identity.UserID(),
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.FromInteraction(interaction))
}

// ListInteractions retrieves a contact's interactions, newest first.
// GET /api/v1/admin/contacts/:id/interactions
func (h *Handler) ListInteractions(c *gin.Context) {
	contactID, ok := parsePathID(c)
	if !ok {
		return
	}

	interactions, total, err := h.svc.ListInteractions(c.Request.Context(), contactID,
		queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.InteractionResponse, 0, len(interactions))
	for _, it := range interactions {
		items = append(items, transport.FromInteraction(it))
	}
	httpkit.OK(c, transport.InteractionListResponse{Items: items, Total: total})
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
