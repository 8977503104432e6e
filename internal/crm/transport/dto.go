// Package transport defines request/response DTOs for the CRM API.
package transport

import (
	"time"

	"github.com/google/uuid"

	"fashionos_backend/internal/crm/repository"
)

// CreateContactRequest is the payload for creating a contact.
type CreateContactRequest struct {
	FirstName  string  `json:"first_name" validate:"required,max=100"`
	LastName   string  `json:"last_name" validate:"required,max=100"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Title      *string `json:"title,omitempty" validate:"omitempty,max=150"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=100"`
	AccountID  *string `json:"account_id,omitempty" validate:"omitempty,uuid"`
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

// UpdateContactRequest is the payload for a partial contact update.
type UpdateContactRequest struct {
	FirstName  *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName   *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Title      *string `json:"title,omitempty" validate:"omitempty,max=150"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=100"`
	AccountID  *string `json:"account_id,omitempty" validate:"omitempty,uuid"`
	Status     *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive archived"`
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

// ContactResponse represents a contact in API responses.
type ContactResponse struct {
	ID              uuid.UUID  `json:"id"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           *string    `json:"email,omitempty"`
	Phone           *string    `json:"phone,omitempty"`
	Title           *string    `json:"title,omitempty"`
	Department      *string    `json:"department,omitempty"`
	AccountID       *uuid.UUID `json:"account_id,omitempty"`
	LeadScore       int        `json:"lead_score"`
	EngagementScore int        `json:"engagement_score"`
	Status          string     `json:"status"`
	Notes           *string    `json:"notes,omitempty"`
	CreatedAt       string     `json:"created_at"`
	UpdatedAt       string     `json:"updated_at"`
}

// ContactListResponse is a paged list of contacts.
type ContactListResponse struct {
	Items []ContactResponse `json:"items"`
	Total int               `json:"total"`
}

// CreateAccountRequest is the payload for creating an account.
type CreateAccountRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	CompanySize *string `json:"company_size,omitempty" validate:"omitempty,oneof=1-10 11-50 51-200 201-500 501-1000 1000+"`
	Industry    *string `json:"industry,omitempty" validate:"omitempty,max=100"`
	HealthScore int     `json:"health_score" validate:"min=0,max=100"`
}

// UpdateAccountRequest is the payload for a partial account update.
type UpdateAccountRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,max=200"`
	CompanySize   *string `json:"company_size,omitempty" validate:"omitempty,oneof=1-10 11-50 51-200 201-500 501-1000 1000+"`
	Industry      *string `json:"industry,omitempty" validate:"omitempty,max=100"`
	AccountStatus *string `json:"account_status,omitempty" validate:"omitempty,oneof=prospect active churned"`
	HealthScore   *int    `json:"health_score,omitempty" validate:"omitempty,min=0,max=100"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	CompanySize   *string   `json:"company_size,omitempty"`
	Industry      *string   `json:"industry,omitempty"`
	AccountStatus string    `json:"account_status"`
	HealthScore   int       `json:"health_score"`
	CreatedAt     string    `json:"created_at"`
	UpdatedAt     string    `json:"updated_at"`
}

// AccountListResponse is a paged list of accounts.
type AccountListResponse struct {
	Items []AccountResponse `json:"items"`
	Total int               `json:"total"`
}

// LogInteractionRequest is the payload for appending an interaction.
type LogInteractionRequest struct {
	ContactID       string  `json:"contact_id" validate:"required,uuid"`
	AccountID       *string `json:"account_id,omitempty" validate:"omitempty,uuid"`
	EventID         *string `json:"event_id,omitempty" validate:"omitempty,uuid"`
	Type            string  `json:"type" validate:"required,oneof=email call meeting event note"`
	Direction       *string `json:"direction,omitempty" validate:"omitempty,oneof=inbound outbound"`
	Sentiment       *string `json:"sentiment,omitempty" validate:"omitempty,oneof=positive neutral negative"`
	Subject         *string `json:"subject,omitempty" validate:"omitempty,max=500"`
	InteractionDate *string `json:"interaction_date,omitempty"`
}

// InteractionResponse represents an interaction in API responses.
type InteractionResponse struct {
	ID              uuid.UUID  `json:"id"`
	ContactID       uuid.UUID  `json:"contact_id"`
	AccountID       *uuid.UUID `json:"account_id,omitempty"`
	EventID         *uuid.UUID `json:"event_id,omitempty"`
	Type            string     `json:"type"`
	Direction       *string    `json:"direction,omitempty"`
	Sentiment       *string    `json:"sentiment,omitempty"`
	Subject         *string    `json:"subject,omitempty"`
	InteractionDate string     `json:"interaction_date"`
	CreatedAt       string     `json:"created_at"`
}

// InteractionListResponse is a paged list of interactions.
type InteractionListResponse struct {
	Items []InteractionResponse `json:"items"`
	Total int                   `json:"total"`
}

// FromContact maps a repository contact to its response shape.
func FromContact(c repository.Contact) ContactResponse {
	return ContactResponse{
		ID:              c.ID,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		Email:           c.Email,
		Phone:           c.Phone,
		Title:           c.Title,
		Department:      c.Department,
		AccountID:       c.AccountID,
		LeadScore:       c.LeadScore,
		EngagementScore: c.EngagementScore,
		Status:          c.Status,
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// FromAccount maps a repository account to its response shape.
func FromAccount(a repository.Account) AccountResponse {
	return AccountResponse{
		ID:            a.ID,
		Name:          a.Name,
		CompanySize:   a.CompanySize,
		Industry:      a.Industry,
		AccountStatus: a.AccountStatus,
		HealthScore:   a.HealthScore,
		CreatedAt:     a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// FromInteraction maps a repository interaction to its response shape.
func FromInteraction(it repository.Interaction) InteractionResponse {
	return InteractionResponse{
		ID:              it.ID,
		ContactID:       it.ContactID,
		AccountID:       it.AccountID,
		EventID:         it.EventID,
		Type:            it.Type,
		Direction:       it.Direction,
		Sentiment:       it.Sentiment,
		Subject:         it.Subject,
		InteractionDate: it.InteractionDate.UTC().Format(time.RFC3339),
		CreatedAt:       it.CreatedAt.UTC().Format(time.RFC3339),
	}
}
