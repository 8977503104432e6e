package repository

import (
	"time"

	"github.com/google/uuid"
)

// Contact statuses. A contact is never hard-deleted; archiving sets
// deleted_at and moves the status to archived.
const (
	ContactStatusActive   = "active"
	ContactStatusInactive = "inactive"
	ContactStatusArchived = "archived"
)

// Contact is a person tracked in the CRM.
type Contact struct {
	ID              uuid.UUID
	FirstName       string
	LastName        string
	Email           *string
	Phone           *string
	Title           *string
	Department      *string
	AccountID       *uuid.UUID
	LeadScore       int
	EngagementScore int
	ScoreVersion    int64
	Status          string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Account is a company contacts belong to.
type Account struct {
	ID            uuid.UUID
	Name          string
	CompanySize   *string
	Industry      *string
	AccountStatus string
	HealthScore   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Interaction is one immutable touchpoint logged against a contact.
type Interaction struct {
	ID              uuid.UUID
	ContactID       uuid.UUID
	AccountID       *uuid.UUID
	EventID         *uuid.UUID
	Type            string
	Direction       *string
	Sentiment       *string
	Subject         *string
	InteractionDate time.Time
	CreatedBy       uuid.UUID
	CreatedAt       time.Time
}

// CreateContactParams carries a new contact into the database.
type CreateContactParams struct {
	FirstName  string
	LastName   string
	Email      *string
	Phone      *string
	Title      *string
	Department *string
	AccountID  *uuid.UUID
	Notes      *string
}

// UpdateContactParams carries a partial contact update. Nil fields keep
// their current value.
type UpdateContactParams struct {
	ID         uuid.UUID
	FirstName  *string
	LastName   *string
	Email      *string
	Phone      *string
	Title      *string
	Department *string
	AccountID  *uuid.UUID
	Status     *string
	Notes      *string
}

// ListContactsParams filters and pages the contact list.
type ListContactsParams struct {
	Search    string
	Status    string
	AccountID *uuid.UUID
	Limit     int
	Offset    int
}

// CreateAccountParams carries a new account into the database.
type CreateAccountParams struct {
	Name        string
	CompanySize *string
	Industry    *string
	HealthScore int
}

// UpdateAccountParams carries a partial account update.
type UpdateAccountParams struct {
	ID            uuid.UUID
	Name          *string
	CompanySize   *string
	Industry      *string
	AccountStatus *string
	HealthScore   *int
}

// CreateInteractionParams carries a new interaction log entry.
type CreateInteractionParams struct {
	ContactID       uuid.UUID
	AccountID       *uuid.UUID
	EventID         *uuid.UUID
	Type            string
	Direction       *string
	Sentiment       *string
	Subject         *string
	InteractionDate time.Time
	CreatedBy       uuid.UUID
}
