// Package repository persists fashion events and their planning rosters.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fashionos_backend/platform/apperr"
)

const eventNotFoundMessage = "event not found"

// Event statuses.
const (
	EventStatusDraft     = "draft"
	EventStatusPlanning  = "planning"
	EventStatusConfirmed = "confirmed"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// Event is a fashion event.
type Event struct {
	ID          uuid.UUID
	Title       string
	Description *string
	EventDate   *time.Time
	Venue       *string
	Status      string
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Planning is the coordinator roster for one event. One row per event.
type Planning struct {
	ID                 uuid.UUID
	EventID            uuid.UUID
	LeadOrganizerID    *uuid.UUID
	VenueCoordinatorID *uuid.UUID
	VendorManagerID    *uuid.UUID
	ModelCoordinatorID *uuid.UUID
	SponsorManagerID   *uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CreateEventParams carries a new event into the database.
type CreateEventParams struct {
	Title       string
	Description *string
	EventDate   *time.Time
	Venue       *string
	CreatedBy   uuid.UUID
	// LeadOrganizerID seeds the planning row created alongside the event.
	LeadOrganizerID uuid.UUID
}

// UpdateEventParams carries a partial event update.
type UpdateEventParams struct {
	ID          uuid.UUID
	Title       *string
	Description *string
	EventDate   *time.Time
	Venue       *string
	Status      *string
}

// UpdatePlanningParams reassigns coordinators on an event's planning row.
// Nil fields keep their current assignment.
type UpdatePlanningParams struct {
	EventID            uuid.UUID
	LeadOrganizerID    *uuid.UUID
	VenueCoordinatorID *uuid.UUID
	VendorManagerID    *uuid.UUID
	ModelCoordinatorID *uuid.UUID
	SponsorManagerID   *uuid.UUID
}

const eventColumns = `id, title, description, event_date, venue, status, created_by, created_at, updated_at`

const planningColumns = `id, event_id, lead_organizer_id, venue_coordinator_id,
	vendor_manager_id, model_coordinator_id, sponsor_manager_id, created_at, updated_at`

// Repo implements event planning persistence with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new event planning repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// CreateEvent inserts the event and its planning row in one transaction.
// Every event carries a planning roster from birth.
func (r *Repo) CreateEvent(ctx context.Context, params CreateEventParams) (Event, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("begin create event tx: %w", err)
	}
	defer tx.Rollback(ctx)

	eventQuery := `
		INSERT INTO events (id, title, description, event_date, venue, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + eventColumns

	event, err := scanEvent(tx.QueryRow(ctx, eventQuery,
		uuid.New(), params.Title, params.Description, params.EventDate,
		params.Venue, EventStatusDraft, params.CreatedBy,
	))
	if err != nil {
		return Event{}, fmt.Errorf("create event: %w", err)
	}

	planningQuery := `
		INSERT INTO event_planning (id, event_id, lead_organizer_id)
		VALUES ($1, $2, $3)`

	if _, err := tx.Exec(ctx, planningQuery, uuid.New(), event.ID, params.LeadOrganizerID); err != nil {
		return Event{}, fmt.Errorf("create event planning: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Event{}, fmt.Errorf("commit create event tx: %w", err)
	}
	return event, nil
}

// GetEvent retrieves an event by ID.
func (r *Repo) GetEvent(ctx context.Context, id uuid.UUID) (Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Event{}, apperr.NotFound(eventNotFoundMessage)
		}
		return Event{}, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// ListEvents retrieves events, soonest first, with optional status filter.
func (r *Repo) ListEvents(ctx context.Context, status string, limit, offset int) ([]Event, int, error) {
	var statusParam interface{}
	if status != "" {
		statusParam = status
	}

	countQuery := `SELECT count(*) FROM events WHERE ($1::text IS NULL OR status = $1)`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, statusParam).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY event_date ASC NULLS LAST, created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, statusParam, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate events: %w", err)
	}

	return events, total, nil
}

// UpdateEvent applies a partial event update.
func (r *Repo) UpdateEvent(ctx context.Context, params UpdateEventParams) (Event, error) {
	query := `
		UPDATE events SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			event_date = COALESCE($4, event_date),
			venue = COALESCE($5, venue),
			status = COALESCE($6, status),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + eventColumns

	event, err := scanEvent(r.pool.QueryRow(ctx, query,
		params.ID, params.Title, params.Description, params.EventDate,
		params.Venue, params.Status,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Event{}, apperr.NotFound(eventNotFoundMessage)
		}
		return Event{}, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

// DeleteEvent removes an event. The planning row goes with it via FK cascade.
func (r *Repo) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(eventNotFoundMessage)
	}
	return nil
}

// GetPlanning retrieves the planning roster for an event.
func (r *Repo) GetPlanning(ctx context.Context, eventID uuid.UUID) (Planning, error) {
	query := `SELECT ` + planningColumns + ` FROM event_planning WHERE event_id = $1`

	var p Planning
	err := r.pool.QueryRow(ctx, query, eventID).Scan(
		&p.ID, &p.EventID, &p.LeadOrganizerID, &p.VenueCoordinatorID,
		&p.VendorManagerID, &p.ModelCoordinatorID, &p.SponsorManagerID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Planning{}, apperr.NotFound("planning record not found")
		}
		return Planning{}, fmt.Errorf("get event planning: %w", err)
	}
	return p, nil
}

// UpdatePlanning reassigns coordinators and returns the updated roster.
func (r *Repo) UpdatePlanning(ctx context.Context, params UpdatePlanningParams) (Planning, error) {
	query := `
		UPDATE event_planning SET
			lead_organizer_id = COALESCE($2, lead_organizer_id),
			venue_coordinator_id = COALESCE($3, venue_coordinator_id),
			vendor_manager_id = COALESCE($4, vendor_manager_id),
			model_coordinator_id = COALESCE($5, model_coordinator_id),
			sponsor_manager_id = COALESCE($6, sponsor_manager_id),
			updated_at = now()
		WHERE event_id = $1
		RETURNING ` + planningColumns

	var p Planning
	err := r.pool.QueryRow(ctx, query,
		params.EventID, params.LeadOrganizerID, params.VenueCoordinatorID,
		params.VendorManagerID, params.ModelCoordinatorID, params.SponsorManagerID,
	).Scan(
		&p.ID, &p.EventID, &p.LeadOrganizerID, &p.VenueCoordinatorID,
		&p.VendorManagerID, &p.ModelCoordinatorID, &p.SponsorManagerID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Planning{}, apperr.NotFound("planning record not found")
		}
		return Planning{}, fmt.Errorf("update event planning: %w", err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (Event, error) {
	var e Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.EventDate, &e.Venue,
		&e.Status, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}
