package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fashionos_backend/platform/apperr"
)

// Repository reads event rosters with PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new roster repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EventRoster loads the event title and the planning coordinator columns.
func (r *Repository) EventRoster(ctx context.Context, eventID uuid.UUID) (EventRoster, error) {
	query := `
		SELECT e.id, e.title, p.lead_organizer_id, p.venue_coordinator_id,
		       p.vendor_manager_id, p.model_coordinator_id, p.sponsor_manager_id
		FROM events e
		JOIN event_planning p ON p.event_id = e.id
		WHERE e.id = $1`

	var roster EventRoster
	err := r.pool.QueryRow(ctx, query, eventID).Scan(
		&roster.EventID, &roster.Title, &roster.LeadOrganizerID,
		&roster.VenueCoordinatorID, &roster.VendorManagerID,
		&roster.ModelCoordinatorID, &roster.SponsorManagerID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return EventRoster{}, apperr.NotFound("event not found")
		}
		return EventRoster{}, fmt.Errorf("query event roster: %w", err)
	}
	return roster, nil
}
