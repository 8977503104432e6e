// Package repository persists sponsor profiles and sponsorships.
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

const (
	sponsorNotFoundMessage     = "sponsor profile not found"
	sponsorshipNotFoundMessage = "sponsorship not found"
)

// Sponsorship statuses.
const (
	SponsorshipStatusProposed  = "proposed"
	SponsorshipStatusSigned    = "signed"
	SponsorshipStatusFulfilled = "fulfilled"
	SponsorshipStatusCancelled = "cancelled"
)

// Sponsor is a sponsor's company profile. One per user.
type Sponsor struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CompanyName string
	Tier        *string
	Industry    *string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Sponsorship is one sponsorship agreement on an event.
type Sponsorship struct {
	ID          uuid.UUID
	SponsorID   uuid.UUID
	EventID     uuid.UUID
	Package     *string
	AmountCents int64
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateSponsorParams carries a new sponsor profile.
type CreateSponsorParams struct {
	UserID      uuid.UUID
	CompanyName string
	Tier        *string
	Industry    *string
}

// UpdateSponsorParams carries a partial sponsor update.
type UpdateSponsorParams struct {
	ID          uuid.UUID
	CompanyName *string
	Tier        *string
	Industry    *string
	Status      *string
}

// CreateSponsorshipParams carries a new sponsorship agreement.
type CreateSponsorshipParams struct {
	SponsorID   uuid.UUID
	EventID     uuid.UUID
	Package     *string
	AmountCents int64
}

// UpdateSponsorshipParams carries a partial sponsorship update.
type UpdateSponsorshipParams struct {
	ID          uuid.UUID
	Package     *string
	AmountCents *int64
	Status      *string
}

const sponsorColumns = `id, user_id, company_name, tier, industry, status, created_at, updated_at`

const sponsorshipColumns = `id, sponsor_id, event_id, package, amount_cents, status, created_at, updated_at`

// Repo implements sponsor persistence with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new sponsors repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// CreateSponsor inserts a sponsor profile.
func (r *Repo) CreateSponsor(ctx context.Context, params CreateSponsorParams) (Sponsor, error) {
	query := `
		INSERT INTO sponsors (id, user_id, company_name, tier, industry)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + sponsorColumns

	sponsor, err := scanSponsor(r.pool.QueryRow(ctx, query,
		uuid.New(), params.UserID, params.CompanyName, params.Tier, params.Industry,
	))
	if err != nil {
		return Sponsor{}, fmt.Errorf("create sponsor: %w", err)
	}
	return sponsor, nil
}

// GetSponsor retrieves a sponsor profile by ID.
func (r *Repo) GetSponsor(ctx context.Context, id uuid.UUID) (Sponsor, error) {
	query := `SELECT ` + sponsorColumns + ` FROM sponsors WHERE id = $1`

	sponsor, err := scanSponsor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Sponsor{}, apperr.NotFound(sponsorNotFoundMessage)
		}
		return Sponsor{}, fmt.Errorf("get sponsor: %w", err)
	}
	return sponsor, nil
}

// GetSponsorByUser retrieves the sponsor profile owned by a user.
func (r *Repo) GetSponsorByUser(ctx context.Context, userID uuid.UUID) (Sponsor, error) {
	query := `SELECT ` + sponsorColumns + ` FROM sponsors WHERE user_id = $1`

	sponsor, err := scanSponsor(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Sponsor{}, apperr.NotFound(sponsorNotFoundMessage)
		}
		return Sponsor{}, fmt.Errorf("get sponsor by user: %w", err)
	}
	return sponsor, nil
}

// ListSponsors retrieves sponsor profiles ordered by company name.
func (r *Repo) ListSponsors(ctx context.Context, limit, offset int) ([]Sponsor, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM sponsors`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sponsors: %w", err)
	}

	query := `
		SELECT ` + sponsorColumns + `
		FROM sponsors
		ORDER BY company_name ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list sponsors: %w", err)
	}
	defer rows.Close()

	var sponsors []Sponsor
	for rows.Next() {
		sponsor, err := scanSponsor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sponsor: %w", err)
		}
		sponsors = append(sponsors, sponsor)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate sponsors: %w", err)
	}

	return sponsors, total, nil
}

// UpdateSponsor applies a partial sponsor update.
func (r *Repo) UpdateSponsor(ctx context.Context, params UpdateSponsorParams) (Sponsor, error) {
	query := `
		UPDATE sponsors SET
			company_name = COALESCE($2, company_name),
			tier = COALESCE($3, tier),
			industry = COALESCE($4, industry),
			status = COALESCE($5, status),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + sponsorColumns

	sponsor, err := scanSponsor(r.pool.QueryRow(ctx, query,
		params.ID, params.CompanyName, params.Tier, params.Industry, params.Status,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Sponsor{}, apperr.NotFound(sponsorNotFoundMessage)
		}
		return Sponsor{}, fmt.Errorf("update sponsor: %w", err)
	}
	return sponsor, nil
}

// CreateSponsorship inserts a sponsorship agreement.
func (r *Repo) CreateSponsorship(ctx context.Context, params CreateSponsorshipParams) (Sponsorship, error) {
	query := `
		INSERT INTO sponsorships (id, sponsor_id, event_id, package, amount_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + sponsorshipColumns

	sponsorship, err := scanSponsorship(r.pool.QueryRow(ctx, query,
		uuid.New(), params.SponsorID, params.EventID, params.Package,
		params.AmountCents, SponsorshipStatusProposed,
	))
	if err != nil {
		return Sponsorship{}, fmt.Errorf("create sponsorship: %w", err)
	}
	return sponsorship, nil
}

// GetSponsorship retrieves a sponsorship by ID.
func (r *Repo) GetSponsorship(ctx context.Context, id uuid.UUID) (Sponsorship, error) {
	query := `SELECT ` + sponsorshipColumns + ` FROM sponsorships WHERE id = $1`

	sponsorship, err := scanSponsorship(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Sponsorship{}, apperr.NotFound(sponsorshipNotFoundMessage)
		}
		return Sponsorship{}, fmt.Errorf("get sponsorship: %w", err)
	}
	return sponsorship, nil
}

// ListSponsorshipsBySponsor retrieves a sponsor's agreements, newest first.
func (r *Repo) ListSponsorshipsBySponsor(ctx context.Context, sponsorID uuid.UUID, limit, offset int) ([]Sponsorship, int, error) {
	var total int
	countQuery := `SELECT count(*) FROM sponsorships WHERE sponsor_id = $1`
	if err := r.pool.QueryRow(ctx, countQuery, sponsorID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sponsorships: %w", err)
	}

	query := `
		SELECT ` + sponsorshipColumns + `
		FROM sponsorships
		WHERE sponsor_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, sponsorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list sponsorships: %w", err)
	}
	defer rows.Close()

	var sponsorships []Sponsorship
	for rows.Next() {
		sponsorship, err := scanSponsorship(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sponsorship: %w", err)
		}
		sponsorships = append(sponsorships, sponsorship)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate sponsorships: %w", err)
	}

	return sponsorships, total, nil
}

// UpdateSponsorship applies a partial sponsorship update.
func (r *Repo) UpdateSponsorship(ctx context.Context, params UpdateSponsorshipParams) (Sponsorship, error) {
	query := `
		UPDATE sponsorships SET
			package = COALESCE($2, package),
			amount_cents = COALESCE($3, amount_cents),
			status = COALESCE($4, status),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + sponsorshipColumns

	sponsorship, err := scanSponsorship(r.pool.QueryRow(ctx, query,
		params.ID, params.Package, params.AmountCents, params.Status,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Sponsorship{}, apperr.NotFound(sponsorshipNotFoundMessage)
		}
		return Sponsorship{}, fmt.Errorf("update sponsorship: %w", err)
	}
	return sponsorship, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSponsor(row rowScanner) (Sponsor, error) {
	var s Sponsor
	err := row.Scan(
		&s.ID, &s.UserID, &s.CompanyName, &s.Tier, &s.Industry,
		&s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func scanSponsorship(row rowScanner) (Sponsorship, error) {
	var s Sponsorship
	err := row.Scan(
		&s.ID, &s.SponsorID, &s.EventID, &s.Package, &s.AmountCents,
		&s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}
