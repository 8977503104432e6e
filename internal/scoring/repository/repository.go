// Package repository persists lead scores and loads the data scoring reads.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fashionos_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ScoringRepository is the persistence surface the scoring service needs.
type ScoringRepository interface {
	GetScoringBundle(ctx context.Context, contactID uuid.UUID) (Bundle, error)
	PersistScore(ctx context.Context, params PersistParams) error
	ListHistory(ctx context.Context, contactID uuid.UUID, limit, offset int) ([]HistoryEntry, int, error)
	ListActiveContactIDs(ctx context.Context) ([]uuid.UUID, error)
}

// HistoryEntry is one persisted scoring run.
type HistoryEntry struct {
	ID                uuid.UUID
	ContactID         uuid.UUID
	Score             int
	PreviousScore     int
	ScoreChange       int
	DemographicScore  int
	FirmographicScore int
	BehavioralScore   int
	EngagementScore   int
	ScoreReason       string
	CreatedAt         time.Time
}

// Contact is the contact data scoring reads.
type Contact struct {
	ID              uuid.UUID
	Title           *string
	Department      *string
	LeadScore       int
	EngagementScore int
	ScoreVersion    int64
	AccountID       *uuid.UUID
}

// Account is the firmographic data scoring reads.
type Account struct {
	ID          uuid.UUID
	CompanySize *string
	Industry    *string
}

// Interaction is one logged touchpoint.
type Interaction struct {
	ID              uuid.UUID
	Type            string
	Direction       *string
	Sentiment       *string
	InteractionDate time.Time
}

// Bundle is everything a scoring run reads, loaded in one shot.
type Bundle struct {
	Contact      Contact
	Account      *Account
	Interactions []Interaction
}

// PersistParams carries one scoring result into the database.
type PersistParams struct {
	ContactID uuid.UUID
	// ExpectedVersion is the score_version read at the start of the run.
	// The update only applies if the row still carries it.
	ExpectedVersion int64
	Score           int
	PreviousScore   int
	ScoreChange     int

	DemographicScore  int
	FirmographicScore int
	BehavioralScore   int
	EngagementScore   int
	FactorsJSON       []byte
	ScoreReason       string
}

// Repository implements ScoringRepository against Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new scoring repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetScoringBundle loads the contact, its account (if any), and the full
// interaction history.
func (r *Repository) GetScoringBundle(ctx context.Context, contactID uuid.UUID) (Bundle, error) {
	const contactQuery = `
		SELECT id, title, department, lead_score, engagement_score, score_version, account_id
		FROM contacts
		WHERE id = $1 AND deleted_at IS NULL`

	var bundle Bundle
	err := r.pool.QueryRow(ctx, contactQuery, contactID).Scan(
		&bundle.Contact.ID,
		&bundle.Contact.Title,
		&bundle.Contact.Department,
		&bundle.Contact.LeadScore,
		&bundle.Contact.EngagementScore,
		&bundle.Contact.ScoreVersion,
		&bundle.Contact.AccountID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Bundle{}, apperr.NotFound("contact not found")
	}
	if err != nil {
		return Bundle{}, fmt.Errorf("query contact for scoring: %w", err)
	}

	if bundle.Contact.AccountID != nil {
		const accountQuery = `
			SELECT id, company_size, industry
			FROM accounts
			WHERE id = $1`

		var account Account
		err := r.pool.QueryRow(ctx, accountQuery, *bundle.Contact.AccountID).Scan(
			&account.ID, &account.CompanySize, &account.Industry,
		)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			// Dangling account reference; score without firmographics.
		case err != nil:
			return Bundle{}, fmt.Errorf("query account for scoring: %w", err)
		default:
			bundle.Account = &account
		}
	}

	const interactionsQuery = `
		SELECT id, interaction_type, direction, sentiment, interaction_date
		FROM interactions
		WHERE contact_id = $1
		ORDER BY interaction_date DESC`

	rows, err := r.pool.Query(ctx, interactionsQuery, contactID)
	if err != nil {
		return Bundle{}, fmt.Errorf("query interactions for scoring: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it Interaction
		if err := rows.Scan(&it.ID, &it.Type, &it.Direction, &it.Sentiment, &it.InteractionDate); err != nil {
			return Bundle{}, fmt.Errorf("scan interaction: %w", err)
		}
		bundle.Interactions = append(bundle.Interactions, it)
	}
	if err := rows.Err(); err != nil {
		return Bundle{}, fmt.Errorf("iterate interactions: %w", err)
	}

	return bundle, nil
}

// PersistScore applies a scoring result in one transaction: the contact's
// score columns and the history row commit or roll back together. A
// concurrent scoring run surfaces as a conflict via the version check.
func (r *Repository) PersistScore(ctx context.Context, params PersistParams) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin scoring tx: %w", err)
	}
	defer tx.Rollback(ctx)

	const updateQuery = `
		UPDATE contacts
		SET lead_score = $2,
		    engagement_score = $3,
		    score_version = score_version + 1,
		    updated_at = now()
		WHERE id = $1 AND score_version = $4`

	tag, err := tx.Exec(ctx, updateQuery,
		params.ContactID, params.Score, params.EngagementScore, params.ExpectedVersion,
	)
	if err != nil {
		return fmt.Errorf("update contact score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("contact was rescored concurrently")
	}

	const historyQuery = `
		INSERT INTO lead_scoring_history (
			id, contact_id, score, previous_score, score_change,
			demographic_score, firmographic_score, behavioral_score, engagement_score,
			scoring_factors, score_reason, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())`

	_, err = tx.Exec(ctx, historyQuery,
		uuid.New(), params.ContactID,
		params.Score, params.PreviousScore, params.ScoreChange,
		params.DemographicScore, params.FirmographicScore,
		params.BehavioralScore, params.EngagementScore,
		params.FactorsJSON, params.ScoreReason,
	)
	if err != nil {
		return fmt.Errorf("insert scoring history: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit scoring tx: %w", err)
	}
	return nil
}

// ListActiveContactIDs returns the ids of all contacts eligible for the
// periodic rescore sweep.
func (r *Repository) ListActiveContactIDs(ctx context.Context) ([]uuid.UUID, error) {
	const query = `
		SELECT id
		FROM contacts
		WHERE status = 'active' AND deleted_at IS NULL
		ORDER BY updated_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query active contacts: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan contact id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate active contacts: %w", err)
	}
	return ids, nil
}

// ListHistory returns a contact's scoring history, newest first.
func (r *Repository) ListHistory(ctx context.Context, contactID uuid.UUID, limit, offset int) ([]HistoryEntry, int, error) {
	const countQuery = `
		SELECT count(*)
		FROM lead_scoring_history
		WHERE contact_id = $1`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, contactID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count scoring history: %w", err)
	}

	const listQuery = `
		SELECT id, contact_id, score, previous_score, score_change,
		       demographic_score, firmographic_score, behavioral_score, engagement_score,
		       score_reason, created_at
		FROM lead_scoring_history
		WHERE contact_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, listQuery, contactID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query scoring history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(
			&e.ID, &e.ContactID, &e.Score, &e.PreviousScore, &e.ScoreChange,
			&e.DemographicScore, &e.FirmographicScore, &e.BehavioralScore, &e.EngagementScore,
			&e.ScoreReason, &e.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan scoring history: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate scoring history: %w", err)
	}

	return entries, total, nil
}
