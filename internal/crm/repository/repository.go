// Package repository persists CRM contacts, accounts, and interactions.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fashionos_backend/platform/apperr"
)

const (
	contactNotFoundMessage = "contact not found"
	accountNotFoundMessage = "account not found"
)

const contactColumns = `id, first_name, last_name, email, phone, title, department,
	account_id, lead_score, engagement_score, score_version, status, notes,
	created_at, updated_at`

const accountColumns = `id, name, company_size, industry, account_status, health_score,
	created_at, updated_at`

// Repo implements CRM persistence with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new CRM repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// CreateContact inserts a new contact. Scores start at zero.
func (r *Repo) CreateContact(ctx context.Context, params CreateContactParams) (Contact, error) {
	query := `
		INSERT INTO contacts (id, first_name, last_name, email, phone, title, department, account_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + contactColumns

	row := r.pool.QueryRow(ctx, query,
		uuid.New(), params.FirstName, params.LastName, params.Email, params.Phone,
		params.Title, params.Department, params.AccountID, params.Notes,
	)
	contact, err := scanContact(row)
	if err != nil {
		return Contact{}, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

// GetContact retrieves a contact by ID. Archived contacts are not returned.
func (r *Repo) GetContact(ctx context.Context, id uuid.UUID) (Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE id = $1 AND deleted_at IS NULL`

	contact, err := scanContact(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Contact{}, apperr.NotFound(contactNotFoundMessage)
		}
		return Contact{}, fmt.Errorf("get contact: %w", err)
	}
	return contact, nil
}

// ListContacts retrieves contacts with search, status filter, and pagination.
func (r *Repo) ListContacts(ctx context.Context, params ListContactsParams) ([]Contact, int, error) {
	var searchParam interface{}
	if params.Search != "" {
		searchParam = "%" + params.Search + "%"
	}
	var statusParam interface{}
	if params.Status != "" {
		statusParam = params.Status
	}

	countQuery := `
		SELECT count(*)
		FROM contacts
		WHERE deleted_at IS NULL
			AND ($1::text IS NULL OR first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1)
			AND ($2::text IS NULL OR status = $2)
			AND ($3::uuid IS NULL OR account_id = $3)`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, searchParam, statusParam, params.AccountID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE deleted_at IS NULL
			AND ($1::text IS NULL OR first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1)
			AND ($2::text IS NULL OR status = $2)
			AND ($3::uuid IS NULL OR account_id = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`

	rows, err := r.pool.Query(ctx, query, searchParam, statusParam, params.AccountID, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate contacts: %w", err)
	}

	return contacts, total, nil
}

// UpdateContact applies a partial update. Score columns are owned by the
// scoring pipeline and never touched here.
func (r *Repo) UpdateContact(ctx context.Context, params UpdateContactParams) (Contact, error) {
	query := `
		UPDATE contacts SET
			first_name = COALESCE($2, first_name),
			last_name = COALESCE($3, last_name),
			email = COALESCE($4, email),
			phone = COALESCE($5, phone),
			title = COALESCE($6, title),
			department = COALESCE($7, department),
			account_id = COALESCE($8, account_id),
			status = COALESCE($9, status),
			notes = COALESCE($10, notes),
			updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + contactColumns

	row := r.pool.QueryRow(ctx, query,
		params.ID, params.FirstName, params.LastName, params.Email, params.Phone,
		params.Title, params.Department, params.AccountID, params.Status, params.Notes,
	)
	contact, err := scanContact(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Contact{}, apperr.NotFound(contactNotFoundMessage)
		}
		return Contact{}, fmt.Errorf("update contact: %w", err)
	}
	return contact, nil
}

// ArchiveContact soft-deletes a contact. The row stays for scoring history
// integrity.
func (r *Repo) ArchiveContact(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE contacts
		SET status = $2, deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, query, id, ContactStatusArchived)
	if err != nil {
		return fmt.Errorf("archive contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(contactNotFoundMessage)
	}
	return nil
}

// CreateAccount inserts a new account.
func (r *Repo) CreateAccount(ctx context.Context, params CreateAccountParams) (Account, error) {
	query := `
		INSERT INTO accounts (id, name, company_size, industry, health_score)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + accountColumns

	row := r.pool.QueryRow(ctx, query,
		uuid.New(), params.Name, params.CompanySize, params.Industry, params.HealthScore,
	)
	account, err := scanAccount(row)
	if err != nil {
		return Account{}, fmt.Errorf("create account: %w", err)
	}
	return account, nil
}

// GetAccount retrieves an account by ID.
func (r *Repo) GetAccount(ctx context.Context, id uuid.UUID) (Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, apperr.NotFound(accountNotFoundMessage)
		}
		return Account{}, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

// ListAccounts retrieves all accounts ordered by name.
func (r *Repo) ListAccounts(ctx context.Context, limit, offset int) ([]Account, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM accounts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate accounts: %w", err)
	}

	return accounts, total, nil
}

// UpdateAccount applies a partial account update.
func (r *Repo) UpdateAccount(ctx context.Context, params UpdateAccountParams) (Account, error) {
	query := `
		UPDATE accounts SET
			name = COALESCE($2, name),
			company_size = COALESCE($3, company_size),
			industry = COALESCE($4, industry),
			account_status = COALESCE($5, account_status),
			health_score = COALESCE($6, health_score),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + accountColumns

	row := r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.CompanySize, params.Industry,
		params.AccountStatus, params.HealthScore,
	)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, apperr.NotFound(accountNotFoundMessage)
		}
		return Account{}, fmt.Errorf("update account: %w", err)
	}
	return account, nil
}

// CreateInteraction appends one interaction to the log. Interactions are
// immutable; there is no update or delete.
func (r *Repo) CreateInteraction(ctx context.Context, params CreateInteractionParams) (Interaction, error) {
	query := `
		INSERT INTO interactions (
			id, contact_id, account_id, event_id, interaction_type, direction,
			sentiment, subject, interaction_date, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, contact_id, account_id, event_id, interaction_type, direction,
			sentiment, subject, interaction_date, created_by, created_at`

	var it Interaction
	err := r.pool.QueryRow(ctx, query,
		uuid.New(), params.ContactID, params.AccountID, params.EventID,
		params.Type, params.Direction, params.Sentiment, params.Subject,
		params.InteractionDate, params.CreatedBy,
	).Scan(
		&it.ID, &it.ContactID, &it.AccountID, &it.EventID, &it.Type, &it.Direction,
		&it.Sentiment, &it.Subject, &it.InteractionDate, &it.CreatedBy, &it.CreatedAt,
	)
	if err != nil {
		return Interaction{}, fmt.Errorf("create interaction: %w", err)
	}
	return it, nil
}

// ListInteractions retrieves a contact's interactions, newest first.
func (r *Repo) ListInteractions(ctx context.Context, contactID uuid.UUID, limit, offset int) ([]Interaction, int, error) {
	countQuery := `SELECT count(*) FROM interactions WHERE contact_id = $1`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, contactID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count interactions: %w", err)
	}

	query := `
		SELECT id, contact_id, account_id, event_id, interaction_type, direction,
			sentiment, subject, interaction_date, created_by, created_at
		FROM interactions
		WHERE contact_id = $1
		ORDER BY interaction_date DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, contactID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list interactions: %w", err)
	}
	defer rows.Close()

	var interactions []Interaction
	for rows.Next() {
		var it Interaction
		if err := rows.Scan(
			&it.ID, &it.ContactID, &it.AccountID, &it.EventID, &it.Type, &it.Direction,
			&it.Sentiment, &it.Subject, &it.InteractionDate, &it.CreatedBy, &it.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan interaction: %w", err)
		}
		interactions = append(interactions, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate interactions: %w", err)
	}

	return interactions, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (Contact, error) {
	var c Contact
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Title, &c.Department,
		&c.AccountID, &c.LeadScore, &c.EngagementScore, &c.ScoreVersion, &c.Status,
		&c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func scanAccount(row rowScanner) (Account, error) {
	var a Account
	err := row.Scan(
		&a.ID, &a.Name, &a.CompanySize, &a.Industry, &a.AccountStatus,
		&a.HealthScore, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}
