// Package outbox implements the notification outbox: domain events are
// written as rows here and delivered asynchronously by the worker, so the
// publishing request never waits on delivery.
package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fashionos_backend/platform/apperr"
)

// Status is the outbox row lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusEnqueued   Status = "enqueued"
	StatusProcessing Status = "processing"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// Record kinds written by the event subscribers.
const (
	KindContactScored  = "contact_scored"
	KindPlanningUpdate = "planning_update"
)

// Record is one outbox row.
type Record struct {
	ID       uuid.UUID
	Kind     string
	Payload  json.RawMessage
	RunAt    time.Time
	Status   Status
	Attempts int
}

// InsertParams carries a new outbox row.
type InsertParams struct {
	Kind    string
	Payload any
	RunAt   time.Time
}

// Repository persists the outbox with PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new outbox repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert writes a pending outbox row.
func (r *Repository) Insert(ctx context.Context, p InsertParams) (uuid.UUID, error) {
	if p.Kind == "" {
		return uuid.Nil, apperr.Validation("kind is required")
	}
	if p.RunAt.IsZero() {
		p.RunAt = time.Now().UTC()
	}

	payloadBytes, err := json.Marshal(p.Payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal outbox payload: %w", err)
	}

	var id uuid.UUID
	err = r.pool.QueryRow(ctx,
		`INSERT INTO notification_outbox (id, kind, payload, run_at, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		uuid.New(), p.Kind, payloadBytes, p.RunAt, string(StatusPending),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert outbox record: %w", err)
	}
	return id, nil
}

// GetByID retrieves one outbox row.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Record, error) {
	var rec Record
	var status string
	err := r.pool.QueryRow(ctx,
		`SELECT id, kind, payload, run_at, status, attempts
		 FROM notification_outbox
		 WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.Kind, &rec.Payload, &rec.RunAt, &status, &rec.Attempts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, apperr.NotFound("outbox record not found")
		}
		return Record{}, fmt.Errorf("get outbox record: %w", err)
	}
	rec.Status = Status(status)
	return rec, nil
}

// ClaimPending atomically moves due pending rows to enqueued and returns
// them. SKIP LOCKED keeps concurrent dispatchers from claiming the same row.
func (r *Repository) ClaimPending(ctx context.Context, limit int) ([]Record, error) {
	if limit < 1 {
		limit = 50
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin claim tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `WITH due AS (
		SELECT id
		FROM notification_outbox
		WHERE status = 'pending' AND run_at <= now()
		ORDER BY run_at ASC
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	)
	UPDATE notification_outbox o
	SET status = 'enqueued', updated_at = now()
	FROM due
	WHERE o.id = due.id
	RETURNING o.id, o.kind, o.payload, o.run_at, o.status, o.attempts`, limit)
	if err != nil {
		return nil, fmt.Errorf("claim pending outbox records: %w", err)
	}
	defer rows.Close()

	var results []Record
	for rows.Next() {
		var rec Record
		var status string
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Payload, &rec.RunAt, &status, &rec.Attempts); err != nil {
			return nil, fmt.Errorf("scan claimed outbox record: %w", err)
		}
		rec.Status = Status(status)
		results = append(results, rec)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate claimed outbox records: %w", rows.Err())
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit claim tx: %w", err)
	}
	return results, nil
}

// MarkPending returns a row to the pending state for retry.
func (r *Repository) MarkPending(ctx context.Context, id uuid.UUID, lastError *string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notification_outbox
		 SET status = 'pending', last_error = $2, updated_at = now()
		 WHERE id = $1`,
		id, lastError,
	)
	return err
}

// MarkProcessing moves a row to processing and counts the attempt.
func (r *Repository) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notification_outbox
		 SET status = 'processing', attempts = attempts + 1, updated_at = now()
		 WHERE id = $1`,
		id,
	)
	return err
}

// MarkSucceeded finalizes a row after successful delivery.
func (r *Repository) MarkSucceeded(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notification_outbox
		 SET status = 'succeeded', last_error = NULL, updated_at = now()
		 WHERE id = $1`,
		id,
	)
	return err
}

// MarkFailed finalizes a row after delivery gave up.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, lastError string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notification_outbox
		 SET status = 'failed', last_error = $2, updated_at = now()
		 WHERE id = $1`,
		id, lastError,
	)
	return err
}
