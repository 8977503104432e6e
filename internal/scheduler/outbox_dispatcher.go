package scheduler

import (
	"context"
	"time"

	"fashionos_backend/internal/notification/outbox"
	"fashionos_backend/platform/config"
	"fashionos_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pendingClaimer interface {
	ClaimPending(ctx context.Context, limit int) ([]outbox.Record, error)
	MarkPending(ctx context.Context, id uuid.UUID, lastError *string) error
}

// OutboxDispatcher polls the notification outbox and enqueues due records
// as worker tasks. A record that fails to enqueue is returned to pending so
// the next tick retries it.
type OutboxDispatcher struct {
	client    OutboxEnqueuer
	repo      pendingClaimer
	interval  time.Duration
	batchSize int
	log       *logger.Logger
}

func NewOutboxDispatcher(cfg config.SchedulerConfig, pool *pgxpool.Pool, log *logger.Logger) (*OutboxDispatcher, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	interval := cfg.GetOutboxDispatchInterval()
	if interval <= 0 {
		interval = 15 * time.Second
	}

	batchSize := cfg.GetOutboxBatchSize()
	if batchSize < 1 {
		batchSize = 50
	}

	return &OutboxDispatcher{
		client:    client,
		repo:      outbox.New(pool),
		interval:  interval,
		batchSize: batchSize,
		log:       log,
	}, nil
}

func (d *OutboxDispatcher) Close() error {
	if d == nil {
		return nil
	}
	if closer, ok := d.client.(*Client); ok {
		return closer.Close()
	}
	return nil
}

func (d *OutboxDispatcher) Run(ctx context.Context) {
	if d == nil || d.client == nil || d.repo == nil {
		return
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		d.dispatchDue(ctx)
	}
}

func (d *OutboxDispatcher) dispatchDue(ctx context.Context) {
	records, err := d.repo.ClaimPending(ctx, d.batchSize)
	if err != nil {
		d.log.Warn("outbox claim failed", "error", err)
		return
	}

	for _, rec := range records {
		payload := NotificationOutboxDuePayload{OutboxID: rec.ID.String()}
		if err := d.client.EnqueueOutboxDue(ctx, payload, rec.RunAt); err != nil {
			msg := err.Error()
			_ = d.repo.MarkPending(ctx, rec.ID, &msg)
			d.log.Warn("outbox enqueue failed", "outbox_id", rec.ID.String(), "error", err)
		}
	}
}
