package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"

	"fashionos_backend/internal/events"
	"fashionos_backend/internal/notification/outbox"
	"fashionos_backend/platform/logger"
)

type fakeClaimer struct {
	records  []outbox.Record
	claimErr error
	pending  map[uuid.UUID]string
}

func (f *fakeClaimer) ClaimPending(_ context.Context, _ int) ([]outbox.Record, error) {
	if f.claimErr != nil {
		return nil, f.claimErr
	}
	return f.records, nil
}

func (f *fakeClaimer) MarkPending(_ context.Context, id uuid.UUID, lastError *string) error {
	if f.pending == nil {
		f.pending = make(map[uuid.UUID]string)
	}
	msg := ""
	if lastError != nil {
		msg = *lastError
	}
	f.pending[id] = msg
	return nil
}

type fakeEnqueuer struct {
	enqueued []NotificationOutboxDuePayload
	failFor  map[string]error
}

func (f *fakeEnqueuer) EnqueueOutboxDue(_ context.Context, payload NotificationOutboxDuePayload, _ time.Time) error {
	if err, ok := f.failFor[payload.OutboxID]; ok {
		return err
	}
	f.enqueued = append(f.enqueued, payload)
	return nil
}

type captureBus struct {
	published []events.Event
	syncErr   error
}

func (b *captureBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *captureBus) PublishSync(_ context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return b.syncErr
}

func (b *captureBus) Subscribe(_ string, _ events.Handler) {}

func TestDispatchDueEnqueuesClaimedRecords(t *testing.T) {
	first := outbox.Record{ID: uuid.New(), Kind: outbox.KindPlanningUpdate, RunAt: time.Now().UTC()}
	second := outbox.Record{ID: uuid.New(), Kind: outbox.KindContactScored, RunAt: time.Now().UTC()}

	claimer := &fakeClaimer{records: []outbox.Record{first, second}}
	enqueuer := &fakeEnqueuer{}
	d := &OutboxDispatcher{
		client:    enqueuer,
		repo:      claimer,
		interval:  time.Second,
		batchSize: 10,
		log:       logger.New("test"),
	}

	d.dispatchDue(context.Background())

	if len(enqueuer.enqueued) != 2 {
		t.Fatalf("enqueued %d tasks, want 2", len(enqueuer.enqueued))
	}
	if enqueuer.enqueued[0].OutboxID != first.ID.String() {
		t.Errorf("first payload = %q, want %q", enqueuer.enqueued[0].OutboxID, first.ID)
	}
	if len(claimer.pending) != 0 {
		t.Errorf("returned %d records to pending, want 0", len(claimer.pending))
	}
}

func TestDispatchDueReturnsFailedEnqueueToPending(t *testing.T) {
	rec := outbox.Record{ID: uuid.New(), Kind: outbox.KindPlanningUpdate, RunAt: time.Now().UTC()}

	claimer := &fakeClaimer{records: []outbox.Record{rec}}
	enqueuer := &fakeEnqueuer{failFor: map[string]error{
		rec.ID.String(): errors.New("broker unavailable"),
	}}
	d := &OutboxDispatcher{
		client:    enqueuer,
		repo:      claimer,
		interval:  time.Second,
		batchSize: 10,
		log:       logger.New("test"),
	}

	d.dispatchDue(context.Background())

	if len(enqueuer.enqueued) != 0 {
		t.Fatalf("enqueued %d tasks, want 0", len(enqueuer.enqueued))
	}
	msg, ok := claimer.pending[rec.ID]
	if !ok {
		t.Fatal("record was not returned to pending")
	}
	if !strings.Contains(msg, "broker unavailable") {
		t.Errorf("last error = %q, want enqueue failure", msg)
	}
}

func TestWorkerOutboxDueTaskPublishesEvent(t *testing.T) {
	bus := &captureBus{}
	w := &Worker{bus: bus, log: logger.New("test")}

	outboxID := uuid.New()
	task, err := NewNotificationOutboxDueTask(NotificationOutboxDuePayload{OutboxID: outboxID.String()})
	if err != nil {
		t.Fatalf("NewNotificationOutboxDueTask: %v", err)
	}

	if err := w.handleNotificationOutboxDue(context.Background(), task); err != nil {
		t.Fatalf("handleNotificationOutboxDue: %v", err)
	}

	if len(bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.published))
	}
	due, ok := bus.published[0].(events.NotificationOutboxDue)
	if !ok {
		t.Fatalf("published %T, want NotificationOutboxDue", bus.published[0])
	}
	if due.OutboxID != outboxID {
		t.Errorf("outbox id = %s, want %s", due.OutboxID, outboxID)
	}
}

func TestWorkerOutboxDueTaskRejectsBadID(t *testing.T) {
	bus := &captureBus{}
	w := &Worker{bus: bus, log: logger.New("test")}

	task, err := NewNotificationOutboxDueTask(NotificationOutboxDuePayload{OutboxID: "not-a-uuid"})
	if err != nil {
		t.Fatalf("NewNotificationOutboxDueTask: %v", err)
	}

	if err := w.handleNotificationOutboxDue(context.Background(), task); err == nil {
		t.Fatal("expected error for malformed outbox id")
	}
	if len(bus.published) != 0 {
		t.Errorf("published %d events, want 0", len(bus.published))
	}
}

type testSchedulerConfig struct {
	redisURL string
}

func (c testSchedulerConfig) GetRedisURL() string                      { return c.redisURL }
func (c testSchedulerConfig) GetRedisTLSInsecure() bool                { return false }
func (c testSchedulerConfig) GetAsynqQueueName() string                { return "default" }
func (c testSchedulerConfig) GetAsynqConcurrency() int                 { return 1 }
func (c testSchedulerConfig) GetOutboxDispatchInterval() time.Duration { return time.Second }
func (c testSchedulerConfig) GetOutboxBatchSize() int                  { return 10 }
func (c testSchedulerConfig) GetRescoreCron() string                   { return "0 3 * * *" }

func TestClientEnqueuesAgainstRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(testSchedulerConfig{redisURL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	payload := NotificationOutboxDuePayload{OutboxID: uuid.NewString()}
	if err := client.EnqueueOutboxDue(context.Background(), payload, time.Now()); err != nil {
		t.Fatalf("EnqueueOutboxDue: %v", err)
	}

	if len(mr.Keys()) == 0 {
		t.Fatal("no task data written to redis")
	}
}

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{}); err == nil {
		t.Fatal("expected error for missing redis url")
	}
}
