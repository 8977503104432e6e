package scheduler

import (
	"context"

	"fashionos_backend/internal/events"
	"fashionos_backend/platform/config"
	"fashionos_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Rescorer sweeps all active contacts through the scoring pipeline.
type Rescorer interface {
	RescoreAll(ctx context.Context) (scored, failed int, err error)
}

// Worker consumes scheduler tasks and turns them into domain events or
// service calls.
type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	bus      events.Bus
	rescorer Rescorer
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, bus events.Bus, rescorer Rescorer, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		bus:      bus,
		rescorer: rescorer,
		log:      log,
	}

	mux.HandleFunc(TaskNotificationOutboxDue, w.handleNotificationOutboxDue)
	mux.HandleFunc(TaskContactRescore, w.handleContactRescore)

	return w, nil
}

func (w *Worker) handleNotificationOutboxDue(ctx context.Context, task *asynq.Task) error {
	if w.bus == nil {
		return nil
	}

	payload, err := ParseNotificationOutboxDuePayload(task)
	if err != nil {
		return err
	}

	outboxID, err := uuid.Parse(payload.OutboxID)
	if err != nil {
		return err
	}

	return w.bus.PublishSync(ctx, events.NotificationOutboxDue{
		BaseEvent: events.NewBaseEvent(),
		OutboxID:  outboxID,
	})
}

func (w *Worker) handleContactRescore(ctx context.Context, _ *asynq.Task) error {
	if w.rescorer == nil {
		return nil
	}

	scored, failed, err := w.rescorer.RescoreAll(ctx)
	if err != nil {
		return err
	}

	w.log.Info("rescore sweep finished", "scored", scored, "failed", failed)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
