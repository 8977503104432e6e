package scheduler

import (
	"context"

	"fashionos_backend/platform/config"
	"fashionos_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Periodic registers cron-driven tasks, currently just the nightly contact
// rescore sweep.
type Periodic struct {
	scheduler *asynq.Scheduler
	log       *logger.Logger
}

func NewPeriodic(cfg config.SchedulerConfig, log *logger.Logger) (*Periodic, error) {
	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}

	scheduler := asynq.NewScheduler(opt, nil)

	cron := cfg.GetRescoreCron()
	if cron == "" {
		cron = "0 3 * * *"
	}

	if _, err := scheduler.Register(cron, NewContactRescoreTask(), asynq.Queue(queueName(cfg))); err != nil {
		return nil, err
	}

	return &Periodic{scheduler: scheduler, log: log}, nil
}

func (p *Periodic) Run(ctx context.Context) {
	if p == nil || p.scheduler == nil {
		return
	}

	go func() {
		<-ctx.Done()
		p.scheduler.Shutdown()
	}()

	if err := p.scheduler.Run(); err != nil {
		p.log.Error("periodic scheduler stopped", "error", err)
	}
}
