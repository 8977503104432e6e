// Package notification provides in-app notifications, the coordinator
// dispatch endpoint, the SSE stream, and the outbox that decouples event
// publication from delivery.
package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"fashionos_backend/internal/events"
	apphttp "fashionos_backend/internal/http"
	"fashionos_backend/internal/notification/dispatch"
	"fashionos_backend/internal/notification/handler"
	"fashionos_backend/internal/notification/inapp"
	"fashionos_backend/internal/notification/outbox"
	"fashionos_backend/internal/notification/sse"
	"fashionos_backend/platform/logger"
	"fashionos_backend/platform/validator"
)

// PlanningUpdatePayload is the outbox payload for planning changes.
type PlanningUpdatePayload struct {
	EventID    uuid.UUID `json:"eventId"`
	UpdateType string    `json:"updateType"`
	ActorID    uuid.UUID `json:"actorId"`
}

// ContactScoredPayload is the outbox payload for scoring runs.
type ContactScoredPayload struct {
	ContactID     uuid.UUID `json:"contactId"`
	Score         int       `json:"score"`
	PreviousScore int       `json:"previousScore"`
	ScoreChange   int       `json:"scoreChange"`
}

// Module is the notification bounded context module implementing http.Module.
type Module struct {
	handler  *handler.Handler
	dispatch *dispatch.Service
	inapp    *inapp.Repository
	outbox   *outbox.Repository
	sse      *sse.Service
	log      *logger.Logger
}

// NewModule creates and initializes the notification module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	inappRepo := inapp.NewRepository(pool)
	sseSvc := sse.New(log)
	dispatchSvc := dispatch.New(dispatch.NewRepository(pool), inappRepo, sseSvc, log)
	outboxRepo := outbox.New(pool)
	h := handler.New(dispatchSvc, inappRepo, sseSvc, val)

	return &Module{
		handler:  h,
		dispatch: dispatchSvc,
		inapp:    inappRepo,
		outbox:   outboxRepo,
		sse:      sseSvc,
		log:      log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notification"
}

// Outbox returns the outbox repository for the scheduler's dispatcher.
func (m *Module) Outbox() *outbox.Repository {
	return m.outbox
}

// SSE returns the stream service so the composition root can close it on
// shutdown.
func (m *Module) SSE() *sse.Service {
	return m.sse
}

// RegisterRoutes mounts notification routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.POST("/notifications/dispatch", m.handler.Dispatch)

	group := ctx.Protected.Group("/notifications")
	group.GET("", m.handler.List)
	group.GET("/unread-count", m.handler.UnreadCount)
	group.POST("/:id/read", m.handler.MarkRead)
	group.POST("/read-all", m.handler.MarkAllRead)
	group.GET("/stream", m.handler.Stream())
}

// RegisterHandlers subscribes to the domain events that feed the outbox and
// to the scheduler's processing trigger.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.ContactScored{}.EventName(), m)
	bus.Subscribe(events.PlanningUpdated{}.EventName(), m)
	bus.Subscribe(events.NotificationOutboxDue{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.ContactScored:
		_, err := m.outbox.Insert(ctx, outbox.InsertParams{
			Kind: outbox.KindContactScored,
			Payload: ContactScoredPayload{
				ContactID:     e.ContactID,
				Score:         e.Score,
				PreviousScore: e.PreviousScore,
				ScoreChange:   e.ScoreChange,
			},
		})
		return err
	case events.PlanningUpdated:
		_, err := m.outbox.Insert(ctx, outbox.InsertParams{
			Kind: outbox.KindPlanningUpdate,
			Payload: PlanningUpdatePayload{
				EventID:    e.EventID,
				UpdateType: e.UpdateType,
				ActorID:    e.ActorID,
			},
		})
		return err
	case events.NotificationOutboxDue:
		return m.ProcessOutbox(ctx, e.OutboxID)
	default:
		return nil
	}
}

// ProcessOutbox delivers one claimed outbox record. Failures are recorded on
// the row so operators can inspect and retry.
func (m *Module) ProcessOutbox(ctx context.Context, outboxID uuid.UUID) error {
	rec, err := m.outbox.GetByID(ctx, outboxID)
	if err != nil {
		return err
	}

	if err := m.outbox.MarkProcessing(ctx, rec.ID); err != nil {
		return err
	}

	if err := m.deliver(ctx, rec); err != nil {
		if markErr := m.outbox.MarkFailed(ctx, rec.ID, err.Error()); markErr != nil {
			m.log.Error("mark outbox failed", "outbox_id", rec.ID.String(), "error", markErr.Error())
		}
		return err
	}

	return m.outbox.MarkSucceeded(ctx, rec.ID)
}

func (m *Module) deliver(ctx context.Context, rec outbox.Record) error {
	switch rec.Kind {
	case outbox.KindPlanningUpdate:
		var payload PlanningUpdatePayload
		if err := json.Unmarshal(rec.Payload, &payload); err != nil {
			return fmt.Errorf("decode planning update payload: %w", err)
		}
		_, err := m.dispatch.Dispatch(ctx, payload.EventID, payload.UpdateType)
		return err
	case outbox.KindContactScored:
		var payload ContactScoredPayload
		if err := json.Unmarshal(rec.Payload, &payload); err != nil {
			return fmt.Errorf("decode contact scored payload: %w", err)
		}
		m.sse.Broadcast(sse.Event{
			Type: sse.EventContactScored,
			Data: payload,
		})
		return nil
	default:
		return fmt.Errorf("unknown outbox kind %q", rec.Kind)
	}
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
