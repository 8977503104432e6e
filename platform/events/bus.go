package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fashionos_backend/platform/logger"
)

// asyncHandlerTimeout bounds how long an async handler may run after the
// originating request context is gone.
const asyncHandlerTimeout = 30 * time.Second

// InMemoryBus is a process-local Bus implementation. Handlers registered
// via Subscribe run in-process; Publish dispatches each handler on its own
// goroutine, PublishSync runs them inline and collects errors.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for the named event type.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish dispatches the event to all subscribed handlers asynchronously.
// Handler errors are logged, not returned; the event is detached from the
// caller's context so request cancellation does not abort handlers.
func (b *InMemoryBus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	subscribed := append([]Handler(nil), b.handlers[event.EventName()]...)
	b.mu.RUnlock()

	for _, handler := range subscribed {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil && b.log != nil {
					b.log.Error("event handler panic",
						"event", event.EventName(),
						"panic", fmt.Sprintf("%v", r),
					)
				}
			}()

			handlerCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), asyncHandlerTimeout)
			defer cancel()

			if err := h.Handle(handlerCtx, event); err != nil && b.log != nil {
				b.log.Error("event handler failed",
					"event", event.EventName(),
					"error", err.Error(),
				)
			}
		}(handler)
	}
}

// PublishSync dispatches the event to all subscribed handlers inline and
// returns the combined error if any handler fails.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	b.mu.RLock()
	subscribed := append([]Handler(nil), b.handlers[event.EventName()]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range subscribed {
		if err := handler.Handle(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("handle %s: %w", event.EventName(), err))
		}
	}
	return errors.Join(errs...)
}
