// Package messaging implements the in-memory event bus that carries domain
// events between the application layer and its subscribers within one
// enlistment session.
package messaging

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

// ErrEventBusClosed is returned when publishing or subscribing after Close.
var ErrEventBusClosed = errors.New("event bus is closed")

// EventBus is the publishing side consumed by the application layer.
type EventBus interface {
	Publish(event shared.Event) error
}

// InMemoryEventBus is a mutex-guarded in-process event bus. Suitable for a
// single enlistment session; there is no cross-process delivery.
type InMemoryEventBus struct {
	mu          sync.RWMutex
	handlers    map[shared.EventType][]shared.EventHandler
	allHandlers []shared.EventHandler
	asyncMode   bool
	workerPool  chan struct{}
	logger      *slog.Logger
	closed      bool
	closeCh     chan struct{}
	wg          sync.WaitGroup
}

// InMemoryEventBusConfig contains configuration for InMemoryEventBus.
type InMemoryEventBusConfig struct {
	// AsyncMode enables asynchronous handler execution.
	AsyncMode bool

	// WorkerPoolSize is the number of concurrent workers for async processing.
	WorkerPoolSize int

	// Logger for structured logging.
	Logger *slog.Logger
}

// DefaultInMemoryEventBusConfig returns sensible defaults: synchronous
// dispatch, so that test subscribers observe events deterministically.
func DefaultInMemoryEventBusConfig() InMemoryEventBusConfig {
	return InMemoryEventBusConfig{
		AsyncMode:      false,
		WorkerPoolSize: 4,
	}
}

// NewInMemoryEventBus creates a new in-memory event bus.
func NewInMemoryEventBus(config InMemoryEventBusConfig) *InMemoryEventBus {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = 4
	}
	return &InMemoryEventBus{
		handlers:   make(map[shared.EventType][]shared.EventHandler),
		asyncMode:  config.AsyncMode,
		workerPool: make(chan struct{}, config.WorkerPoolSize),
		logger:     config.Logger,
		closeCh:    make(chan struct{}),
	}
}

// Subscribe registers a handler for a specific event type.
func (b *InMemoryEventBus) Subscribe(eventType shared.EventType, handler shared.EventHandler) error {
	if handler == nil {
		return errors.New("handler cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrEventBusClosed
	}
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.logger.Debug("subscribed handler", "event_type", eventType)
	return nil
}

// SubscribeAll registers a handler for all events.
func (b *InMemoryEventBus) SubscribeAll(handler shared.EventHandler) error {
	if handler == nil {
		return errors.New("handler cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrEventBusClosed
	}
	b.allHandlers = append(b.allHandlers, handler)
	b.logger.Debug("subscribed global handler")
	return nil
}

// Publish sends an event to all subscribed handlers. Handler errors are
// logged, never propagated: events are published after the domain has
// committed, so a failing subscriber must not fail the operation.
func (b *InMemoryEventBus) Publish(event shared.Event) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrEventBusClosed
	}
	handlers := make([]shared.EventHandler, 0, len(b.handlers[event.EventType()])+len(b.allHandlers))
	handlers = append(handlers, b.handlers[event.EventType()]...)
	handlers = append(handlers, b.allHandlers...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.logger.Debug("no handlers for event", "event_type", event.EventType())
		return nil
	}

	for _, handler := range handlers {
		if b.asyncMode {
			b.executeAsync(event, handler)
		} else if err := handler(event); err != nil {
			b.logger.Error("handler error", "event_type", event.EventType(), "error", err)
		}
	}
	return nil
}

// executeAsync executes a handler on the worker pool.
func (b *InMemoryEventBus) executeAsync(event shared.Event, handler shared.EventHandler) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		select {
		case b.workerPool <- struct{}{}:
			defer func() { <-b.workerPool }()
		case <-b.closeCh:
			return
		}

		start := time.Now()
		if err := handler(event); err != nil {
			b.logger.Error("async handler error",
				"event_type", event.EventType(),
				"duration", time.Since(start),
				"error", err,
			)
		}
	}()
}

// Close shuts down the bus and waits for pending async handlers to finish.
func (b *InMemoryEventBus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.closeCh)
	b.mu.Unlock()

	b.wg.Wait()
	b.logger.Debug("event bus closed")
	return nil
}
