package event

import (
	"context"
	"sync/atomic"

	"github.com/dshills/filterbar/internal/event/topic"
)

// EventPublisher is the string-name, map-payload publish surface expected
// by callers that predate the typed event model.
type EventPublisher interface {
	Publish(eventName string, data map[string]any)
}

// BusAdapter adapts the typed Bus to the EventPublisher interface.
// Payloads arrive as plain maps; the adapter wraps them in an Envelope
// stamped with the adapter's source so typed subscribers (and
// SubscribePayload consumers) still work.
type BusAdapter struct {
	bus    Bus
	source string
	closed atomic.Bool
	ctx    context.Context
	cancel context.CancelFunc
}

// NewBusAdapter creates a new adapter wrapping the given bus.
// The source parameter identifies the origin of events.
func NewBusAdapter(bus Bus, source string) *BusAdapter {
	ctx, cancel := context.WithCancel(context.Background())
	return &BusAdapter{
		bus:    bus,
		source: source,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Publish implements the EventPublisher interface.
// Delivery is synchronous like the rest of the bus; handler failures are
// isolated by the bus and never surface here.
func (a *BusAdapter) Publish(eventName string, data map[string]any) {
	if a.closed.Load() {
		return
	}

	env := Envelope{
		Topic:   topic.Topic(eventName),
		Payload: data,
		Metadata: Metadata{
			ID:        generateID(),
			Source:    a.source,
			Timestamp: timeNow(),
			Version:   1,
		},
	}

	_ = a.bus.Publish(a.ctx, env)
}

// PublishErr publishes like Publish but reports an invalid event name.
func (a *BusAdapter) PublishErr(eventName string, data map[string]any) error {
	if a.closed.Load() {
		return ErrAdapterClosed
	}

	env := Envelope{
		Topic:   topic.Topic(eventName),
		Payload: data,
		Metadata: Metadata{
			ID:        generateID(),
			Source:    a.source,
			Timestamp: timeNow(),
			Version:   1,
		},
	}

	return a.bus.Publish(a.ctx, env)
}

// Close shuts down the adapter. Further Publish calls are dropped.
func (a *BusAdapter) Close() error {
	if a.closed.Swap(true) {
		return nil
	}
	a.cancel()
	return nil
}

// Bus returns the underlying event bus.
func (a *BusAdapter) Bus() Bus {
	return a.bus
}
