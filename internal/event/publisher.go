package event

import (
	"context"
	"time"

	"github.com/dshills/filterbar/internal/event/topic"
)

// timeNow is a variable to allow testing with fixed timestamps.
var timeNow = time.Now

// Publisher provides a simplified API for publishing events.
// It wraps a Bus and stamps every outgoing event with a source
// identifier so subscribers can tell sibling widgets apart (and
// suppress their own echoes, see FilterExcludeSource).
type Publisher struct {
	bus    Bus
	source string
}

// NewPublisher creates a new Publisher wrapping the given bus.
// The source parameter identifies where events originate (e.g., "tagbar",
// "input.category").
func NewPublisher(bus Bus, source string) *Publisher {
	return &Publisher{
		bus:    bus,
		source: source,
	}
}

// Publish sends an event that already carries its own topic.
func (p *Publisher) Publish(ctx context.Context, event any) error {
	return p.bus.Publish(ctx, event)
}

// PublishTyped wraps a payload in an Envelope stamped with the
// publisher's source and delivers it synchronously.
func (p *Publisher) PublishTyped(ctx context.Context, eventType topic.Topic, payload any) error {
	env := Envelope{
		Topic:   eventType,
		Payload: payload,
		Metadata: Metadata{
			ID:        generateID(),
			Source:    p.source,
			Timestamp: timeNow(),
			Version:   1,
		},
	}
	return p.bus.Publish(ctx, env)
}

// PublishEvent creates and publishes a typed Event[T].
// This provides full type safety for the payload.
func PublishEvent[T any](ctx context.Context, p *Publisher, eventType topic.Topic, payload T) error {
	event := NewEvent(eventType, payload, p.source)
	return p.bus.Publish(ctx, event)
}

// Source returns the publisher's source identifier.
func (p *Publisher) Source() string {
	return p.source
}

// Bus returns the underlying bus.
func (p *Publisher) Bus() Bus {
	return p.bus
}
