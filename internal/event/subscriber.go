package event

import (
	"context"
	"sync"

	"github.com/dshills/filterbar/internal/event/topic"
)

// Subscriber is the per-consumer subscription manager.
//
// Every widget that subscribes to the bus must route its subscriptions
// through a Subscriber: each token is tracked the moment Subscribe
// returns, even if the rest of the widget's setup later fails, so a
// partial setup never orphans a token. When the widget's lifetime ends
// it calls Close exactly once; calling Close again is safe.
type Subscriber struct {
	bus           Bus
	subscriptions []Subscription
	mu            sync.Mutex
	closed        bool
}

// NewSubscriber creates a new Subscriber wrapping the given bus.
func NewSubscriber(bus Bus) *Subscriber {
	return &Subscriber{
		bus:           bus,
		subscriptions: make([]Subscription, 0),
	}
}

// Subscribe creates a subscription for the given topic pattern.
// The token is tracked for cleanup when Close is called.
func (s *Subscriber) Subscribe(topicPattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSubscriberClosed
	}

	sub, err := s.bus.Subscribe(topicPattern, handler, opts...)
	if err != nil {
		return nil, err
	}

	s.subscriptions = append(s.subscriptions, sub)
	return sub, nil
}

// SubscribeFunc creates a subscription with a function handler.
func (s *Subscriber) SubscribeFunc(topicPattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	return s.Subscribe(topicPattern, fn, opts...)
}

// SubscribeOnce creates a one-time subscription that auto-cancels after the first event.
func (s *Subscriber) SubscribeOnce(topicPattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	opts = append(opts, WithOnce())
	return s.Subscribe(topicPattern, handler, opts...)
}

// SubscribeWithFilter creates a subscription with a filter predicate.
// The handler is only called for events that pass the filter.
func (s *Subscriber) SubscribeWithFilter(topicPattern topic.Topic, handler Handler, filter FilterFunc, opts ...SubscriptionOption) (Subscription, error) {
	opts = append(opts, WithFilter(filter))
	return s.Subscribe(topicPattern, handler, opts...)
}

// SubscribeTyped creates a type-safe subscription for Event[T].
// The handler will only be called for events that match the type.
func SubscribeTyped[T any](s *Subscriber, topicPattern topic.Topic, handler TypedHandlerFunc[T], opts ...SubscriptionOption) (Subscription, error) {
	return s.Subscribe(topicPattern, AsHandlerFunc(handler), opts...)
}

// SubscribePayload creates a subscription that extracts and handles the payload directly.
// This is useful when the consumer doesn't need the Event[T] wrapper.
func SubscribePayload[T any](s *Subscriber, topicPattern topic.Topic, handler func(ctx context.Context, payload T) error, opts ...SubscriptionOption) (Subscription, error) {
	wrappedHandler := HandlerFunc(func(ctx context.Context, event any) error {
		// Try typed Event[T] first
		if e, ok := event.(Event[T]); ok {
			return handler(ctx, e.Payload)
		}
		// Try Envelope with typed payload
		if env, ok := event.(Envelope); ok {
			if payload, ok := env.Payload.(T); ok {
				return handler(ctx, payload)
			}
		}
		// Try direct payload
		if payload, ok := event.(T); ok {
			return handler(ctx, payload)
		}
		// Type mismatch - skip silently
		return nil
	})
	return s.Subscribe(topicPattern, wrappedHandler, opts...)
}

// Unsubscribe removes a specific subscription. Like the bus, a nil
// subscription is a silent no-op.
func (s *Subscriber) Unsubscribe(sub Subscription) {
	if sub == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, tracked := range s.subscriptions {
		if tracked.ID() == sub.ID() {
			s.subscriptions = append(s.subscriptions[:i], s.subscriptions[i+1:]...)
			break
		}
	}

	s.bus.Unsubscribe(sub)
}

// UnsubscribeAll removes all subscriptions managed by this subscriber
// without closing it.
func (s *Subscriber) UnsubscribeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subscriptions {
		s.bus.Unsubscribe(sub)
	}
	s.subscriptions = s.subscriptions[:0]
}

// Close cancels all tracked subscriptions and prevents new ones.
// This is the consumer's teardown hook; it runs once, and repeated
// calls are safe no-ops.
func (s *Subscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	for _, sub := range s.subscriptions {
		s.bus.Unsubscribe(sub)
	}
	s.subscriptions = nil

	return nil
}

// Count returns the number of tracked subscriptions.
func (s *Subscriber) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscriptions)
}

// IsClosed returns true if the subscriber has been closed.
func (s *Subscriber) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Bus returns the underlying bus.
func (s *Subscriber) Bus() Bus {
	return s.bus
}
