package event

import (
	"context"
	"sync/atomic"

	"github.com/dshills/filterbar/internal/event/dispatch"
	"github.com/dshills/filterbar/internal/event/topic"
)

// Bus is the central event bus interface.
//
// The bus requires no lifecycle calls: it is usable as soon as it is
// constructed and persists for the life of the process.
type Bus interface {
	// Publish synchronously delivers the event to every live subscriber
	// of its topic, in registration order, before returning. Handler
	// failures are isolated and logged; they are never returned to the
	// caller. Publishing to a topic with no subscribers is a no-op.
	Publish(ctx context.Context, event any) error

	// Subscribe registers a handler for a topic pattern and returns a
	// Subscription whose ID is the cancellation token. Subscribing to a
	// previously unseen topic lazily creates its channel.
	Subscribe(topicPattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error)
	SubscribeFunc(topicPattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error)

	// Unsubscribe cancels a subscription. It is idempotent: cancelling a
	// nil, stale, or already-cancelled subscription is a silent no-op.
	Unsubscribe(sub Subscription)

	// UnsubscribeID cancels the subscription identified by token, if live.
	// Unknown and stale tokens are silently ignored.
	UnsubscribeID(token string)

	// UnsubscribeAll removes every live subscription for one topic pattern.
	UnsubscribeAll(topicPattern topic.Topic)

	// Clear removes every subscription for every topic. Intended for test
	// isolation between cases sharing a bus.
	Clear()

	// Stats returns current bus statistics.
	Stats() Stats
}

// bus is the default Bus implementation.
type bus struct {
	registry   *Registry
	dispatcher *dispatch.SyncDispatcher
	config     busConfig

	// Stats
	eventsPublished  atomic.Uint64
	eventsDelivered  atomic.Uint64
	handlersExecuted atomic.Uint64
	handlerErrors    atomic.Uint64
	handlerPanics    atomic.Uint64
	totalDeliveryNs  atomic.Int64
}

// NewBus creates a new event bus with the given options.
func NewBus(opts ...BusOption) Bus {
	config := defaultBusConfig()
	for _, opt := range opts {
		opt(&config)
	}

	b := &bus{
		registry: NewRegistry(),
		config:   config,
	}

	b.dispatcher = dispatch.NewSyncDispatcher(
		dispatch.WithPanicHandler(b.onPanic),
	)

	return b
}

// onPanic forwards a recovered handler panic to the configured panic
// handler. Logging happens in Publish, where the subscription is known.
func (b *bus) onPanic(event any, panicValue any, stack []byte) {
	if b.config.panicHandler != nil {
		b.config.panicHandler(event, nil, panicValue)
	}
}

// Publish delivers an event to all matching subscribers synchronously.
// Every handler runs inline on the caller's goroutine; a failing handler
// never prevents the remaining handlers from running and never surfaces
// to the publisher.
func (b *bus) Publish(ctx context.Context, event any) error {
	eventTopic := b.extractTopic(event)
	if eventTopic == "" {
		return ErrInvalidEvent
	}

	// Snapshot taken under the registry lock; handlers run outside it,
	// so a handler may itself subscribe or unsubscribe.
	subs := b.registry.MatchActive(eventTopic)

	b.eventsPublished.Add(1)

	if len(subs) == 0 {
		return nil
	}

	for _, sub := range subs {
		if !sub.ShouldDeliver(event) {
			continue
		}

		result := b.dispatcher.Dispatch(ctx, event, sub.Handler())
		b.handlersExecuted.Add(1)
		b.totalDeliveryNs.Add(result.Duration.Nanoseconds())

		switch {
		case result.Panicked:
			b.handlerPanics.Add(1)
			perr := &PanicError{
				SubscriptionID: sub.ID(),
				Topic:          string(eventTopic),
				Value:          result.PanicValue,
				Stack:          string(result.PanicStack),
			}
			b.config.logger.Error().
				Str("topic", string(eventTopic)).
				Str("token", sub.ID()).
				Str("source", extractSource(event)).
				Interface("panic", result.PanicValue).
				Err(perr).
				Msg("event handler panicked")
		case result.Error != nil:
			b.handlerErrors.Add(1)
			herr := &HandlerError{
				SubscriptionID: sub.ID(),
				Topic:          string(eventTopic),
				Err:            result.Error,
			}
			b.config.logger.Warn().
				Str("topic", string(eventTopic)).
				Str("token", sub.ID()).
				Str("source", extractSource(event)).
				Err(herr).
				Msg("event handler failed")
		case result.Success:
			b.eventsDelivered.Add(1)
		}

		// Handle one-time subscriptions
		if sub.Config().Once && result.Success {
			sub.Cancel()
			b.registry.Remove(sub.ID())
		}
	}

	return nil
}

// Subscribe creates a new subscription for the given topic pattern.
// This method is safe to call concurrently.
func (b *bus) Subscribe(topicPattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !topicPattern.IsValid() {
		return nil, ErrInvalidTopic
	}

	sub := newSubscription(generateID(), topicPattern, handler, opts...)
	b.registry.Add(sub)

	return sub, nil
}

// SubscribeFunc is a convenience method for subscribing with a function handler.
func (b *bus) SubscribeFunc(topicPattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	return b.Subscribe(topicPattern, fn, opts...)
}

// Unsubscribe cancels a subscription. Safe to call concurrently, multiple
// times, and with subscriptions that were never registered here.
func (b *bus) Unsubscribe(sub Subscription) {
	if sub == nil {
		return
	}
	b.UnsubscribeID(sub.ID())
}

// UnsubscribeID cancels the subscription identified by token.
// Idempotent: consumers call it unconditionally during teardown, so a
// token that is already gone is normal, not an error.
func (b *bus) UnsubscribeID(token string) {
	if sub, ok := b.registry.Get(token); ok {
		sub.Cancel()
	}
	if !b.registry.Remove(token) {
		b.config.logger.Debug().
			Str("token", token).
			Msg("unsubscribe for unknown token ignored")
	}
}

// UnsubscribeAll removes every live subscription for one topic pattern.
func (b *bus) UnsubscribeAll(topicPattern topic.Topic) {
	removed := b.registry.RemoveTopic(topicPattern)
	if removed > 0 {
		b.config.logger.Debug().
			Str("topic", string(topicPattern)).
			Int("removed", removed).
			Msg("unsubscribed all")
	}
}

// Clear removes every subscription for every topic.
func (b *bus) Clear() {
	b.registry.Clear()
}

// Stats returns current bus statistics.
func (b *bus) Stats() Stats {
	handlersExecuted := b.handlersExecuted.Load()

	var avgNs int64
	if handlersExecuted > 0 {
		avgNs = b.totalDeliveryNs.Load() / int64(handlersExecuted)
	}

	return Stats{
		EventsPublished:   b.eventsPublished.Load(),
		EventsDelivered:   b.eventsDelivered.Load(),
		HandlersExecuted:  handlersExecuted,
		HandlerErrors:     b.handlerErrors.Load(),
		HandlerPanics:     b.handlerPanics.Load(),
		AvgDeliveryTimeNs: avgNs,
		ActiveSubscribers: b.registry.CountActive(),
	}
}

// extractTopic extracts the topic from an event.
func (b *bus) extractTopic(event any) topic.Topic {
	if tp, ok := event.(TopicProvider); ok {
		return tp.EventTopic()
	}
	if env, ok := event.(Envelope); ok {
		return env.Topic
	}
	return ""
}

// extractSource extracts the publisher source from an event, if any.
func extractSource(event any) string {
	if mp, ok := event.(MetadataProvider); ok {
		return mp.EventMetadata().Source
	}
	return ""
}
