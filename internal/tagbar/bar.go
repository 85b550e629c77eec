package tagbar

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/filterbar/internal/event"
	"github.com/dshills/filterbar/internal/i18n"
)

// Option configures a Bar.
type Option func(*Bar)

// WithTheme sets the bar's rendering theme.
func WithTheme(theme Theme) Option {
	return func(b *Bar) {
		b.theme = theme
	}
}

// WithPrinter sets the message printer for user-visible strings.
func WithPrinter(printer *i18n.Printer) Option {
	return func(b *Bar) {
		b.printer = printer
	}
}

// WithLogger sets the bar's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Bar) {
		b.logger = logger
	}
}

// WithOnRemove registers a direct callback invoked after a chip is
// removed, in addition to the filter.removed event.
func WithOnRemove(fn func(key, value string)) Option {
	return func(b *Bar) {
		b.onRemove = fn
	}
}

// WithOnClear registers a direct callback invoked after the bar is
// cleared, in addition to the filter.cleared event.
func WithOnClear(fn func()) Option {
	return func(b *Bar) {
		b.onClear = fn
	}
}

// Bar is the filter chip bar. It mirrors the active filter selection by
// subscribing to filter.changed and filter.applied, and announces its
// own mutations on filter.removed and filter.cleared.
type Bar struct {
	state   *State
	theme   Theme
	printer *i18n.Printer
	logger  zerolog.Logger

	publisher  *event.Publisher
	subscriber *event.Subscriber

	onRemove func(key, value string)
	onClear  func()

	mu      sync.Mutex
	regions []hitRegion
	closed  bool
}

// New creates a detached Bar. Call Attach to wire it to a bus.
func New(opts ...Option) *Bar {
	b := &Bar{
		state:   NewState(),
		theme:   NewTheme(DefaultAccent),
		printer: i18n.NewCatalog().Printer("en"),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach wires the bar to a bus: it starts mirroring filter.changed and
// filter.applied events from other widgets, and publishes its own
// mutations with Source as the event source. The bar runs at critical
// priority so it observes selection changes before downstream widgets.
func (b *Bar) Attach(bus event.Bus) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return event.ErrSubscriberClosed
	}

	b.publisher = event.NewPublisher(bus, Source)
	b.subscriber = event.NewSubscriber(bus)

	// The bar ignores its own echoes so removing a chip does not loop
	// back through the subscription.
	notSelf := event.FilterExcludeSource(Source)

	handler := event.HandlerFunc(b.handleFilterEvent)

	if _, err := b.subscriber.SubscribeWithFilter(TopicChanged, handler, notSelf, event.WithPriority(event.PriorityCritical)); err != nil {
		b.subscriber.Close()
		return err
	}
	if _, err := b.subscriber.SubscribeWithFilter(TopicApplied, handler, notSelf, event.WithPriority(event.PriorityCritical)); err != nil {
		b.subscriber.Close()
		return err
	}

	b.logger.Debug().Str("source", Source).Msg("tag bar attached to bus")
	return nil
}

// Close detaches the bar from the bus. It is safe to call more than
// once and safe to call on a bar that was never attached.
func (b *Bar) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	if b.subscriber != nil {
		if err := b.subscriber.Close(); err != nil {
			return err
		}
	}
	b.logger.Debug().Msg("tag bar detached from bus")
	return nil
}

// handleFilterEvent updates the bar's state from a selection event
// published by another widget.
func (b *Bar) handleFilterEvent(ctx context.Context, evt any) error {
	payload := evt
	if env, ok := evt.(event.Envelope); ok {
		payload = env.Payload
	}

	switch p := payload.(type) {
	case ChangedPayload:
		if p.Filters != nil {
			b.state.Replace(p.Filters, nil)
		} else {
			b.state.Set(p.Key, p.Values)
		}
	case *ChangedPayload:
		return b.handleFilterEvent(ctx, *p)
	case map[string]any:
		b.applyLegacyPayload(p)
	default:
		b.logger.Debug().
			Type("payload", payload).
			Msg("ignoring filter event with unknown payload type")
	}
	return nil
}

// applyLegacyPayload handles the loosely-typed map form used by
// adapters (see event.BusAdapter): {"key": string, "values": []string}
// or {"filters": map[string][]string}.
func (b *Bar) applyLegacyPayload(p map[string]any) {
	if filters, ok := p["filters"]; ok {
		if m := coerceFilters(filters); m != nil {
			b.state.Replace(m, nil)
			return
		}
	}

	key, _ := p["key"].(string)
	if key == "" {
		return
	}
	b.state.Set(key, coerceValues(p["values"]))
}

func coerceValues(v any) []string {
	switch vs := v.(type) {
	case []string:
		return vs
	case []any:
		out := make([]string, 0, len(vs))
		for _, item := range vs {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{vs}
	default:
		return nil
	}
}

func coerceFilters(v any) map[string][]string {
	switch m := v.(type) {
	case map[string][]string:
		return m
	case map[string]any:
		out := make(map[string][]string, len(m))
		for key, values := range m {
			out[key] = coerceValues(values)
		}
		return out
	default:
		return nil
	}
}

// RemoveTag removes one value chip, publishes filter.removed, and runs
// the OnRemove callback. Removing a value that is not present is a
// no-op.
func (b *Bar) RemoveTag(ctx context.Context, key, value string) error {
	if !b.state.Remove(key, value) {
		return nil
	}

	b.logger.Debug().Str("key", key).Str("value", value).Msg("filter tag removed")

	if b.onRemove != nil {
		b.onRemove(key, value)
	}

	if b.publisher == nil {
		return nil
	}
	return b.publisher.PublishTyped(ctx, TopicRemoved, RemovedPayload{
		Source: Source,
		Key:    key,
		Value:  value,
	})
}

// ClearAll removes every chip, publishes filter.cleared, and runs the
// OnClear callback. Clearing an empty bar is a no-op.
func (b *Bar) ClearAll(ctx context.Context) error {
	if b.state.Clear() == 0 {
		return nil
	}

	b.logger.Debug().Msg("all filter tags cleared")

	if b.onClear != nil {
		b.onClear()
	}

	if b.publisher == nil {
		return nil
	}
	return b.publisher.PublishTyped(ctx, TopicCleared, ClearedPayload{Source: Source})
}

// State returns the bar's filter state.
func (b *Bar) State() *State {
	return b.state
}

// Filters returns the active filters in display order.
func (b *Bar) Filters() []Filter {
	return b.state.Filters()
}

// Count returns the total number of active filter values.
func (b *Bar) Count() int {
	return b.state.Count()
}
