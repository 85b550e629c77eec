package tagbar

import (
	"context"
	"reflect"
	"testing"

	"github.com/dshills/filterbar/internal/event"
)

func newAttachedBar(t *testing.T, opts ...Option) (*Bar, event.Bus) {
	t.Helper()
	bus := event.NewBus()
	bar := New(opts...)
	if err := bar.Attach(bus); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	t.Cleanup(func() { bar.Close() })
	return bar, bus
}

func TestBarMirrorsFilterChanged(t *testing.T) {
	bar, bus := newAttachedBar(t)

	input := event.NewPublisher(bus, "input.category")
	err := input.PublishTyped(context.Background(), TopicChanged, ChangedPayload{
		Source: "input.category",
		Key:    "category",
		Values: []string{"electronics"},
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	values, ok := bar.State().Get("category")
	if !ok {
		t.Fatal("bar did not mirror the selection")
	}
	if !reflect.DeepEqual(values, []string{"electronics"}) {
		t.Errorf("values = %v, want [electronics]", values)
	}
}

func TestBarMirrorsFilterApplied(t *testing.T) {
	bar, bus := newAttachedBar(t)
	bar.State().Set("stale", []string{"old"})

	host := event.NewPublisher(bus, "host")
	err := host.PublishTyped(context.Background(), TopicApplied, ChangedPayload{
		Source: "host",
		Filters: map[string][]string{
			"category": {"books"},
			"brand":    {"acme"},
		},
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if _, ok := bar.State().Get("stale"); ok {
		t.Error("applied selection should replace prior state")
	}
	if bar.Count() != 2 {
		t.Errorf("Count() = %d, want 2", bar.Count())
	}
}

func TestBarIgnoresOwnEvents(t *testing.T) {
	bar, bus := newAttachedBar(t)

	self := event.NewPublisher(bus, Source)
	err := self.PublishTyped(context.Background(), TopicChanged, ChangedPayload{
		Source: Source,
		Key:    "category",
		Values: []string{"electronics"},
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if !bar.State().IsEmpty() {
		t.Error("bar must not react to its own source")
	}
}

func TestBarHandlesLegacyMapPayload(t *testing.T) {
	bar, bus := newAttachedBar(t)

	adapter := event.NewBusAdapter(bus, "legacy")
	adapter.Publish(string(TopicChanged), map[string]any{
		"key":    "brand",
		"values": []any{"acme", "globex"},
	})

	values, ok := bar.State().Get("brand")
	if !ok {
		t.Fatal("bar did not mirror the legacy payload")
	}
	if !reflect.DeepEqual(values, []string{"acme", "globex"}) {
		t.Errorf("values = %v, want [acme globex]", values)
	}
}

func TestRemoveTagPublishesAndCallsBack(t *testing.T) {
	var cbKey, cbValue string
	bar, bus := newAttachedBar(t, WithOnRemove(func(key, value string) {
		cbKey, cbValue = key, value
	}))
	bar.State().Set("category", []string{"electronics", "books"})

	var got *RemovedPayload
	_, err := bus.SubscribeFunc(TopicRemoved, func(ctx context.Context, evt any) error {
		env := evt.(event.Envelope)
		p := env.Payload.(RemovedPayload)
		got = &p
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	if err := bar.RemoveTag(context.Background(), "category", "electronics"); err != nil {
		t.Fatalf("RemoveTag failed: %v", err)
	}

	if got == nil {
		t.Fatal("filter.removed was not published")
	}
	if got.Source != Source || got.Key != "category" || got.Value != "electronics" {
		t.Errorf("payload = %+v", *got)
	}
	if cbKey != "category" || cbValue != "electronics" {
		t.Errorf("callback got (%q, %q)", cbKey, cbValue)
	}

	values, _ := bar.State().Get("category")
	if !reflect.DeepEqual(values, []string{"books"}) {
		t.Errorf("remaining values = %v, want [books]", values)
	}
}

func TestRemoveTagAbsentIsNoOp(t *testing.T) {
	bar, bus := newAttachedBar(t)

	published := false
	bus.SubscribeFunc(TopicRemoved, func(ctx context.Context, evt any) error {
		published = true
		return nil
	})

	if err := bar.RemoveTag(context.Background(), "nope", "x"); err != nil {
		t.Fatalf("RemoveTag failed: %v", err)
	}
	if published {
		t.Error("removing an absent tag must not publish")
	}
}

func TestClearAllPublishesAndCallsBack(t *testing.T) {
	cleared := false
	bar, bus := newAttachedBar(t, WithOnClear(func() { cleared = true }))
	bar.State().Set("category", []string{"electronics"})

	var got *ClearedPayload
	bus.SubscribeFunc(TopicCleared, func(ctx context.Context, evt any) error {
		env := evt.(event.Envelope)
		p := env.Payload.(ClearedPayload)
		got = &p
		return nil
	})

	if err := bar.ClearAll(context.Background()); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	if got == nil || got.Source != Source {
		t.Fatalf("filter.cleared payload = %+v", got)
	}
	if !cleared {
		t.Error("OnClear callback did not run")
	}
	if !bar.State().IsEmpty() {
		t.Error("state should be empty after ClearAll")
	}
}

func TestClearAllEmptyIsNoOp(t *testing.T) {
	bar, bus := newAttachedBar(t)

	published := false
	bus.SubscribeFunc(TopicCleared, func(ctx context.Context, evt any) error {
		published = true
		return nil
	})

	if err := bar.ClearAll(context.Background()); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	if published {
		t.Error("clearing an empty bar must not publish")
	}
}

func TestBarCloseStopsMirroring(t *testing.T) {
	bar, bus := newAttachedBar(t)

	if err := bar.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// Close is idempotent.
	if err := bar.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	input := event.NewPublisher(bus, "input.category")
	input.PublishTyped(context.Background(), TopicChanged, ChangedPayload{
		Source: "input.category",
		Key:    "category",
		Values: []string{"electronics"},
	})

	if !bar.State().IsEmpty() {
		t.Error("closed bar must not receive events")
	}
}

func TestBarDetachedMutationsAreLocal(t *testing.T) {
	bar := New()
	bar.State().Set("category", []string{"books"})

	if err := bar.RemoveTag(context.Background(), "category", "books"); err != nil {
		t.Fatalf("RemoveTag on detached bar failed: %v", err)
	}
	if !bar.State().IsEmpty() {
		t.Error("detached RemoveTag should still mutate state")
	}
	if err := bar.ClearAll(context.Background()); err != nil {
		t.Fatalf("ClearAll on detached bar failed: %v", err)
	}
}
