package event

import (
	"context"
	"testing"

	"github.com/dshills/filterbar/internal/event/topic"
)

func TestSubscription_Defaults(t *testing.T) {
	sub := newSubscription("sub-1", topic.Topic("filter.removed"), newTestHandler())

	if sub.ID() != "sub-1" {
		t.Errorf("ID() = %q", sub.ID())
	}
	if sub.Topic() != topic.Topic("filter.removed") {
		t.Errorf("Topic() = %q", sub.Topic())
	}
	if !sub.IsActive() {
		t.Error("new subscription should be active")
	}
	cfg := sub.Config()
	if cfg.Priority != PriorityNormal {
		t.Errorf("default priority = %v", cfg.Priority)
	}
	if cfg.Once {
		t.Error("default Once should be false")
	}
	if cfg.Filter != nil {
		t.Error("default Filter should be nil")
	}
}

func TestSubscription_Cancel(t *testing.T) {
	sub := newSubscription("sub-1", topic.Topic("filter.removed"), newTestHandler())

	sub.Cancel()

	if sub.IsActive() {
		t.Error("cancelled subscription reports active")
	}
	if !sub.IsCancelled() {
		t.Error("expected IsCancelled")
	}
	if sub.State() != SubscriptionStateCancelled {
		t.Errorf("State() = %v", sub.State())
	}

	// Cancellation is terminal and repeatable
	sub.Cancel()
	if !sub.IsCancelled() {
		t.Error("expected IsCancelled after second Cancel")
	}
}

func TestSubscriptionState_String(t *testing.T) {
	tests := []struct {
		state SubscriptionState
		want  string
	}{
		{SubscriptionStateActive, "active"},
		{SubscriptionStateCancelled, "cancelled"},
		{SubscriptionState(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestSubscription_ShouldDeliver(t *testing.T) {
	withFilter := newSubscription("sub-1", topic.Topic("filter.changed"), newTestHandler(),
		WithFilter(FilterExcludeSource("tagbar")))

	fromBar := Envelope{Topic: "filter.changed", Metadata: Metadata{Source: "tagbar"}}
	fromInput := Envelope{Topic: "filter.changed", Metadata: Metadata{Source: "input.brand"}}

	if withFilter.ShouldDeliver(fromBar) {
		t.Error("filter should suppress own-source event")
	}
	if !withFilter.ShouldDeliver(fromInput) {
		t.Error("filter should allow other-source event")
	}

	withFilter.Cancel()
	if withFilter.ShouldDeliver(fromInput) {
		t.Error("cancelled subscription should not deliver")
	}
}

func TestPriority_String(t *testing.T) {
	tests := []struct {
		p    Priority
		want string
	}{
		{PriorityCritical, "critical"},
		{PriorityHigh, "high"},
		{PriorityNormal, "normal"},
		{PriorityLow, "low"},
	}

	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestTypedHandler(t *testing.T) {
	type payload struct{ Key string }

	var got payload
	h := AsHandlerFunc(func(ctx context.Context, e Event[payload]) error {
		got = e.Payload
		return nil
	})

	evt := NewEvent(topic.Topic("filter.removed"), payload{Key: "category"}, "test")
	if err := h.Handle(context.Background(), evt); err != nil {
		t.Fatal(err)
	}
	if got.Key != "category" {
		t.Errorf("typed handler got %+v", got)
	}

	// Mismatched types are skipped silently
	if err := h.Handle(context.Background(), "not an event"); err != nil {
		t.Errorf("mismatched type returned error: %v", err)
	}
}
