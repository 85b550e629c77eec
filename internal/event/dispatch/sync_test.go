package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"
)

type funcHandler func(ctx context.Context, event any) error

func (f funcHandler) Handle(ctx context.Context, event any) error {
	return f(ctx, event)
}

func TestSyncDispatcher_Dispatch_Success(t *testing.T) {
	d := NewSyncDispatcher()

	var got any
	h := funcHandler(func(ctx context.Context, event any) error {
		got = event
		return nil
	})

	result := d.Dispatch(context.Background(), "payload", h)

	if !result.IsSuccess() {
		t.Errorf("expected success, got %+v", result)
	}
	if got != "payload" {
		t.Errorf("handler received %v, want payload", got)
	}
}

func TestSyncDispatcher_Dispatch_Error(t *testing.T) {
	d := NewSyncDispatcher()
	wantErr := errors.New("handler failed")

	h := funcHandler(func(ctx context.Context, event any) error {
		return wantErr
	})

	result := d.Dispatch(context.Background(), nil, h)

	if result.IsSuccess() {
		t.Error("expected failure")
	}
	if !result.IsError() {
		t.Error("expected IsError")
	}
	if !errors.Is(result.Error, wantErr) {
		t.Errorf("expected %v, got %v", wantErr, result.Error)
	}
}

func TestSyncDispatcher_Dispatch_Panic(t *testing.T) {
	var panicEvent any
	var panicValue any
	d := NewSyncDispatcher(WithPanicHandler(func(event any, value any, stack []byte) {
		panicEvent = event
		panicValue = value
	}))

	h := funcHandler(func(ctx context.Context, event any) error {
		panic("boom")
	})

	result := d.Dispatch(context.Background(), "evt", h)

	if !result.IsPanic() {
		t.Fatal("expected panic result")
	}
	if result.PanicValue != "boom" {
		t.Errorf("expected panic value boom, got %v", result.PanicValue)
	}
	if len(result.PanicStack) == 0 {
		t.Error("expected captured stack trace")
	}
	if panicEvent != "evt" || panicValue != "boom" {
		t.Errorf("panic handler got (%v, %v)", panicEvent, panicValue)
	}
}

func TestSyncDispatcher_Dispatch_CancelledContext(t *testing.T) {
	d := NewSyncDispatcher()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := funcHandler(func(ctx context.Context, event any) error {
		called = true
		return nil
	})

	result := d.Dispatch(ctx, nil, h)

	if !result.Skipped {
		t.Error("expected skipped result")
	}
	if called {
		t.Error("handler should not run with cancelled context")
	}
}

func TestSyncDispatcher_DispatchAll_IsolatesFailures(t *testing.T) {
	d := NewSyncDispatcher()

	var order []int
	handlers := []Handler{
		funcHandler(func(ctx context.Context, event any) error {
			order = append(order, 0)
			return errors.New("first fails")
		}),
		funcHandler(func(ctx context.Context, event any) error {
			order = append(order, 1)
			panic("second panics")
		}),
		funcHandler(func(ctx context.Context, event any) error {
			order = append(order, 2)
			return nil
		}),
	}

	results := d.DispatchAll(context.Background(), nil, handlers)

	if len(order) != 3 {
		t.Fatalf("expected all 3 handlers to run, got %v", order)
	}
	if !results[0].IsError() {
		t.Error("expected error result for handler 0")
	}
	if !results[1].IsPanic() {
		t.Error("expected panic result for handler 1")
	}
	if !results[2].IsSuccess() {
		t.Error("expected success result for handler 2")
	}
}

func TestSyncDispatcher_Stats(t *testing.T) {
	d := NewSyncDispatcher()

	ok := funcHandler(func(ctx context.Context, event any) error { return nil })
	bad := funcHandler(func(ctx context.Context, event any) error { return errors.New("nope") })
	pan := funcHandler(func(ctx context.Context, event any) error { panic("x") })

	d.Dispatch(context.Background(), nil, ok)
	d.Dispatch(context.Background(), nil, ok)
	d.Dispatch(context.Background(), nil, bad)
	d.Dispatch(context.Background(), nil, pan)

	stats := d.Stats()
	if stats.Dispatched != 4 {
		t.Errorf("Dispatched = %d, want 4", stats.Dispatched)
	}
	if stats.Succeeded != 2 {
		t.Errorf("Succeeded = %d, want 2", stats.Succeeded)
	}
	if stats.Failed != 1 {
		t.Errorf("Failed = %d, want 1", stats.Failed)
	}
	if stats.Panicked != 1 {
		t.Errorf("Panicked = %d, want 1", stats.Panicked)
	}

	d.ResetStats()
	if d.Stats().Dispatched != 0 {
		t.Error("expected zeroed stats after ResetStats")
	}
}

func TestExecutor_Timeout(t *testing.T) {
	e := NewExecutor()

	h := funcHandler(func(ctx context.Context, event any) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return nil
		}
	})

	result := e.ExecuteWithTimeout(context.Background(), nil, h, 10*time.Millisecond)

	if result.IsSuccess() {
		t.Error("expected timeout failure")
	}
	if !errors.Is(result.Error, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", result.Error)
	}
}
