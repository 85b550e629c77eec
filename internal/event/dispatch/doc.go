// Package dispatch provides handler execution for the event bus.
//
// Delivery is synchronous: the publisher's goroutine runs every handler
// inline before the publish call returns. There is no queueing, batching,
// or deferred delivery.
//
// # Panic Recovery
//
// The dispatcher recovers from panics in handlers, preventing a misbehaving
// subscriber from crashing the publisher or starving sibling subscribers.
// Panics are reported via a configurable PanicHandler callback.
//
// # Context Support
//
// Dispatch respects context cancellation and deadlines. If a context is
// cancelled before handler execution, the dispatch result reports the
// handler as skipped.
//
// # Usage
//
//	dispatcher := dispatch.NewSyncDispatcher()
//	result := dispatcher.Dispatch(ctx, event, handler)
//	if !result.IsSuccess() {
//	    // Handle error or panic
//	}
//
// With panic handler:
//
//	dispatcher := dispatch.NewSyncDispatcher(
//	    dispatch.WithPanicHandler(func(event any, err any, stack []byte) {
//	        log.Printf("panic in handler: %v\n%s", err, stack)
//	    }),
//	)
package dispatch
