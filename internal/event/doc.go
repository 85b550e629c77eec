// Package event provides the publish/subscribe bus that keeps filterbar
// widgets in sync.
//
// The bus is a process-wide communication backbone enabling decoupled,
// event-driven wiring between sibling widgets (the tag bar, filter inputs)
// without direct dependencies. Producers publish named events; the bus
// fans each one out synchronously, in registration order, to every live
// subscriber of that name.
//
// # Architecture
//
//	             ┌──────────────────────────────────────┐
//	             │               Bus                     │
//	             │  - Subscription registry              │
//	             │  - Topic matching                     │
//	             │  - Synchronous dispatch               │
//	             └──────────────────────────────────────┘
//	                              │
//	     ┌────────────────────────┼────────────────────────┐
//	     ▼                        ▼                        ▼
//	┌───────────┐          ┌───────────┐           ┌────────────┐
//	│ Registry  │          │  Filter   │           │ Publisher  │
//	│ token ->  │          │ source-   │           │ source-    │
//	│ callback  │          │ based     │           │ stamped    │
//	└───────────┘          └───────────┘           └────────────┘
//
// # Tokens
//
// Subscribe returns a Subscription whose ID is an opaque token, unique for
// the lifetime of the bus. The token exists solely to cancel that one
// subscription later; unsubscribing with a stale or unknown token is a
// silent no-op, so consumers can tear down unconditionally.
//
// # Delivery
//
// Publish runs every matching handler inline on the calling goroutine
// before returning. A handler that returns an error or panics is isolated:
// the failure is logged with the topic and token, sibling handlers still
// run, and the publisher never sees the failure.
//
// # Subscription management
//
// Consumers hold their tokens in a Subscriber, which tracks every
// subscription as it is made and releases all of them exactly once when
// Close is called. See Subscriber for the full discipline.
//
// # Clearing
//
// Clear removes every subscription for every topic. It exists for test
// isolation between cases that share a bus; production code tears down
// per-consumer via Subscriber.Close.
package event
